// Package metrics provides batch metrics for gallerygen.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites. When the build
// command is given --metrics-file, a PrometheusRecorder backed by a private
// registry is injected instead and its registry is written out in the
// Prometheus text format once the batch finishes.
package metrics
