package metrics

import "time"

// ResultLabel enumerates per-slug outcomes for counters.
type ResultLabel string

const (
	ResultUpdated    ResultLabel = "updated"
	ResultMissing    ResultLabel = "missing"
	ResultParseError ResultLabel = "parse_error"
	ResultReadError  ResultLabel = "read_error"
)

// Recorder defines observability hooks for batch and stage metrics.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncSlugResult(result ResultLabel)
	IncSectionStrategy(strategy string)
	IncVersionBump(bumped bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncSlugResult(ResultLabel)                  {}
func (NoopRecorder) IncSectionStrategy(string)                  {}
func (NoopRecorder) IncVersionBump(bool)                        {}
