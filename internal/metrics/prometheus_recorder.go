package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	reg              *prom.Registry
	stageDuration    *prom.HistogramVec
	buildDuration    prom.Histogram
	slugResults      *prom.CounterVec
	sectionStrategy  *prom.CounterVec
	versionBumps     *prom.CounterVec
	lastBuildSeconds prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "gallerygen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual batch stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "gallerygen",
			Name:      "build_duration_seconds",
			Help:      "Total batch duration",
			Buckets:   prom.DefBuckets,
		})
		pr.slugResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gallerygen",
			Name:      "slug_results_total",
			Help:      "Per-slug outcomes",
		}, []string{"result"})
		pr.sectionStrategy = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gallerygen",
			Name:      "section_splices_total",
			Help:      "Section splices by insertion strategy",
		}, []string{"strategy"})
		pr.versionBumps = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gallerygen",
			Name:      "version_stamps_total",
			Help:      "Version stamp attempts by outcome",
		}, []string{"result"})
		pr.lastBuildSeconds = prom.NewGauge(prom.GaugeOpts{
			Namespace: "gallerygen",
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last completed batch",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.slugResults, pr.sectionStrategy, pr.versionBumps, pr.lastBuildSeconds)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
	p.lastBuildSeconds.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncSlugResult(result ResultLabel) {
	if p == nil || p.slugResults == nil {
		return
	}
	p.slugResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncSectionStrategy(strategy string) {
	if p == nil || p.sectionStrategy == nil {
		return
	}
	p.sectionStrategy.WithLabelValues(strategy).Inc()
}

func (p *PrometheusRecorder) IncVersionBump(bumped bool) {
	if p == nil || p.versionBumps == nil {
		return
	}
	res := "unchanged"
	if bumped {
		res = "bumped"
	}
	p.versionBumps.WithLabelValues(res).Inc()
}

// WriteTextfile dumps the registry in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
