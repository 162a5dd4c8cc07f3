package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("splice", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncSlugResult(ResultUpdated)
	pr.IncSlugResult(ResultUpdated)
	pr.IncSlugResult(ResultMissing)
	pr.IncSectionStrategy("replaced")
	pr.IncVersionBump(true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	require.InDelta(t, 2, counterValue(t, reg, "gallerygen_slug_results_total", "updated"), 0)
	require.InDelta(t, 1, counterValue(t, reg, "gallerygen_slug_results_total", "missing"), 0)
	require.InDelta(t, 1, counterValue(t, reg, "gallerygen_version_stamps_total", "bumped"), 0)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncSectionStrategy("after-anchor")

	path := filepath.Join(t.TempDir(), "gallerygen.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `gallerygen_section_splices_total{strategy="after-anchor"} 1`), string(data))
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncSlugResult(ResultUpdated)
	pr.ObserveBuildDuration(time.Second)
	require.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func counterValue(t *testing.T, reg *prom.Registry, name, label string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}
