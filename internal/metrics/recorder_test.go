package metrics

import "time"

type testRecorder struct {
	stageDurations map[string]int
	buildDurations int
	slugResults    map[ResultLabel]int
	strategies     map[string]int
	bumps          map[bool]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		slugResults:    map[ResultLabel]int{},
		strategies:     map[string]int{},
		bumps:          map[bool]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveBuildDuration(_ time.Duration) { t.buildDurations++ }
func (t *testRecorder) IncSlugResult(result ResultLabel)     { t.slugResults[result]++ }
func (t *testRecorder) IncSectionStrategy(strategy string)   { t.strategies[strategy]++ }
func (t *testRecorder) IncVersionBump(bumped bool)           { t.bumps[bumped]++ }

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
