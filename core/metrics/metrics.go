// Package metrics defines the sink interface used by the decomposition
// loop to publish per-iteration and per-run observations. Sinks like
// the Prometheus sink under infra/metrics implement it; NopSink is used
// when metrics are disabled.
package metrics

// IterationObservation is emitted once per completed loop iteration.
type IterationObservation struct {
	RunID      string
	Iteration  int
	CutKind    string
	Decision   float64
	LowerBound float64
	UpperBound float64
	Gap        float64
}

// RunObservation is emitted once when a run reaches a terminal state.
type RunObservation struct {
	RunID      string
	State      string
	Iterations int
	Decision   float64
	Objective  float64
}

// Sink records decomposition observations.
type Sink interface {
	RecordIteration(obs IterationObservation) error
	RecordRun(obs RunObservation) error
}

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// NopSink discards all observations.
type NopSink struct{}

func (NopSink) RecordIteration(IterationObservation) error { return nil }
func (NopSink) RecordRun(RunObservation) error             { return nil }
