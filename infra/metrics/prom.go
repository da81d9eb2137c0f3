package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/decisionlab/benders/core/metrics"
)

// PromSink records decomposition progress in Prometheus metrics.
type PromSink struct {
	cuts       *prometheus.CounterVec
	runs       *prometheus.CounterVec
	lowerBound prometheus.Gauge
	upperBound prometheus.Gauge
	gap        prometheus.Gauge
	iterations prometheus.Gauge
}

// NewPromSink registers decomposition metrics on the default Prometheus
// registerer. The metrics server should be started separately using
// cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cuts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "benders_cuts_total",
		Help: "Total number of cuts generated, by kind",
	}, []string{"kind"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "benders_runs_total",
		Help: "Total number of completed runs, by terminal state",
	}, []string{"state"})
	lowerBound := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "benders_lower_bound",
		Help: "Best proven lower bound of the current run",
	})
	upperBound := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "benders_upper_bound",
		Help: "Best proven upper bound of the current run",
	})
	gap := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "benders_bound_gap",
		Help: "Current gap between upper and lower bound",
	})
	iterations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "benders_iterations",
		Help: "Iterations completed in the current run",
	})

	s := &PromSink{cuts: cuts, runs: runs, lowerBound: lowerBound, upperBound: upperBound, gap: gap, iterations: iterations}
	if err := registerCounterVec(reg, &s.cuts); err != nil {
		return nil, err
	}
	if err := registerCounterVec(reg, &s.runs); err != nil {
		return nil, err
	}
	for _, g := range []*prometheus.Gauge{&s.lowerBound, &s.upperBound, &s.gap, &s.iterations} {
		if err := registerGauge(reg, g); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func registerCounterVec(reg prometheus.Registerer, cv **prometheus.CounterVec) error {
	if err := reg.Register(*cv); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*cv = are.ExistingCollector.(*prometheus.CounterVec)
			return nil
		}
		return err
	}
	return nil
}

func registerGauge(reg prometheus.Registerer, g *prometheus.Gauge) error {
	if err := reg.Register(*g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*g = are.ExistingCollector.(prometheus.Gauge)
			return nil
		}
		return err
	}
	return nil
}

// RecordIteration updates bound gauges and the cut counter.
func (s *PromSink) RecordIteration(obs coremetrics.IterationObservation) error {
	s.cuts.WithLabelValues(obs.CutKind).Inc()
	s.lowerBound.Set(obs.LowerBound)
	s.upperBound.Set(obs.UpperBound)
	s.gap.Set(obs.Gap)
	s.iterations.Set(float64(obs.Iteration))
	return nil
}

// RecordRun increments the terminal-state counter.
func (s *PromSink) RecordRun(obs coremetrics.RunObservation) error {
	s.runs.WithLabelValues(obs.State).Inc()
	return nil
}
