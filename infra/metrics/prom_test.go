package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/decisionlab/benders/core/metrics"
)

func TestPromSink_RecordIteration(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	obs := coremetrics.IterationObservation{
		RunID:      "run-1",
		Iteration:  1,
		CutKind:    "feasibility",
		Decision:   200,
		LowerBound: -1,
		UpperBound: 1200,
		Gap:        1201,
	}
	if err := sink.RecordIteration(obs); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP benders_cuts_total Total number of cuts generated, by kind
# TYPE benders_cuts_total counter
benders_cuts_total{kind="feasibility"} 1
`
	if err := testutil.CollectAndCompare(sink.cuts, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.upperBound); got != 1200 {
		t.Errorf("upper bound gauge: got %v want 1200", got)
	}
}

func TestPromSink_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)
	if err := sink.RecordRun(coremetrics.RunObservation{RunID: "run-1", State: "converged", Iterations: 4}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP benders_runs_total Total number of completed runs, by terminal state
# TYPE benders_runs_total counter
benders_runs_total{state="converged"} 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
