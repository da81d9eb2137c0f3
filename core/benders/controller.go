package benders

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/decisionlab/benders/core/logger"
	"github.com/decisionlab/benders/core/metrics"
	"github.com/decisionlab/benders/core/solver"
)

// Errors surfaced by the controller. Ordinary infeasible subproblems
// and open bound gaps are normal control flow, not errors.
var (
	// ErrUndefinedStatus reports a subproblem solve that came back
	// neither optimal nor infeasible. Not retried: the cause is not
	// expected to resolve by repeating the identical solve.
	ErrUndefinedStatus = errors.New("subproblem solver returned an undefined status")
	// ErrInvalidDecision reports an initial decision outside its
	// domain, rejected before any solve is attempted.
	ErrInvalidDecision = errors.New("initial decision outside its domain")
)

// State is the controller's position in its lifecycle.
type State int

const (
	StateRunning State = iota
	StateConverged
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConverged:
		return "converged"
	case StateFailed:
		return "failed"
	default:
		return "running"
	}
}

// Result is the terminal outcome of a run.
type Result struct {
	State      State
	Decision   float64
	UpperBound float64
	LowerBound float64
	Iterations int
}

// Controller owns the iteration state of the decomposition and runs
// the alternating solve loop. It is not safe for concurrent use; one
// controller drives one run.
type Controller struct {
	problem Problem
	sub     *SubproblemBuilder
	master  *MasterProblemBuilder
	cuts    *CutStore
	log     logger.Logger
	sink    metrics.Sink

	state     State
	iteration int
	decision  float64
	lb, ub    float64
}

// NewController validates the problem and the initial decision's domain
// and prepares a run. A nil log or sink falls back to no-op
// implementations.
func NewController(p Problem, s solver.Solver, log logger.Logger, sink metrics.Sink) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	y0 := p.InitialDecision
	if y0 < 0 || y0 != math.Trunc(y0) || math.IsInf(y0, 0) || math.IsNaN(y0) {
		return nil, fmt.Errorf("decision %v: %w", y0, ErrInvalidDecision)
	}
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Controller{
		problem:  p,
		sub:      NewSubproblemBuilder(p, s),
		master:   NewMasterProblemBuilder(p, s),
		cuts:     NewCutStore(),
		log:      log,
		sink:     sink,
		state:    StateRunning,
		decision: y0,
		lb:       math.Inf(-1),
		ub:       inf,
	}, nil
}

// Cuts exposes the accumulated cut store.
func (c *Controller) Cuts() *CutStore { return c.cuts }

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// Run executes the loop until the bound gap closes within epsilon or a
// fatal solver status occurs. Exactly one cut is appended per
// iteration; its kind is fully determined by subproblem feasibility.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	c.log.Infof("starting decomposition run %s with initial decision %v", runID, c.decision)

	for c.ub-c.lb > c.problem.Epsilon {
		if err := ctx.Err(); err != nil {
			return c.fail(runID, fmt.Errorf("run canceled: %w", err))
		}
		c.iteration++

		res, err := c.sub.SolveRecourse(ctx, c.decision)
		if err != nil {
			return c.fail(runID, err)
		}

		var kind CutKind
		switch res.Status {
		case RecourseInfeasible:
			kind = FeasibilityCut
			c.cuts.Append(Cut{Kind: FeasibilityCut, Duals: res.DualRay})
		case RecourseOptimal:
			kind = OptimalityCut
			c.cuts.Append(Cut{Kind: OptimalityCut, Duals: res.Duals})
			if v := c.problem.SavingsReturn*c.decision + res.Objective; v > c.lb {
				c.lb = v
			}
		default:
			return c.fail(runID, ErrUndefinedStatus)
		}

		decision, bound, err := c.master.SolveMaster(ctx, c.cuts.All())
		if err != nil {
			return c.fail(runID, err)
		}
		c.decision = decision
		if bound < c.ub {
			c.ub = bound
		}

		c.log.Debugw("iteration complete", map[string]any{
			"run_id":    runID,
			"iteration": c.iteration,
			"cut":       kind.String(),
			"decision":  c.decision,
			"lb":        c.lb,
			"ub":        c.ub,
		})
		if err := c.sink.RecordIteration(metrics.IterationObservation{
			RunID:      runID,
			Iteration:  c.iteration,
			CutKind:    kind.String(),
			Decision:   c.decision,
			LowerBound: c.lb,
			UpperBound: c.ub,
			Gap:        c.ub - c.lb,
		}); err != nil {
			c.log.Warnf("record iteration: %v", err)
		}
	}

	c.state = StateConverged
	res := Result{
		State:      StateConverged,
		Decision:   c.decision,
		UpperBound: c.ub,
		LowerBound: c.lb,
		Iterations: c.iteration,
	}
	c.log.Infof("run %s converged after %d iterations: decision %v, objective %v", runID, res.Iterations, res.Decision, res.UpperBound)
	c.record(runID, res)
	return res, nil
}

func (c *Controller) fail(runID string, err error) (Result, error) {
	c.state = StateFailed
	res := Result{
		State:      StateFailed,
		Decision:   c.decision,
		UpperBound: c.ub,
		LowerBound: c.lb,
		Iterations: c.iteration,
	}
	c.log.Errorf("run %s failed at iteration %d: %v", runID, c.iteration, err)
	c.record(runID, res)
	return res, err
}

func (c *Controller) record(runID string, res Result) {
	if err := c.sink.RecordRun(metrics.RunObservation{
		RunID:      runID,
		State:      res.State.String(),
		Iterations: res.Iterations,
		Decision:   res.Decision,
		Objective:  res.UpperBound,
	}); err != nil {
		c.log.Warnf("record run: %v", err)
	}
}
