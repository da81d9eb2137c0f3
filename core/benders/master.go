package benders

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/decisionlab/benders/core/model"
	"github.com/decisionlab/benders/core/solver"
)

// ErrMasterNotOptimal reports a master problem that, against the
// construction of the cuts, came back infeasible or unbounded. This is
// a configuration or implementation fault, never a cut-eligible event.
var ErrMasterNotOptimal = errors.New("master problem is not optimal")

// MasterProblemBuilder constructs and solves the relaxed master problem
// over the full accumulated cut set.
type MasterProblemBuilder struct {
	problem Problem
	solver  solver.Solver
}

// NewMasterProblemBuilder returns a builder for the given problem.
func NewMasterProblemBuilder(p Problem, s solver.Solver) *MasterProblemBuilder {
	return &MasterProblemBuilder{problem: p, solver: s}
}

// SolveMaster solves max z over an integer decision y >= 0 and a
// continuous surrogate z, subject to every cut generated so far. It
// must always receive the full cut set: dropping a cut could re-admit
// a decision already proven infeasible or suboptimal.
//
// Until the first optimality cut exists, z appears in no constraint
// and the literal formulation is unbounded above. In that case the
// surrogate is pinned to zero, the solve only picks a decision
// satisfying the feasibility cuts, and the reported bound stays +Inf.
func (mb *MasterProblemBuilder) SolveMaster(ctx context.Context, cuts []Cut) (float64, float64, error) {
	b := mb.problem.Limits()
	coupling := mb.problem.Coupling()

	hasOptimality := false
	for _, c := range cuts {
		if c.Kind == OptimalityCut {
			hasOptimality = true
			break
		}
	}

	m := model.New("master", model.Maximize)
	m.AddIntegerVariable("y", 0, inf)
	if hasOptimality {
		m.AddVariable("z", math.Inf(-1), inf)
	} else {
		m.AddVariable("z", 0, 0)
	}
	m.SetObjective([]float64{0, 1})

	for i, c := range cuts {
		if len(c.Duals) != len(b) {
			return 0, 0, fmt.Errorf("master solve: cut %d has %d duals, want %d", i, len(c.Duals), len(b))
		}
		var db, dB float64
		for j, d := range c.Duals {
			db += d * b[j]
			dB += d * coupling[j]
		}
		switch c.Kind {
		case FeasibilityCut:
			// sum d_j*(b_j - B_j*y) >= 0  ->  -dB*y >= -db
			m.AddConstraint(fmt.Sprintf("feasibility_cut_%d", i), []float64{-dB, 0}, model.GreaterEq, -db)
		case OptimalityCut:
			// z <= r*y + sum d_j*(b_j - B_j*y)  ->  (dB-r)*y + z <= db
			m.AddConstraint(fmt.Sprintf("optimality_cut_%d", i), []float64{dB - mb.problem.SavingsReturn, 1}, model.LessEq, db)
		}
	}

	sol, err := mb.solver.Solve(ctx, m, solver.Options{})
	if err != nil {
		return 0, 0, fmt.Errorf("master solve: %w", err)
	}
	if !sol.IsOptimal() {
		return 0, 0, fmt.Errorf("master solve: status %s: %w", sol.Status, ErrMasterNotOptimal)
	}

	// y is integral up to solver tolerance; snap it.
	decision := math.Round(sol.Values[0])
	bound := sol.Objective
	if !hasOptimality {
		bound = inf
	}
	return decision, bound, nil
}
