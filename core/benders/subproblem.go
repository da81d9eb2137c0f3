package benders

import (
	"context"
	"fmt"

	"github.com/decisionlab/benders/core/model"
	"github.com/decisionlab/benders/core/solver"
)

// RecourseStatus tags the outcome of one subproblem solve.
type RecourseStatus int

const (
	RecourseUndefined RecourseStatus = iota
	RecourseOptimal
	RecourseInfeasible
)

func (s RecourseStatus) String() string {
	switch s {
	case RecourseOptimal:
		return "optimal"
	case RecourseInfeasible:
		return "infeasible"
	default:
		return "undefined"
	}
}

// RecourseResult is the tagged outcome of a subproblem solve. Duals and
// Objective are populated only for RecourseOptimal; DualRay only for
// RecourseInfeasible. Keeping the two dual vectors apart prevents the
// controller from reading a Farkas certificate as shadow prices.
type RecourseResult struct {
	Status    RecourseStatus
	Duals     []float64
	DualRay   []float64
	Objective float64
}

// SubproblemBuilder constructs and solves the recourse LP for a fixed
// master decision. It keeps no state between calls; each solve builds a
// fresh model and discards it.
type SubproblemBuilder struct {
	problem Problem
	solver  solver.Solver
}

// NewSubproblemBuilder returns a builder for the given problem.
func NewSubproblemBuilder(p Problem, s solver.Solver) *SubproblemBuilder {
	return &SubproblemBuilder{problem: p, solver: s}
}

// SolveRecourse builds the recourse LP at the given decision and
// submits it with infeasibility diagnostics enabled. Diagnostics must
// be requested on every solve since the caller cannot know in advance
// whether the optimal or infeasible branch occurs.
func (sb *SubproblemBuilder) SolveRecourse(ctx context.Context, decision float64) (RecourseResult, error) {
	b := sb.problem.Limits()
	coupling := sb.problem.Coupling()
	n := len(sb.problem.FundReturns)

	m := model.New("subproblem", model.Maximize)
	for i := 0; i < n; i++ {
		m.AddVariable(fmt.Sprintf("investment_%d", i), 0, inf)
	}

	// Constraint order fixes the dual vector layout: the budget row
	// first, then one cap row per fund.
	row := make([]float64, n)
	for i := range row {
		row[i] = 1
	}
	m.AddConstraint("total_budget", row, model.LessEq, b[0]-coupling[0]*decision)
	for i := 0; i < n; i++ {
		cap := make([]float64, n)
		cap[i] = 1
		m.AddConstraint(fmt.Sprintf("max_investment_%d", i), cap, model.LessEq, b[i+1]-coupling[i+1]*decision)
	}

	obj := make([]float64, n)
	copy(obj, sb.problem.FundReturns)
	m.SetObjective(obj)

	sol, err := sb.solver.Solve(ctx, m, solver.Options{InfeasibilityDiagnostics: true})
	if err != nil {
		return RecourseResult{}, fmt.Errorf("recourse solve: %w", err)
	}

	switch sol.Status {
	case model.StatusOptimal:
		if len(sol.Duals) != len(b) {
			return RecourseResult{}, fmt.Errorf("recourse solve: expected %d duals, got %d", len(b), len(sol.Duals))
		}
		return RecourseResult{Status: RecourseOptimal, Duals: sol.Duals, Objective: sol.Objective}, nil
	case model.StatusInfeasible:
		if len(sol.DualRay) != len(b) {
			return RecourseResult{}, fmt.Errorf("recourse solve: expected dual ray of length %d, got %d", len(b), len(sol.DualRay))
		}
		return RecourseResult{Status: RecourseInfeasible, DualRay: sol.DualRay}, nil
	default:
		return RecourseResult{Status: RecourseUndefined}, nil
	}
}
