package benders

import (
	"context"
	"testing"

	"github.com/decisionlab/benders/core/model"
)

func TestSubproblemBuilder_ModelShape(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusOptimal, Duals: []float64{2, 0, 4}, Objective: 800},
	}}
	sb := NewSubproblemBuilder(testProblem(), sv)

	res, err := sb.SolveRecourse(context.Background(), 50)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != RecourseOptimal {
		t.Fatalf("expected optimal got %s", res.Status)
	}

	m := sv.models[0]
	if m.NumVars() != 2 {
		t.Fatalf("expected one variable per fund, got %d", m.NumVars())
	}
	if m.Sense != model.Maximize {
		t.Fatalf("expected a maximization model")
	}
	if m.NumConstraints() != 3 {
		t.Fatalf("expected budget + per-fund rows, got %d", m.NumConstraints())
	}
	// Budget row first: x1 + x2 <= 200 - y.
	budget := m.Constraints[0]
	if budget.RHS != 150 || budget.Coeffs[0] != 1 || budget.Coeffs[1] != 1 || budget.Op != model.LessEq {
		t.Fatalf("unexpected budget row %+v", budget)
	}
	// Per-fund caps of half the budget.
	for i := 1; i <= 2; i++ {
		if m.Constraints[i].RHS != 100 {
			t.Fatalf("expected cap 100 on row %d, got %v", i, m.Constraints[i].RHS)
		}
	}
	if m.Objective[0] != 2 || m.Objective[1] != 6 {
		t.Fatalf("unexpected objective %v", m.Objective)
	}
}

func TestSubproblemBuilder_ClassifiesInfeasible(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusInfeasible, DualRay: []float64{1, 0, 0}},
	}}
	sb := NewSubproblemBuilder(testProblem(), sv)

	res, err := sb.SolveRecourse(context.Background(), 500)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != RecourseInfeasible {
		t.Fatalf("expected infeasible got %s", res.Status)
	}
	if len(res.DualRay) != 3 || res.Duals != nil {
		t.Fatalf("infeasible result must carry only a dual ray: %+v", res)
	}
}

func TestSubproblemBuilder_UndefinedStatus(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusUndefined},
	}}
	sb := NewSubproblemBuilder(testProblem(), sv)

	res, err := sb.SolveRecourse(context.Background(), 0)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.Status != RecourseUndefined {
		t.Fatalf("expected undefined got %s", res.Status)
	}
}

func TestSubproblemBuilder_RejectsShortDualVector(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusOptimal, Duals: []float64{2}, Objective: 1},
	}}
	sb := NewSubproblemBuilder(testProblem(), sv)

	if _, err := sb.SolveRecourse(context.Background(), 0); err == nil {
		t.Fatalf("expected error for truncated dual vector")
	}
}
