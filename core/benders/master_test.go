package benders

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/decisionlab/benders/core/model"
)

func TestMasterProblemBuilder_CutRows(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusOptimal, Values: []float64{100, 1000}, Objective: 1000},
	}}
	mb := NewMasterProblemBuilder(testProblem(), sv)

	cuts := []Cut{
		{Kind: FeasibilityCut, Duals: []float64{1, 0, 0}},
		{Kind: OptimalityCut, Duals: []float64{2, 0, 4}},
	}
	decision, bound, err := mb.SolveMaster(context.Background(), cuts)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if decision != 100 || bound != 1000 {
		t.Fatalf("unexpected result %v %v", decision, bound)
	}

	m := sv.models[0]
	if !m.Vars[0].Integer || m.Vars[0].Lower != 0 {
		t.Fatalf("y must be a non-negative integer variable: %+v", m.Vars[0])
	}
	if m.Vars[1].Integer || !math.IsInf(m.Vars[1].Lower, -1) {
		t.Fatalf("z must be a free continuous variable: %+v", m.Vars[1])
	}
	if m.Objective[0] != 0 || m.Objective[1] != 1 || m.Sense != model.Maximize {
		t.Fatalf("master must maximize z: %v %s", m.Objective, m.Sense)
	}

	// Feasibility cut d=(1,0,0): sum d*(b - B*y) >= 0  ->  -y >= -200.
	feas := m.Constraints[0]
	if feas.Op != model.GreaterEq || feas.Coeffs[0] != -1 || feas.Coeffs[1] != 0 || feas.RHS != -200 {
		t.Fatalf("unexpected feasibility row %+v", feas)
	}
	// Optimality cut d=(2,0,4): z <= 4y + 2*(200-y) + 4*100  ->  -2y + z <= 800.
	opt := m.Constraints[1]
	if opt.Op != model.LessEq || opt.Coeffs[0] != -2 || opt.Coeffs[1] != 1 || opt.RHS != 800 {
		t.Fatalf("unexpected optimality row %+v", opt)
	}
}

func TestMasterProblemBuilder_PinsSurrogateWithoutOptimalityCuts(t *testing.T) {
	sv := &scriptedSolver{solutions: []*model.Solution{
		{Status: model.StatusOptimal, Values: []float64{200, 0}, Objective: 0},
	}}
	mb := NewMasterProblemBuilder(testProblem(), sv)

	cuts := []Cut{{Kind: FeasibilityCut, Duals: []float64{1, 0, 0}}}
	decision, bound, err := mb.SolveMaster(context.Background(), cuts)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if decision != 200 {
		t.Fatalf("unexpected decision %v", decision)
	}
	if !math.IsInf(bound, 1) {
		t.Fatalf("bound must stay +Inf before the first optimality cut, got %v", bound)
	}

	z := sv.models[0].Vars[1]
	if z.Lower != 0 || z.Upper != 0 {
		t.Fatalf("surrogate must be pinned to zero, got bounds [%v, %v]", z.Lower, z.Upper)
	}
}

func TestMasterProblemBuilder_NonOptimalIsFatal(t *testing.T) {
	for _, status := range []model.Status{model.StatusInfeasible, model.StatusUnbounded, model.StatusUndefined} {
		sv := &scriptedSolver{solutions: []*model.Solution{{Status: status}}}
		mb := NewMasterProblemBuilder(testProblem(), sv)
		cuts := []Cut{{Kind: OptimalityCut, Duals: []float64{2, 0, 4}}}
		if _, _, err := mb.SolveMaster(context.Background(), cuts); !errors.Is(err, ErrMasterNotOptimal) {
			t.Fatalf("status %s: expected ErrMasterNotOptimal got %v", status, err)
		}
	}
}

func TestMasterProblemBuilder_RejectsShortCut(t *testing.T) {
	mb := NewMasterProblemBuilder(testProblem(), &scriptedSolver{})
	cuts := []Cut{{Kind: OptimalityCut, Duals: []float64{1}}}
	if _, _, err := mb.SolveMaster(context.Background(), cuts); err == nil {
		t.Fatalf("expected error for malformed cut")
	}
}
