package solver

import (
	"context"
	"math"

	"github.com/decisionlab/benders/core/model"
	coresolver "github.com/decisionlab/benders/core/solver"
)

// branchNode narrows variable bounds relative to the declared model.
type branchNode struct {
	lower []float64
	upper []float64
}

func (n branchNode) child(idx int, lower, upper float64) branchNode {
	l := make([]float64, len(n.lower))
	u := make([]float64, len(n.upper))
	copy(l, n.lower)
	copy(u, n.upper)
	if lower > l[idx] {
		l[idx] = lower
	}
	if upper < u[idx] {
		u[idx] = upper
	}
	return branchNode{lower: l, upper: u}
}

// branchAndBound solves a model with integer variables by depth-first
// branch and bound over LP relaxations. Nodes are pruned when their
// relaxation bound cannot improve on the incumbent.
func (s *Simplex) branchAndBound(ctx context.Context, m *model.Model, lower, upper []float64, opts coresolver.Options) (*model.Solution, error) {
	root := branchNode{lower: lower, upper: upper}
	stack := []branchNode{root}
	atRoot := true

	var incumbent *model.Solution
	bestObj := math.Inf(-1) // incumbent objective in maximization terms

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Only the root relaxation can certify model-level
		// infeasibility, so diagnostics are requested there alone.
		nodeOpts := coresolver.Options{}
		if atRoot && opts.InfeasibilityDiagnostics {
			nodeOpts.InfeasibilityDiagnostics = true
		}
		sol, err := s.solveRelaxation(ctx, m, nd.lower, nd.upper, nodeOpts)
		if err != nil {
			return nil, err
		}
		wasRoot := atRoot
		atRoot = false

		switch sol.Status {
		case model.StatusInfeasible:
			if wasRoot {
				return sol, nil
			}
			continue
		case model.StatusUnbounded:
			// An unbounded relaxation makes the integer problem
			// unbounded as well.
			return &model.Solution{Status: model.StatusUnbounded}, nil
		case model.StatusOptimal:
		default:
			return &model.Solution{Status: model.StatusUndefined}, nil
		}

		relaxObj := maximizationObjective(m.Sense, sol.Objective)
		if incumbent != nil && relaxObj <= bestObj+pruneTol {
			continue
		}

		frac := fractionalIntegerVar(m, sol.Values)
		if frac < 0 {
			cand := snapIntegers(m, sol.Values)
			candObj := dot(m.Objective, cand)
			if incumbent == nil || maximizationObjective(m.Sense, candObj) > bestObj {
				incumbent = &model.Solution{Status: model.StatusOptimal, Values: cand, Objective: candObj}
				bestObj = maximizationObjective(m.Sense, candObj)
			}
			continue
		}

		v := sol.Values[frac]
		stack = append(stack,
			nd.child(frac, math.Ceil(v), math.Inf(1)),
			nd.child(frac, math.Inf(-1), math.Floor(v)),
		)
	}

	if incumbent == nil {
		// LP-feasible but no integral point in any branch.
		return &model.Solution{Status: model.StatusInfeasible}, nil
	}
	return incumbent, nil
}

// maximizationObjective normalizes an objective value so larger is
// always better, regardless of the model sense.
func maximizationObjective(sense model.Sense, obj float64) float64 {
	if sense == model.Minimize {
		return -obj
	}
	return obj
}

// fractionalIntegerVar returns the first integer variable whose
// relaxation value is fractional beyond tolerance, or -1.
func fractionalIntegerVar(m *model.Model, x []float64) int {
	for i, v := range m.Vars {
		if v.Integer && math.Abs(x[i]-math.Round(x[i])) > intTol {
			return i
		}
	}
	return -1
}

// snapIntegers rounds integer variables to their nearest integral
// value, clearing simplex noise from an integral relaxation.
func snapIntegers(m *model.Model, x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for i, v := range m.Vars {
		if v.Integer {
			out[i] = math.Round(out[i])
		}
	}
	return out
}
