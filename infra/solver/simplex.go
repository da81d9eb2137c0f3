// Package solver provides a gonum-based implementation of the core
// solver contract: simplex for continuous models, branch and bound for
// integer variables, and dual diagnostics (shadow prices and Farkas
// certificates) computed from explicit auxiliary LPs.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/decisionlab/benders/core/model"
	coresolver "github.com/decisionlab/benders/core/solver"
)

const (
	// defaultTol is the simplex pivot tolerance, matching what we use
	// elsewhere for gonum's lp package.
	defaultTol = 1e-7
	// intTol decides when a relaxation value counts as integral.
	intTol = 1e-6
	// rayTol is the minimum certificate violation accepted as a proof
	// of infeasibility.
	rayTol = 1e-9
	// pruneTol guards branch-and-bound pruning against pruning the
	// optimum on ties.
	pruneTol = 1e-9
)

// Simplex solves linear models with gonum's simplex implementation.
// The zero value is not ready; use NewSimplex.
type Simplex struct {
	// Tol is passed to lp.Simplex as the pivot tolerance.
	Tol float64
}

// NewSimplex returns a backend with default tolerances.
func NewSimplex() *Simplex { return &Simplex{Tol: defaultTol} }

// Solve implements the core solver contract. Diagnostics are supported
// for continuous models; integer models report primal results only,
// except for a dual ray on an infeasible root relaxation.
func (s *Simplex) Solve(ctx context.Context, m *model.Model, opts coresolver.Options) (*model.Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lower, upper := varBounds(m)
	if m.HasIntegerVars() {
		return s.branchAndBound(ctx, m, lower, upper, opts)
	}
	return s.solveRelaxation(ctx, m, lower, upper, opts)
}

func varBounds(m *model.Model) (lower, upper []float64) {
	lower = make([]float64, len(m.Vars))
	upper = make([]float64, len(m.Vars))
	for i, v := range m.Vars {
		lower[i] = v.Lower
		upper[i] = v.Upper
	}
	return lower, upper
}

// inequalityForm is the model rewritten as: maximize c·x subject to
// rows·x <= rhs with x free. Declared constraints come first, variable
// bound rows after; owner and sign map each row back to the declared
// constraint it was derived from (-1 for bound rows) so dual vectors
// can be reported per declared constraint in declaration order.
type inequalityForm struct {
	c     []float64
	rows  [][]float64
	rhs   []float64
	owner []int
	sign  []float64
}

func buildInequalityForm(m *model.Model, lower, upper []float64) *inequalityForm {
	n := len(m.Vars)
	f := &inequalityForm{c: make([]float64, n)}
	copy(f.c, m.Objective)
	if m.Sense == model.Minimize {
		for i := range f.c {
			f.c[i] = -f.c[i]
		}
	}

	addRow := func(coeffs []float64, rhs float64, owner int, sign float64) {
		f.rows = append(f.rows, coeffs)
		f.rhs = append(f.rhs, rhs)
		f.owner = append(f.owner, owner)
		f.sign = append(f.sign, sign)
	}
	neg := func(coeffs []float64) []float64 {
		out := make([]float64, len(coeffs))
		for i, v := range coeffs {
			out[i] = -v
		}
		return out
	}

	for i, c := range m.Constraints {
		row := make([]float64, n)
		copy(row, c.Coeffs)
		switch c.Op {
		case model.LessEq:
			addRow(row, c.RHS, i, 1)
		case model.GreaterEq:
			addRow(neg(row), -c.RHS, i, -1)
		case model.Equal:
			addRow(row, c.RHS, i, 1)
			addRow(neg(row), -c.RHS, i, -1)
		}
	}
	for j := 0; j < n; j++ {
		if !math.IsInf(upper[j], 1) {
			row := make([]float64, n)
			row[j] = 1
			addRow(row, upper[j], -1, 1)
		}
		if !math.IsInf(lower[j], -1) {
			row := make([]float64, n)
			row[j] = -1
			addRow(row, -lower[j], -1, 1)
		}
	}
	return f
}

// standardize converts the inequality form to gonum's standard form:
// minimize cStd·xStd subject to A·xStd = b, xStd >= 0, with layout
// [x+ x- slack].
func (f *inequalityForm) standardize() (cStd []float64, A *mat.Dense, b []float64) {
	n := len(f.c)
	mRows := len(f.rows)
	cStd = make([]float64, 2*n+mRows)
	for i, v := range f.c {
		cStd[i] = -v // gonum minimizes; f.c is the max objective
		cStd[n+i] = v
	}
	A = mat.NewDense(mRows, 2*n+mRows, nil)
	b = make([]float64, mRows)
	for i, row := range f.rows {
		for j, v := range row {
			A.Set(i, j, v)
			A.Set(i, n+j, -v)
		}
		A.Set(i, 2*n+i, 1)
		b[i] = f.rhs[i]
	}
	return cStd, A, b
}

// solveRelaxation solves the continuous model with the given bounds in
// place of the declared variable bounds.
func (s *Simplex) solveRelaxation(ctx context.Context, m *model.Model, lower, upper []float64, opts coresolver.Options) (*model.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := buildInequalityForm(m, lower, upper)
	cStd, A, b := f.standardize()
	_, xStd, err := lp.Simplex(cStd, A, b, s.Tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		sol := &model.Solution{Status: model.StatusInfeasible}
		if opts.InfeasibilityDiagnostics {
			ray, rayErr := s.farkasRay(f)
			if rayErr != nil {
				return &model.Solution{Status: model.StatusUndefined}, nil
			}
			sol.DualRay = mapToDeclared(f, ray, m.NumConstraints(), 1)
		}
		return sol, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &model.Solution{Status: model.StatusUnbounded}, nil
	default:
		// Singular bases and friends: numerical failure, not a
		// modeling outcome.
		return &model.Solution{Status: model.StatusUndefined}, nil
	}

	n := len(m.Vars)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xStd[i] - xStd[n+i]
	}
	sol := &model.Solution{
		Status:    model.StatusOptimal,
		Values:    x,
		Objective: dot(m.Objective, x),
	}
	if opts.InfeasibilityDiagnostics {
		duals, dualErr := s.constraintDuals(f)
		if dualErr != nil {
			return &model.Solution{Status: model.StatusUndefined}, nil
		}
		senseSign := 1.0
		if m.Sense == model.Minimize {
			senseSign = -1
		}
		sol.Duals = mapToDeclared(f, duals, m.NumConstraints(), senseSign)
	}
	return sol, nil
}

// constraintDuals solves the dual LP of the inequality form explicitly:
// minimize rhs·d subject to rowsᵀ·d = c, d >= 0. By strong duality its
// optimum exists whenever the primal solved to optimality, and its
// solution is the vector of shadow prices.
func (s *Simplex) constraintDuals(f *inequalityForm) ([]float64, error) {
	n := len(f.c)
	mRows := len(f.rows)
	At := mat.NewDense(n, mRows, nil)
	for i, row := range f.rows {
		for j, v := range row {
			At.Set(j, i, v)
		}
	}
	_, d, err := lp.Simplex(f.rhs, At, f.c, s.Tol, nil)
	if err != nil {
		return nil, fmt.Errorf("dual solve: %w", err)
	}
	return d, nil
}

// farkasRay searches for an infeasibility certificate: d >= 0 with
// rowsᵀ·d = 0 and rhs·d < 0. The ray is normalized by boxing d into
// [0, 1] via slack variables, which keeps the auxiliary LP bounded
// while intersecting every ray direction.
func (s *Simplex) farkasRay(f *inequalityForm) ([]float64, error) {
	n := len(f.c)
	mRows := len(f.rows)
	// Variables [d slack], equalities rowsᵀ·d = 0 and d + slack = 1.
	A := mat.NewDense(n+mRows, 2*mRows, nil)
	b := make([]float64, n+mRows)
	c := make([]float64, 2*mRows)
	for i, row := range f.rows {
		for j, v := range row {
			A.Set(j, i, v)
		}
		A.Set(n+i, i, 1)
		A.Set(n+i, mRows+i, 1)
		b[n+i] = 1
		c[i] = f.rhs[i]
	}
	opt, d, err := lp.Simplex(c, A, b, s.Tol, nil)
	if err != nil {
		return nil, fmt.Errorf("ray solve: %w", err)
	}
	if opt >= -rayTol {
		return nil, fmt.Errorf("no certificate found (best violation %v)", opt)
	}
	return d[:mRows], nil
}

// mapToDeclared folds row-level dual values back onto the declared
// constraints, honoring the sign flips applied while building the
// inequality form. Bound-row components are internal and dropped.
func mapToDeclared(f *inequalityForm, rowDuals []float64, declared int, senseSign float64) []float64 {
	out := make([]float64, declared)
	for i, owner := range f.owner {
		if owner < 0 {
			continue
		}
		out[owner] += senseSign * f.sign[i] * rowDuals[i]
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
