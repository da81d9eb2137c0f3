// Package solver defines the capability contract between the
// decomposition core and an LP/MIP backend. The core never depends on a
// concrete optimizer; any backend exposing primal, dual and status
// semantics can be plugged in.
package solver

import (
	"context"

	"github.com/decisionlab/benders/core/model"
)

// Options tune a single solve.
type Options struct {
	// InfeasibilityDiagnostics requests dual information alongside the
	// primal solution: constraint shadow prices on optimal solves and a
	// dual ray (Farkas certificate) on infeasible ones. Backends may
	// support diagnostics for continuous models only.
	InfeasibilityDiagnostics bool
}

// Solver solves a linear model. The returned error covers backend
// faults and context cancellation; modeling outcomes (infeasible,
// unbounded, numerical failure) are reported through Solution.Status.
type Solver interface {
	Solve(ctx context.Context, m *model.Model, opts Options) (*model.Solution, error)
}
