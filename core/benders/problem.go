package benders

import (
	"fmt"
	"math"
)

var inf = math.Inf(1)

// Problem holds the immutable parameters of one decomposition run.
type Problem struct {
	// FundReturns is the per-fund return coefficient, one entry per
	// recourse variable.
	FundReturns []float64
	// SavingsReturn is the return rate of the master decision itself.
	SavingsReturn float64
	// TotalBudget is the overall capacity shared by the decision and
	// the recourse allocation.
	TotalBudget float64
	// Epsilon is the convergence tolerance on UB - LB.
	Epsilon float64
	// InitialDecision seeds the loop. It must be a non-negative
	// integer value.
	InitialDecision float64
}

// Limits returns the capacity vector b: the total budget followed by
// one per-fund cap of half the budget (floored), matching the original
// allocation model.
func (p Problem) Limits() []float64 {
	b := make([]float64, len(p.FundReturns)+1)
	b[0] = p.TotalBudget
	cap := math.Floor(p.TotalBudget / 2)
	for i := 1; i < len(b); i++ {
		b[i] = cap
	}
	return b
}

// Coupling returns the vector B describing how the decision consumes
// each limit: the full amount against the budget, nothing against the
// per-fund caps.
func (p Problem) Coupling() []float64 {
	c := make([]float64, len(p.FundReturns)+1)
	c[0] = 1
	return c
}

// Validate checks the run parameters. The initial decision's domain is
// checked separately by the controller before any solve.
func (p Problem) Validate() error {
	if len(p.FundReturns) == 0 {
		return fmt.Errorf("at least one fund return is required")
	}
	for i, r := range p.FundReturns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("fund return %d is not finite", i)
		}
	}
	if p.TotalBudget <= 0 {
		return fmt.Errorf("total budget must be positive, got %v", p.TotalBudget)
	}
	if p.Epsilon < 0 || math.IsNaN(p.Epsilon) {
		return fmt.Errorf("epsilon must be non-negative, got %v", p.Epsilon)
	}
	return nil
}
