package model

// Status is the outcome reported by a Solver for a single solve.
type Status int

const (
	StatusUndefined Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "undefined"
	}
}

// Solution carries the result of one solve. Values holds the primal
// solution per variable. Duals holds the shadow price of each declared
// constraint on optimal solves when diagnostics were requested; DualRay
// holds a Farkas certificate per declared constraint on infeasible
// solves. Exactly one of Duals/DualRay is populated, matching Status.
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
	Duals     []float64
	DualRay   []float64
}

// IsOptimal reports whether the solve found a proven optimum.
func (s *Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// IsInfeasible reports whether the model was proven infeasible.
func (s *Solution) IsInfeasible() bool { return s.Status == StatusInfeasible }
