package benders

// CutKind discriminates the two cut families of the decomposition.
type CutKind int

const (
	// FeasibilityCut excludes decisions that make the subproblem
	// infeasible: sum d_i * (b_i - B_i*y) >= 0.
	FeasibilityCut CutKind = iota
	// OptimalityCut upper-bounds the recourse value as a function of
	// the decision: z <= savingsReturn*y + sum d_i * (b_i - B_i*y).
	OptimalityCut
)

func (k CutKind) String() string {
	if k == FeasibilityCut {
		return "feasibility"
	}
	return "optimality"
}

// Cut pairs a dual vector of length len(b) with its kind.
type Cut struct {
	Kind  CutKind
	Duals []float64
}

// CutStore accumulates cuts across iterations. Appends only: cuts are
// never removed or mutated once added, which is what guarantees the
// master bound tightens monotonically.
type CutStore struct {
	cuts []Cut
}

// NewCutStore returns an empty store.
func NewCutStore() *CutStore { return &CutStore{} }

// Append adds a cut. The dual vector is copied so later mutation of the
// caller's slice cannot rewrite history.
func (s *CutStore) Append(c Cut) {
	duals := make([]float64, len(c.Duals))
	copy(duals, c.Duals)
	s.cuts = append(s.cuts, Cut{Kind: c.Kind, Duals: duals})
}

// All returns the accumulated cuts in insertion order. The returned
// slice is a copy; the stored cuts stay immutable.
func (s *CutStore) All() []Cut {
	out := make([]Cut, len(s.cuts))
	copy(out, s.cuts)
	return out
}

// Len returns the total number of cuts.
func (s *CutStore) Len() int { return len(s.cuts) }

// CountKind returns how many cuts of the given kind have been stored.
func (s *CutStore) CountKind(kind CutKind) int {
	n := 0
	for _, c := range s.cuts {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
