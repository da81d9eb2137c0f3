package model

import (
	"fmt"
	"math"
)

// Sense selects the optimization direction of a model.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Op is the comparison operator of a linear constraint.
type Op int

const (
	LessEq Op = iota
	GreaterEq
	Equal
)

func (o Op) String() string {
	switch o {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "="
	}
}

// Variable declares a decision variable with its bounds and domain.
type Variable struct {
	Name    string
	Lower   float64
	Upper   float64
	Integer bool
}

// Constraint is a dense linear row: Coeffs · x (Op) RHS.
// Coeffs has one entry per declared variable.
type Constraint struct {
	Name   string
	Coeffs []float64
	Op     Op
	RHS    float64
}

// Model is a linear optimization model handed to a Solver. Constraint
// order is significant: dual values and dual rays are reported in
// declaration order.
type Model struct {
	Name        string
	Vars        []Variable
	Constraints []Constraint
	Objective   []float64
	Sense       Sense
}

// New returns an empty model with the given name and sense.
func New(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense}
}

// AddVariable appends a continuous variable and returns its column index.
func (m *Model) AddVariable(name string, lower, upper float64) int {
	m.Vars = append(m.Vars, Variable{Name: name, Lower: lower, Upper: upper})
	return len(m.Vars) - 1
}

// AddIntegerVariable appends an integer variable and returns its column index.
func (m *Model) AddIntegerVariable(name string, lower, upper float64) int {
	m.Vars = append(m.Vars, Variable{Name: name, Lower: lower, Upper: upper, Integer: true})
	return len(m.Vars) - 1
}

// AddConstraint appends a dense row. Zero-padded or truncated rows are
// rejected at validation time, not here.
func (m *Model) AddConstraint(name string, coeffs []float64, op Op, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Coeffs: coeffs, Op: op, RHS: rhs})
}

// SetObjective sets the objective coefficient vector.
func (m *Model) SetObjective(coeffs []float64) {
	m.Objective = coeffs
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.Vars) }

// NumConstraints returns the number of declared constraints.
func (m *Model) NumConstraints() int { return len(m.Constraints) }

// HasIntegerVars reports whether any variable has an integrality domain.
func (m *Model) HasIntegerVars() bool {
	for _, v := range m.Vars {
		if v.Integer {
			return true
		}
	}
	return false
}

// Validate checks that objective and constraint rows match the variable
// count and that variable bounds are consistent.
func (m *Model) Validate() error {
	n := len(m.Vars)
	if n == 0 {
		return fmt.Errorf("model %s has no variables", m.Name)
	}
	if len(m.Objective) != n {
		return fmt.Errorf("model %s: objective has %d coefficients for %d variables", m.Name, len(m.Objective), n)
	}
	for i, c := range m.Constraints {
		if len(c.Coeffs) != n {
			return fmt.Errorf("model %s: constraint %d (%s) has %d coefficients for %d variables", m.Name, i, c.Name, len(c.Coeffs), n)
		}
	}
	for _, v := range m.Vars {
		if v.Lower > v.Upper {
			return fmt.Errorf("model %s: variable %s has lower bound %v above upper bound %v", m.Name, v.Name, v.Lower, v.Upper)
		}
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return fmt.Errorf("model %s: variable %s has NaN bounds", m.Name, v.Name)
		}
	}
	return nil
}
