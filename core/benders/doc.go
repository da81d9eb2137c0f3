// Package benders implements a single-cut Benders decomposition loop
// for a two-level allocation problem: an integer master decision (the
// amount kept in the savings account) and a continuous recourse
// allocation over funds. The subproblem and master problem are built
// here and solved by an injected Solver; dual information flows back as
// feasibility and optimality cuts until the lower and upper bounds
// close within a configured tolerance.
package benders
