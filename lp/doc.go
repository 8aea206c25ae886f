// Package lp implements the LP Oracle (§4.1): the thin, pluggable
// abstraction the rest of plutofcg calls for feasibility and
// lexicographic-minimum queries over a constraint.System.
//
// Exactly one Oracle backend is active per build (§4.1, §6). This
// package ships SimplexOracle, a two-phase rational simplex over
// math/big.Rat — the corpus has no GLPK/Gurobi/pure-Go-LP dependency
// to wire instead (see DESIGN.md and SPEC_FULL.md §12 for why). The
// Oracle interface is deliberately narrow so a cgo-backed GLPK/Gurobi
// implementation could be dropped in later without touching callers.
package lp
