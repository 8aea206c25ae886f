package lp

import (
	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/polyrat"
)

// Oracle abstracts the external LP/MILP solver (§4.1). Implementations
// must be deterministic: the same (System, objective) must always
// return the same witness, so the colouring driver stays reproducible
// (§4.1 "the oracle must be deterministic").
type Oracle interface {
	// FeasibilityLexmin minimises obj over the feasible region of cs
	// and returns the optimal witness, or ok=false if cs is
	// infeasible. len(obj) must equal cs.Width-1 (one entry per
	// variable column, excluding the constant column).
	FeasibilityLexmin(cs *constraint.System, obj polyrat.Vector) (witness polyrat.Vector, ok bool, err error)

	// Lexmin computes the exact lexicographic minimum point of cs's
	// feasible region: minimise x0, then among ties minimise x1, and
	// so on. Returns ok=false if cs is infeasible. Used by the
	// scale-shift step, whose result is applied verbatim to schedule
	// rows (§4.1: "must be exact").
	Lexmin(cs *constraint.System) (witness polyrat.Vector, ok bool, err error)

	// NumCalls returns the running count of solver invocations, for
	// the outbound num_lp_calls timing counter (§6).
	NumCalls() int64
}
