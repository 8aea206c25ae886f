package fcg

import (
	"fmt"

	"github.com/katalvlaran/plutofcg/prog"
)

// BugError is mark_parallel_sccs's distinguished "this should be
// impossible" signal (§4.4, §7): an SCC-permutability probe that is
// still LP-infeasible after the precise dependence-satisfaction/SCC
// rebuild retry indicates a violated invariant, not an ordinary
// infeasible result. It mirrors schedule.BugError's shape (the same
// pattern used for the sibling colouring/scale-shift failures) rather
// than importing it, since schedule imports fcg and not the reverse.
type BugError struct {
	Where    string
	Colour   int
	Schedule [][][]int64 // per-statement schedule dump at the point of failure
	Colours  []int       // colour map dump at the point of failure
}

func (e *BugError) Error() string {
	return fmt.Sprintf("fcg: %s: invariant violated at colour %d (this indicates a design bug, not an ordinary infeasibility)", e.Where, e.Colour)
}

// newBugError captures a schedule/colour-map dump from p and colour
// for inclusion in the aborted diagnostic.
func newBugError(where string, p *prog.Prog, colour []int, c int) *BugError {
	dump := make([][][]int64, len(p.Stmts))
	for i, s := range p.Stmts {
		rows := make([][]int64, len(s.Schedule))
		for j, row := range s.Schedule {
			rows[j] = append([]int64(nil), row...)
		}
		dump[i] = rows
	}
	return &BugError{
		Where:    where,
		Colour:   c,
		Schedule: dump,
		Colours:  append([]int(nil), colour...),
	}
}
