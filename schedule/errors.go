package schedule

import (
	"fmt"

	"github.com/katalvlaran/plutofcg/prog"
)

// BugError is the distinguished "this should be impossible" signal of
// §7: LP infeasibility in mark_parallel_sccs after the precise-
// satisfaction retry, or a scaling failure in scale_shift_permutations
// after a fully successful colouring round. Both indicate a violated
// invariant rather than an ordinary LP-infeasible result, so they are
// surfaced rather than silently retried (§7 Propagation).
type BugError struct {
	Where    string // which routine detected the inconsistency
	Colour   int
	Schedule [][][]int64 // per-statement schedule dump at the point of failure
	Colours  []int       // colour map dump at the point of failure
}

func (e *BugError) Error() string {
	return fmt.Sprintf("schedule: %s: invariant violated at colour %d (this indicates a design bug, not an ordinary infeasibility)", e.Where, e.Colour)
}

// newBugError captures a schedule/colour-map dump from p and colour
// for inclusion in the aborted diagnostic (§7: "surfaced as a fatal
// diagnostic with full schedule dump").
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
