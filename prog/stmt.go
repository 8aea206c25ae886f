package prog

import "github.com/katalvlaran/plutofcg/constraint"

// Stmt is one program statement: an iteration domain of rank DOrig, a
// schedule matrix Schedule growing one row per coloured hyperplane,
// and the bookkeeping the FCG engine needs to map loop dimensions onto
// FCG vertices (§3 Statement).
type Stmt struct {
	// ID is this statement's position in Prog.Stmts.
	ID int

	// DOrig is the original iteration-domain rank, d_orig <= nvar.
	DOrig int

	// Schedule holds one row per hyperplane found so far. A loop
	// hyperplane row has NVar+NPar+1 columns (loop coeffs, parameter
	// coeffs, constant); a scalar cut row from package ddg holds only
	// the constant (one column).
	Schedule [][]int64

	// IsOrigLoop[k] reports whether loop-dimension k is a genuine
	// original loop (as opposed to a dimension already collapsed by a
	// prior scalar cut).
	IsOrigLoop []bool

	// SCCID is the id of the SCC this statement currently belongs to.
	SCCID int

	// FCGStmtOffset is the index of this statement's first FCG vertex
	// in statement-dim mode (§3 FCG offset consistency).
	FCGStmtOffset int

	// IntraStmtDepCst caches this statement's intra-statement
	// dependence polyhedron; freed at the end of fcg.Build (§5
	// resource discipline).
	IntraStmtDepCst *constraint.System
}

// NewStmt constructs a Stmt with DOrig original loop dimensions, all
// initially marked as genuine loops and an empty schedule.
func NewStmt(id, dOrig int) *Stmt {
	isOrig := make([]bool, dOrig)
	for i := range isOrig {
		isOrig[i] = true
	}
	return &Stmt{
		ID:         id,
		DOrig:      dOrig,
		IsOrigLoop: isOrig,
	}
}

// NumHyperplanes returns the number of schedule rows found so far.
func (s *Stmt) NumHyperplanes() int { return len(s.Schedule) }

// AppendHyperplane appends row (copied) to the statement's schedule.
func (s *Stmt) AppendHyperplane(row []int64) {
	cp := make([]int64, len(row))
	copy(cp, row)
	s.Schedule = append(s.Schedule, cp)
}
