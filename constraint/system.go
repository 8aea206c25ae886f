package constraint

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/plutofcg/polyrat"
)

// ErrWidthMismatch indicates a row whose length does not match the
// system's declared width (§3 Width invariant).
var ErrWidthMismatch = errors.New("constraint: row width mismatch")

// ErrRowNotFound indicates an out-of-range row index.
var ErrRowNotFound = errors.New("constraint: row index out of range")

// Width computes CST_WIDTH for a program shape: npar parameters,
// nstmts statements, each with up to nvar loop dimensions.
//
//	CST_WIDTH = npar+1 + nstmts*(nvar+1) + 1
func Width(nvar, npar, nstmts int) int {
	return npar + 1 + nstmts*(nvar+1) + 1
}

// StmtCoeffCol returns the column index of statement j's loop-dimension
// k coefficient (0 <= k < nvar) within a system of the given width
// parameters.
func StmtCoeffCol(npar, nvar, j, k int) int {
	return npar + 1 + j*(nvar+1) + k
}

// StmtShiftCol returns the column index of statement j's constant
// shift coefficient.
func StmtShiftCol(npar, nvar, j int) int {
	return npar + 1 + j*(nvar+1) + nvar
}

// System is a flat list of rows over CST_WIDTH columns, with a
// per-row equality flag, mirroring PlutoConstraints in the original:
// a row is either an equality (`= rhs`) or an inequality (`>= rhs`,
// rhs folded into the row's final column as `row . x + rhs >= 0`).
type System struct {
	Width  int
	Rows   []polyrat.Vector
	IsEq   []bool
}

// NewSystem allocates an empty System of the given width.
func NewSystem(width int) *System {
	return &System{Width: width}
}

// AppendRow appends row (copied) with the given equality flag.
// Returns ErrWidthMismatch if len(row) != s.Width.
func (s *System) AppendRow(row polyrat.Vector, isEq bool) error {
	if len(row) != s.Width {
		return fmt.Errorf("constraint: AppendRow: %w (want %d got %d)", ErrWidthMismatch, s.Width, len(row))
	}
	s.Rows = append(s.Rows, row.Clone())
	s.IsEq = append(s.IsEq, isEq)
	return nil
}

// AppendZeroRow appends a fresh all-zero row, returning its index.
func (s *System) AppendZeroRow(isEq bool) int {
	s.Rows = append(s.Rows, polyrat.NewVector(s.Width))
	s.IsEq = append(s.IsEq, isEq)
	return len(s.Rows) - 1
}

// NumRows returns the row count.
func (s *System) NumRows() int { return len(s.Rows) }

// Row returns the row at idx.
func (s *System) Row(idx int) (polyrat.Vector, error) {
	if idx < 0 || idx >= len(s.Rows) {
		return nil, fmt.Errorf("constraint: Row(%d): %w", idx, ErrRowNotFound)
	}
	return s.Rows[idx], nil
}

// SetEq toggles row idx's equality flag. This is how the Constraint
// Builder's template rows flip between "= 0" (bounding dims to zero)
// and ">= 1" (demanding a dim contribute, per §4.2's reserved-row
// template) without reallocating the system.
func (s *System) SetEq(idx int, isEq bool, rhs *big.Rat) error {
	if idx < 0 || idx >= len(s.Rows) {
		return fmt.Errorf("constraint: SetEq(%d): %w", idx, ErrRowNotFound)
	}
	s.IsEq[idx] = isEq
	s.Rows[idx][s.Width-1].Set(rhs)
	return nil
}

// Clone returns a deep copy of s.
func (s *System) Clone() *System {
	out := &System{Width: s.Width, Rows: make([]polyrat.Vector, len(s.Rows)), IsEq: make([]bool, len(s.IsEq))}
	for i, r := range s.Rows {
		out.Rows[i] = r.Clone()
	}
	copy(out.IsEq, s.IsEq)
	return out
}

// Append returns a new System containing s's rows followed by other's
// rows. Both must share the same Width.
func (s *System) Append(other *System) (*System, error) {
	if s.Width != other.Width {
		return nil, fmt.Errorf("constraint: Append: %w", ErrWidthMismatch)
	}
	out := s.Clone()
	for i, r := range other.Rows {
		out.Rows = append(out.Rows, r.Clone())
		out.IsEq = append(out.IsEq, other.IsEq[i])
	}
	return out, nil
}
