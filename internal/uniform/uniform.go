// Package uniform builds dependence polyhedra for the restricted but
// common case of uniform (constant distance-vector) dependences —
// S1[i] -> S2[i+offset] for a fixed integer offset, independent of the
// iteration point. This is exactly the benchmark family spec §8's
// concrete scenarios use (stencils, producer/consumer array shifts)
// and the only dependence shape the excluded front end (iteration-
// domain construction, Farkas elimination) does not actually require:
// the legality polyhedron falls out of requiring equal per-dimension
// coefficients plus one inequality on the constant shift, with no
// domain extreme rays involved. This package exists so cmd/plutofcg
// and package tests can drive a complete Prog without reimplementing
// the excluded polyhedral front end.
package uniform

import (
	"math/big"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// Dep describes a uniform dependence from statement Src to statement
// Dst with constant per-dimension distance Offset (Offset[k] is how
// much larger dst's iteration is than src's along shared dimension k).
type Dep struct {
	Src, Dst int
	Kind     prog.DepKind
	Offset   []int64
}

// Constraints builds the affine legality polyhedron for dep over a
// program of the given shape: dst's and src's loop coefficients must
// agree dimension-by-dimension (the schedule must treat the shared
// dimensions uniformly for a constant-distance dependence to have a
// well-defined sign), and the resulting constant term — the schedule
// applied to the offset plus the shift difference — must be
// non-negative.
func Constraints(p *prog.Prog, dep Dep) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	sys := constraint.NewSystem(width)

	srcStmt, dstStmt := p.Stmts[dep.Src], p.Stmts[dep.Dst]
	n := srcStmt.DOrig
	if dstStmt.DOrig < n {
		n = dstStmt.DOrig
	}
	if len(dep.Offset) < n {
		n = len(dep.Offset)
	}

	// Self-dependences share src and dst coefficient columns, so the
	// equal-coefficient constraint is trivially satisfied and must be
	// skipped: emitting it would alias the +1/-1 writes onto the same
	// column and force that coefficient to zero instead of cancelling.
	if dep.Src != dep.Dst {
		for k := 0; k < n; k++ {
			row := polyrat.NewVector(width)
			srcCol := constraint.StmtCoeffCol(p.NPar, p.NVar, dep.Src, k)
			dstCol := constraint.StmtCoeffCol(p.NPar, p.NVar, dep.Dst, k)
			row[dstCol].SetInt64(1)
			row[srcCol].SetInt64(-1)
			if err := sys.AppendRow(row, true); err != nil {
				return nil, err
			}
		}
	}

	ineq := polyrat.NewVector(width)
	for k := 0; k < n; k++ {
		if dep.Offset[k] == 0 {
			continue
		}
		dstCol := constraint.StmtCoeffCol(p.NPar, p.NVar, dep.Dst, k)
		ineq[dstCol].Add(ineq[dstCol], big.NewRat(dep.Offset[k], 1))
	}
	shiftDst := constraint.StmtShiftCol(p.NPar, p.NVar, dep.Dst)
	shiftSrc := constraint.StmtShiftCol(p.NPar, p.NVar, dep.Src)
	ineq[shiftDst].Add(ineq[shiftDst], big.NewRat(1, 1))
	ineq[shiftSrc].Add(ineq[shiftSrc], big.NewRat(-1, 1))
	if err := sys.AppendRow(ineq, false); err != nil {
		return nil, err
	}

	return sys, nil
}

// AddDep constructs a uniform dependence's polyhedron and appends the
// resulting prog.Dep to p.
func AddDep(p *prog.Prog, dep Dep) error {
	cst, err := Constraints(p, dep)
	if err != nil {
		return err
	}
	d := prog.NewDep(dep.Src, dep.Dst, dep.Kind)
	d.Cst = cst
	p.AddDep(d)
	return nil
}
