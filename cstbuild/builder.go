package cstbuild

import (
	"errors"
	"math/big"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// ErrNoDepPolyhedron indicates a Dep has no pre-built Cst. Constructing
// one from the original iteration-domain constraints is out of scope
// (§1); callers must supply it at Dep construction time.
var ErrNoDepPolyhedron = errors.New("cstbuild: dependence has no pre-built constraint polyhedron")

// DefaultCoeffBound is the default magnitude bound placed on every
// schedule coefficient by CoeffBoundingConstraints.
const DefaultCoeffBound = 4

// Builder assembles constraint.System values over a *prog.Prog,
// implementing §4.2. It holds only a coefficient bound policy; all
// other state lives on the Prog/Dep/SCC it is invoked with.
type Builder struct {
	CoeffBound int64
}

// NewBuilder returns a Builder with DefaultCoeffBound.
func NewBuilder() *Builder {
	return &Builder{CoeffBound: DefaultCoeffBound}
}

// Template is the reusable constraint-system skeleton built once per
// FCG construction: coefficient bounding rows, followed by one
// reserved toggleable row per per-statement coefficient/shift column
// (§4.2: "the last CST_WIDTH-1 rows are reserved... Rows npar+1..
// CST_WIDTH-2 are flagged is_eq=1 initially").
type Template struct {
	Sys         *constraint.System
	Width       int
	reservedRow map[int]int // column -> row index within Sys
}

// CoeffBoundingConstraints builds the base polyhedron bounding every
// coefficient's magnitude, lower-bounding parameter-multiplier
// coefficients by 0, and toggleable-equating every per-dim coefficient
// column to 0 (§4.2 coeff_bounding_constraints).
func (b *Builder) CoeffBoundingConstraints(p *prog.Prog) *Template {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	sys := constraint.NewSystem(width)
	bound := new(big.Rat).SetInt64(b.CoeffBound)

	// Parameter/constant-bound columns: lower-bounded at 0, upper-
	// bounded at the coefficient bound.
	for col := 0; col <= p.NPar; col++ {
		lower := polyrat.NewVector(width)
		lower[col].SetInt64(1)
		sys.AppendRow(lower, false) // coeff_col >= 0

		upper := polyrat.NewVector(width)
		upper[col].SetInt64(-1)
		upper[width-1].Set(bound)
		sys.AppendRow(upper, false) // bound - coeff_col >= 0
	}

	// Per-statement coefficient/shift columns: symmetric magnitude
	// bound, [-bound, bound].
	for col := p.NPar + 1; col <= width-2; col++ {
		lower := polyrat.NewVector(width)
		lower[col].SetInt64(1)
		lower[width-1].Set(bound)
		sys.AppendRow(lower, false) // coeff_col + bound >= 0

		upper := polyrat.NewVector(width)
		upper[col].SetInt64(-1)
		upper[width-1].Set(bound)
		sys.AppendRow(upper, false) // bound - coeff_col >= 0
	}

	reserved := make(map[int]int, width-1-(p.NPar+1))
	for col := p.NPar + 1; col <= width-2; col++ {
		row := polyrat.NewVector(width)
		row[col].SetInt64(1)
		idx := sys.AppendZeroRow(true)
		sys.Rows[idx] = row // "coeff_col = 0"
		reserved[col] = idx
	}

	return &Template{Sys: sys, Width: width, reservedRow: reserved}
}

// ToggleDim flips statement j's loop-dimension-k reserved row between
// "= 0" (demand=false) and ">= 1" (demand=true), per §4.2's template
// mutation policy. Returns a mutated clone, leaving t untouched so
// callers can probe multiple toggles from the same base template.
func (t *Template) ToggleDim(npar, nvar, j, k int, demand bool) (*constraint.System, error) {
	col := constraint.StmtCoeffCol(npar, nvar, j, k)
	row, ok := t.reservedRow[col]
	if !ok {
		return nil, errors.New("cstbuild: no reserved row for column")
	}
	clone := t.Sys.Clone()
	rhs := new(big.Rat)
	if demand {
		rhs.SetInt64(-1)
	}
	if err := clone.SetEq(row, !demand, rhs); err != nil {
		return nil, err
	}
	return clone, nil
}

// ToggleDims applies ToggleDim for every (j,k) pair in dims, all
// against the same cloned base, used to probe pairwise/ inter-SCC
// feasibility over two dimensions at once (§4.4 step 5).
func (t *Template) ToggleDims(npar, nvar int, dims [][2]int, demand bool) (*constraint.System, error) {
	clone := t.Sys.Clone()
	for _, jk := range dims {
		col := constraint.StmtCoeffCol(npar, nvar, jk[0], jk[1])
		row, ok := t.reservedRow[col]
		if !ok {
			return nil, errors.New("cstbuild: no reserved row for column")
		}
		rhs := new(big.Rat)
		if demand {
			rhs.SetInt64(-1)
		}
		if err := clone.SetEq(row, !demand, rhs); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// PermutabilityConstraints returns dep's cached constraint polyhedron.
// Building it from the original iteration-domain dependence is out of
// scope (§1); it must already be set on the Dep.
func (b *Builder) PermutabilityConstraints(dep *prog.Dep) (*constraint.System, error) {
	if dep.Cst == nil {
		return nil, ErrNoDepPolyhedron
	}
	return dep.Cst, nil
}

// unionDeps folds PermutabilityConstraints over every dep selected by
// keep into a single System of the given width.
func (b *Builder) unionDeps(width int, deps []*prog.Dep, keep func(d *prog.Dep) bool) (*constraint.System, error) {
	out := constraint.NewSystem(width)
	for _, d := range deps {
		if !keep(d) {
			continue
		}
		cst, err := b.PermutabilityConstraints(d)
		if err != nil {
			continue // no pre-built polyhedron: treat as unconstrained (no edge contribution)
		}
		merged, err := out.Append(cst)
		if err != nil {
			return nil, err
		}
		out = merged
	}
	return out, nil
}

// SCCPermutabilityConstraints unions the permutability constraints of
// every dependence whose both endpoints lie inside scc (§4.2
// scc_permutability_constraints).
func (b *Builder) SCCPermutabilityConstraints(p *prog.Prog, scc *ddg.SCC) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	in := memberSet(scc)
	return b.unionDeps(width, p.Deps, func(d *prog.Dep) bool {
		return in[d.Src] && in[d.Dst]
	})
}

// InterSCCDepConstraints unions dep polyhedra whose endpoints straddle
// SCCs a and b (§4.2 inter_scc_dep_constraints).
func (b *Builder) InterSCCDepConstraints(p *prog.Prog, a, c *ddg.SCC) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	inA, inC := memberSet(a), memberSet(c)
	return b.unionDeps(width, p.Deps, func(d *prog.Dep) bool {
		return (inA[d.Src] && inC[d.Dst]) || (inA[d.Dst] && inC[d.Src])
	})
}

// InterStmtDepConstraints unions dep polyhedra directly connecting
// statements s1 and s2, the statement-dim-mode analogue of
// InterSCCDepConstraints used when probing pairwise FCG edges between
// two individual statements rather than two SCC clusters (§4.4 step 5).
func (b *Builder) InterStmtDepConstraints(p *prog.Prog, s1, s2 int) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	return b.unionDeps(width, p.Deps, func(d *prog.Dep) bool {
		return (d.Src == s1 && d.Dst == s2) || (d.Src == s2 && d.Dst == s1)
	})
}

// IntraStmtDepConstraints unions self-dependence polyhedra of
// statement s (§4.2 intra_stmt_dep_constraints).
func (b *Builder) IntraStmtDepConstraints(p *prog.Prog, s int) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	return b.unionDeps(width, p.Deps, func(d *prog.Dep) bool {
		return d.IsIntra() && d.Src == s
	})
}

// IntraSCCDepConstraints unions self-dependence polyhedra of every
// statement member of scc (§4.2 intra_scc_dep_constraints).
func (b *Builder) IntraSCCDepConstraints(p *prog.Prog, scc *ddg.SCC) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	in := memberSet(scc)
	return b.unionDeps(width, p.Deps, func(d *prog.Dep) bool {
		return d.IsIntra() && in[d.Src]
	})
}

// SCCOrthoConstraints builds the linear-independence (orthogonality)
// row for scc at the given colour map: for each statement in the SCC,
// a row demanding the sum of its still-uncoloured per-dim coefficients
// be >= 1. Returns (nil, nil) if no statement has an uncoloured dim
// (§4.2 scc_ortho_constraints).
func (b *Builder) SCCOrthoConstraints(p *prog.Prog, scc *ddg.SCC, uncolouredDims map[int][]int) (*constraint.System, error) {
	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	out := constraint.NewSystem(width)
	any := false
	for _, j := range scc.Vertices {
		dims := uncolouredDims[j]
		if len(dims) == 0 {
			continue
		}
		any = true
		row := polyrat.NewVector(width)
		for _, k := range dims {
			col := constraint.StmtCoeffCol(p.NPar, p.NVar, j, k)
			row[col].SetInt64(1)
		}
		row[width-1].SetInt64(-1)
		if err := out.AppendRow(row, false); err != nil {
			return nil, err
		}
	}
	if !any {
		return nil, nil
	}
	return out, nil
}

func memberSet(scc *ddg.SCC) map[int]bool {
	m := make(map[int]bool, len(scc.Vertices))
	for _, v := range scc.Vertices {
		m[v] = true
	}
	return m
}
