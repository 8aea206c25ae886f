package skew

import (
	"math/big"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/cstbuild"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/prog"
)

// IntroduceSkew runs the post-pass over every SCC of a throwaway DDG
// view: for the first schedule level carrying a negative direction
// component inside the SCC, attempt an LP search for a replacement row
// that recombines the SCC's loop dimensions into non-negative
// directions, overwriting the row in place on success.
func IntroduceSkew(p *prog.Prog, builder *cstbuild.Builder, oracle lp.Oracle) error {
	saved := saveSatisfaction(p)
	defer restoreSatisfaction(p, saved)

	for _, d := range p.Deps {
		d.Satisfaction = prog.Unsatisfied
	}
	view := ddg.New(p)

	for _, scc := range view.SCCs {
		level := negativeDirLevel(p, scc)
		if level < 0 {
			continue
		}
		row, ok, err := trySkew(p, builder, oracle, scc, level)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for j, r := range row {
			p.Stmts[j].Schedule[level] = r
		}
	}
	return nil
}

// negativeDirLevel returns the lowest schedule level at which some
// intra-SCC dependence's direction vector is DirMinus, or -1 if none.
func negativeDirLevel(p *prog.Prog, scc *ddg.SCC) int {
	in := make(map[int]bool, len(scc.Vertices))
	for _, v := range scc.Vertices {
		in[v] = true
	}
	best := -1
	for _, dep := range p.Deps {
		if !in[dep.Src] || !in[dep.Dst] {
			continue
		}
		for level, dir := range dep.DirVec {
			if dir != prog.DirMinus {
				continue
			}
			if best < 0 || level < best {
				best = level
			}
		}
	}
	return best
}

// trySkew solves for a fresh row at `level` recombining every loop
// dimension of every statement in scc, subject to the SCC's cached
// dependence-permutability constraints (already encoding "weakly or
// strictly non-negative") and the usual coefficient bounds.
func trySkew(p *prog.Prog, builder *cstbuild.Builder, oracle lp.Oracle, scc *ddg.SCC, level int) ([][]int64, bool, error) {
	tmpl := builder.CoeffBoundingConstraints(p)

	allDims := make(map[int][]int, len(scc.Vertices))
	for _, j := range scc.Vertices {
		dims := make([]int, p.Stmts[j].DOrig)
		for k := range dims {
			dims[k] = k
		}
		allDims[j] = dims
	}
	ortho, err := builder.SCCOrthoConstraints(p, scc, allDims)
	if err != nil {
		return nil, false, err
	}
	if ortho == nil {
		return nil, false, nil
	}

	intra, err := builder.SCCPermutabilityConstraints(p, scc)
	if err != nil {
		return nil, false, err
	}

	// Only the bounding rows: the template's trailing reserved rows pin
	// every statement column to 0, which the ortho row would contradict.
	nBound := tmpl.Sys.NumRows() - (tmpl.Width - 2 - p.NPar)
	base := &constraint.System{Width: tmpl.Width, Rows: tmpl.Sys.Rows[:nBound], IsEq: tmpl.Sys.IsEq[:nBound]}
	sys, err := base.Append(ortho)
	if err != nil {
		return nil, false, err
	}
	if intra != nil {
		sys, err = sys.Append(intra)
		if err != nil {
			return nil, false, err
		}
	}

	sol, ok, err := oracle.Lexmin(sys)
	if err != nil || !ok {
		return nil, false, err
	}

	rows := make([][]int64, len(p.Stmts))
	for j, s := range p.Stmts {
		row := make([]int64, p.NVar+p.NPar+1)
		for k := 0; k < p.NVar && k < s.DOrig; k++ {
			col := constraint.StmtCoeffCol(p.NPar, p.NVar, j, k)
			row[k] = ratToInt64(sol[col])
		}
		shiftCol := constraint.StmtShiftCol(p.NPar, p.NVar, j)
		row[p.NVar+p.NPar] = ratToInt64(sol[shiftCol])
		rows[j] = row
	}
	return rows, true, nil
}

func ratToInt64(r *big.Rat) int64 {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return q.Int64()
}

func saveSatisfaction(p *prog.Prog) []prog.SatState {
	out := make([]prog.SatState, len(p.Deps))
	for i, d := range p.Deps {
		out[i] = d.Satisfaction
	}
	return out
}

func restoreSatisfaction(p *prog.Prog, saved []prog.SatState) {
	for i, d := range p.Deps {
		d.Satisfaction = saved[i]
	}
}
