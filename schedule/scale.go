package schedule

import (
	"math/big"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/cstbuild"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// ScaleShiftPermutations implements §4.5 scale_shift_permutations: once
// every statement has contributed a dim of colour c+1, build a
// constraint system pinning every coloured dim to contribute (>= 1)
// and every other dim to zero, lexmin it, and translate the witness
// into one new schedule row per statement.
//
// Returns ok=false only when total_coloured_stmts[c] hasn't reached
// nstmts yet, or when the pinned system turns out infeasible — both
// signal a design bug to the caller (§7), since the colouring round
// that precedes this call is supposed to guarantee both.
func ScaleShiftPermutations(p *prog.Prog, d *ddg.Graph, builder *cstbuild.Builder, oracle lp.Oracle, colour []int, c int) ([][]int64, bool, error) {
	if p.TotalColouredStmts[c] != len(p.Stmts) {
		return nil, false, nil
	}

	width := constraint.Width(p.NVar, p.NPar, len(p.Stmts))
	tmpl := builder.CoeffBoundingConstraints(p)

	// Only the bounding rows: the template's trailing reserved rows pin
	// every statement column to 0, which the demand rows below contradict.
	nBound := tmpl.Sys.NumRows() - (tmpl.Width - 2 - p.NPar)
	sys := (&constraint.System{Width: tmpl.Width, Rows: tmpl.Sys.Rows[:nBound], IsEq: tmpl.Sys.IsEq[:nBound]}).Clone()
	for _, dep := range p.Deps {
		cst, err := builder.PermutabilityConstraints(dep)
		if err != nil {
			continue
		}
		merged, err := sys.Append(cst)
		if err != nil {
			return nil, false, err
		}
		sys = merged
	}

	for j, s := range p.Stmts {
		for k := 0; k < s.DOrig; k++ {
			col := constraint.StmtCoeffCol(p.NPar, p.NVar, j, k)
			demand := s.IsOrigLoop[k] && colour[vertexOf(p, d, j, k)] == c+1
			row := polyrat.NewVector(width)
			if demand {
				row[col].SetInt64(1)
				row[width-1].SetInt64(-1) // coeff_col - 1 >= 0
				if err := sys.AppendRow(row, false); err != nil {
					return nil, false, err
				}
			} else {
				row[col].SetInt64(1) // coeff_col = 0
				if err := sys.AppendRow(row, true); err != nil {
					return nil, false, err
				}
			}
		}
	}

	sol, ok, err := oracle.Lexmin(sys)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
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

// vertexOf maps (statement j, dim k) to its FCG vertex id, in whichever
// mode is active: statement-dim mode reads the cached FCGStmtOffset
// directly; SCC-cluster mode looks up the statement's SCC and uses its
// FCGSCCOffset, since cluster-mode colours are keyed per SCC dim
// rather than per statement dim.
func vertexOf(p *prog.Prog, d *ddg.Graph, j, k int) int {
	if !p.Options.SCCCluster {
		return p.Stmts[j].FCGStmtOffset + k
	}
	scc := d.SCCOf(j)
	return scc.FCGSCCOffset + k
}
