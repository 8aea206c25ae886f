package schedule

import (
	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/fcg"
	"github.com/katalvlaran/plutofcg/prog"
)

// colourStmt is the statement-dim-mode recursive backtracking search
// of §4.5 colour_scc. It returns true iff every statement in scc,
// starting at position pos, can take one new vertex of colour c
// producing a valid colouring.
//
// prevVertex is the FCG vertex most recently coloured for the
// preceding statement in this SCC (-1 if none yet); a candidate
// adjacent to it is skipped, enforcing "one dim per hyperplane per
// statement" across the whole SCC, not just within one statement.
func colourStmt(p *prog.Prog, d *ddg.Graph, g *fcg.Graph, scc *ddg.SCC, colour []int, c, pos, prevVertex int) (bool, error) {
	if pos == scc.Size() {
		return true, nil
	}
	if p.ColouredDims > scc.MaxDim {
		return true, nil
	}
	if p.ColouredDims == scc.MaxDim && scc.Size() == 1 {
		cutIfConnected(p, d, scc)
		return true, nil
	}

	stmtID := scc.Vertices[pos]
	s := p.Stmts[stmtID]

	var discard []int
	for k := 0; k < s.DOrig; k++ {
		if containsInt(discard, k) {
			continue
		}
		v := g.VertexOfStmtDim(stmtID, k)
		if colour[v] != 0 && colour[v] != c {
			continue
		}
		if g.Adj[v][v] {
			continue
		}
		if prevVertex >= 0 && g.Adj[v][prevVertex] {
			continue
		}
		if p.Options.LPColour && scc.Sol != nil {
			col := constraint.StmtCoeffCol(p.NPar, p.NVar, stmtID, k)
			if col < len(scc.Sol) && scc.Sol[col].Sign() == 0 {
				continue
			}
		}
		if !validColour(g, colour, v, c) {
			discard = append(discard, k)
			continue
		}

		prev := colour[v]
		colour[v] = c
		ok, err := colourStmt(p, d, g, scc, colour, c, pos+1, v)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		colour[v] = prev
		discard = append(discard, k)
	}
	return false, nil
}

// colourCluster is the SCC-cluster-mode linear scan of §4.5
// colour_scc_cluster: the first valid dim wins, no recursion.
func colourCluster(p *prog.Prog, g *fcg.Graph, scc *ddg.SCC, colour []int, c int) bool {
	for k := 0; k < scc.MaxDim; k++ {
		v := g.VertexOfSCCDim(scc.ID, k)
		if colour[v] != 0 {
			continue
		}
		if g.Adj[v][v] {
			continue
		}
		if p.Options.LPColour && scc.Sol != nil && clusterDimAllZero(p, scc, k) {
			continue
		}
		if validColour(g, colour, v, c) {
			colour[v] = c
			return true
		}
	}
	return false
}

// clusterDimAllZero reports whether every member statement of scc that
// actually carries dim k has a zero witness coefficient there, the
// cluster-mode analogue of the per-statement lpcolour tie-break: a
// shared cluster dim is skipped only when none of its member
// statements show a non-zero coefficient at their own column for it.
func clusterDimAllZero(p *prog.Prog, scc *ddg.SCC, k int) bool {
	any := false
	for _, j := range scc.Vertices {
		if k >= p.Stmts[j].DOrig {
			continue
		}
		col := constraint.StmtCoeffCol(p.NPar, p.NVar, j, k)
		if col >= len(scc.Sol) {
			continue
		}
		any = true
		if scc.Sol[col].Sign() != 0 {
			return false
		}
	}
	return any
}

// validColour reports whether vertex v may take colour c: no vertex
// currently adjacent to v already bears c.
func validColour(g *fcg.Graph, colour []int, v, c int) bool {
	for u := 0; u < g.NumVertices; u++ {
		if g.Adj[v][u] && colour[u] == c {
			return false
		}
	}
	return true
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// cutIfConnected implements colour_scc step 3: when the current SCC
// has no dims left and is a singleton, scan every other SCC and cut
// the DDG at the first directly-connected one.
func cutIfConnected(p *prog.Prog, d *ddg.Graph, scc *ddg.SCC) {
	for _, other := range d.SCCs {
		if other.ID == scc.ID {
			continue
		}
		if !d.SCCsDirectConnected(scc, other) {
			continue
		}
		if p.Options.Fuse == prog.NoFuse {
			d.CutAllSCCs()
		} else {
			hi := scc.ID
			if other.ID > hi {
				hi = other.ID
			}
			d.CutBetweenSCCs(hi)
		}
		break
	}
}
