package fcg

import (
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/prog"
)

// UpdateBetweenSCCs implements §4.4's update_fcg_between_sccs: erase
// every edge connecting a dim of a statement in an SCC with id < b to a
// dim of a statement in an SCC with id >= b (both directions). In
// SCC-cluster mode this erases inter-SCC edges directly between the
// two SCC vertex ranges; in no-fuse mode every inter-SCC edge is
// erased regardless of a, b.
func (g *Graph) UpdateBetweenSCCs(p *prog.Prog, d *ddg.Graph, a, b int) {
	noFuse := p.Options.Fuse == prog.NoFuse

	if g.Mode == SCCClusterMode {
		for _, sccA := range d.SCCs {
			for _, sccC := range d.SCCs {
				if sccA.ID == sccC.ID {
					continue
				}
				if !noFuse && !(sccA.ID < b && sccC.ID >= b) {
					continue
				}
				eraseRange(g.Adj, g.sccOffset[sccA.ID], sccA.MaxDim, g.sccOffset[sccC.ID], sccC.MaxDim)
			}
		}
		return
	}

	for _, sccA := range d.SCCs {
		for _, sccC := range d.SCCs {
			if sccA.ID == sccC.ID {
				continue
			}
			if !noFuse && !(sccA.ID < b && sccC.ID >= b) {
				continue
			}
			for _, u := range sccA.Vertices {
				for _, v := range sccC.Vertices {
					eraseRange(g.Adj, g.stmtOffset[u], p.Stmts[u].DOrig, g.stmtOffset[v], p.Stmts[v].DOrig)
				}
			}
		}
	}
}

func eraseRange(adj [][]bool, off1, n1, off2, n2 int) {
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			adj[off1+i][off2+j] = false
			adj[off2+j][off1+i] = false
		}
	}
}

// AddIntraSCCEdges re-adds the intra-SCC clique for every SCC (§4.4
// fcg_add_intra_scc_edges), used after a rebuild-via-cluster mutation
// that may have dropped them.
func (g *Graph) AddIntraSCCEdges(d *ddg.Graph) {
	addIntraEntityEdges(g, g.sccOffset, sccDims(d))
}

// Rebuild implements §4.4's Rebuild state: frees the current FCG,
// updates the DDG, recomputes SCCs, and builds a fresh FCG from the
// current colour map, resetting the counters the driver tracks.
func (e *Engine) Rebuild(p *prog.Prog, d *ddg.Graph, colour []int, currentColour int) (*Graph, error) {
	d.Update(p)
	d.ComputeSCCs()
	g, err := e.Build(p, d, colour, currentColour)
	if err != nil {
		return nil, err
	}
	g.NumColouredVertices = 0
	g.ToBeRebuilt = false
	return g, nil
}
