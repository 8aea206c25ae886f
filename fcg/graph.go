package fcg

import (
	"github.com/katalvlaran/plutofcg/cstbuild"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// Mode selects which of the two disjoint FCG vertex layouts is in
// effect for the life of one FCG instance (§3 FCG).
type Mode int

const (
	StmtDimMode Mode = iota
	SCCClusterMode
)

// Graph is the Fusion Conflict Graph: a symmetric adjacency matrix
// over schedule-coefficient vertices, plus the bookkeeping bits the
// colouring driver reads (§3 FCG, §4.4).
type Graph struct {
	Mode Mode

	NumVertices int
	Adj         [][]bool // symmetric; Adj[v][v] is the self-loop flag

	NumColouredVertices int
	ToBeRebuilt         bool

	// stmtOffset and sccOffset map a (statement, dim) or (scc, dim) pair
	// to its FCG vertex id (see VertexOfStmtDim and VertexOfSCCDim), the
	// dense-integer-id re-architecture called for by REDESIGN FLAGS in
	// place of pointer-heavy offset structs.
	stmtOffset []int // stmt-dim mode: stmtOffset[j]
	sccOffset  []int // cluster mode: sccOffset[c]
}

// VertexOfStmtDim returns the FCG vertex id for loop-dimension k of
// statement j in statement-dim mode.
func (g *Graph) VertexOfStmtDim(j, k int) int {
	return g.stmtOffset[j] + k
}

// VertexOfSCCDim returns the FCG vertex id for dimension k of SCC c in
// SCC-cluster mode.
func (g *Graph) VertexOfSCCDim(c, k int) int {
	return g.sccOffset[c] + k
}

func addEdge(adj [][]bool, u, v int) {
	adj[u][v] = true
	adj[v][u] = true
}

func newAdjacency(n int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	return adj
}

// Engine bundles the collaborators Build needs: the Constraint
// Builder and the LP Oracle (§6).
type Engine struct {
	Builder *cstbuild.Builder
	Oracle  lp.Oracle
}

// NewEngine constructs an Engine with a fresh cstbuild.Builder and the
// given Oracle backend.
func NewEngine(oracle lp.Oracle) *Engine {
	return &Engine{Builder: cstbuild.NewBuilder(), Oracle: oracle}
}

// Build constructs a fresh FCG over p in the mode selected by
// p.Options.SCCCluster, against colour map `colour` (vertex -> colour,
// 0 = uncoloured) and the colour round currently being computed
// (§4.4 Construction).
func (e *Engine) Build(p *prog.Prog, d *ddg.Graph, colour []int, currentColour int) (*Graph, error) {
	mode := StmtDimMode
	if p.Options.SCCCluster {
		mode = SCCClusterMode
	}

	g := &Graph{Mode: mode}
	if mode == StmtDimMode {
		g.stmtOffset = make([]int, len(p.Stmts))
		off := 0
		for j, s := range p.Stmts {
			s.FCGStmtOffset = off
			g.stmtOffset[j] = off
			off += s.DOrig
		}
		g.NumVertices = off
	} else {
		g.sccOffset = make([]int, len(d.SCCs))
		off := 0
		for _, scc := range d.SCCs {
			scc.FCGSCCOffset = off
			g.sccOffset[scc.ID] = off
			off += scc.MaxDim
		}
		g.NumVertices = off
	}
	g.Adj = newAdjacency(g.NumVertices)

	tmpl := e.Builder.CoeffBoundingConstraints(p)

	if mode == StmtDimMode {
		if err := e.addPermutePreventingSelfLoopsStmt(p, tmpl, g, colour); err != nil {
			return nil, err
		}
	} else {
		if err := e.addPermutePreventingSelfLoopsSCC(p, d, tmpl, g, colour); err != nil {
			return nil, err
		}
	}

	if p.Options.Fuse == prog.TypedFuse {
		if err := e.MarkParallelSCCs(p, d, colour, currentColour); err != nil {
			return nil, err
		}
	}

	if mode == StmtDimMode {
		if err := e.addInterStmtEdges(p, d, tmpl, g, colour); err != nil {
			return nil, err
		}
		addIntraEntityEdges(g, g.stmtOffset, stmtDims(p))
	} else {
		if err := e.addInterSCCEdges(p, d, tmpl, g, colour); err != nil {
			return nil, err
		}
		addIntraEntityEdges(g, g.sccOffset, sccDims(d))
	}

	// Free intra-statement dependence caches: stale after the next
	// coloured hyperplane (§4.4 step 7, §5 resource discipline).
	for _, s := range p.Stmts {
		s.IntraStmtDepCst = nil
	}

	return g, nil
}

func stmtDims(p *prog.Prog) []int {
	out := make([]int, len(p.Stmts))
	for i, s := range p.Stmts {
		out[i] = s.DOrig
	}
	return out
}

func sccDims(d *ddg.Graph) []int {
	out := make([]int, len(d.SCCs))
	for i, scc := range d.SCCs {
		out[i] = scc.MaxDim
	}
	return out
}

// addIntraEntityEdges connects every pair of vertices belonging to the
// same statement/SCC with a plain edge (§4.4 step 6).
func addIntraEntityEdges(g *Graph, offsets []int, dims []int) {
	for e := range offsets {
		n := dims[e]
		for k1 := 0; k1 < n; k1++ {
			for k2 := k1 + 1; k2 < n; k2++ {
				addEdge(g.Adj, offsets[e]+k1, offsets[e]+k2)
			}
		}
	}
}

// uncolouredDims returns, for every entity (statement or SCC) index,
// the loop-dims k < dims[idx] whose FCG vertex is still uncoloured
// (colour[offset+k] == 0).
func uncolouredDims(offsets, dims []int, colour []int) map[int][]int {
	out := make(map[int][]int, len(offsets))
	for idx, off := range offsets {
		var ks []int
		for k := 0; k < dims[idx]; k++ {
			if colour[off+k] == 0 {
				ks = append(ks, k)
			}
		}
		if len(ks) > 0 {
			out[idx] = ks
		}
	}
	return out
}

// IsLPSolutionParallel re-exports ddg's parallelism test for callers
// in this package's import graph that only see fcg.
func IsLPSolutionParallel(sol polyrat.Vector, npar int) bool {
	return ddg.IsLPSolutionParallel(sol, npar)
}
