package ddg

import (
	"fmt"
	"io"

	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// SCC is one strongly connected component of the DDG (§3 DDG,
// "SCC cover" invariant).
type SCC struct {
	ID       int
	Vertices []int // statement ids, ascending
	MaxDim   int   // max d_orig over member statements

	IsParallel    bool
	IsSCCColoured bool
	FCGSCCOffset  int

	// Sol is the rational LP witness that proved parallelism, owned
	// by the SCC and freed (set to nil) on DDG rebuild (§3 Derived
	// SCC fields, §5 resource discipline).
	Sol polyrat.Vector
}

// Size returns the number of statements in the SCC.
func (s *SCC) Size() int { return len(s.Vertices) }

// Graph is the Dependence Graph over a Prog's statements (§4.3).
type Graph struct {
	p    *prog.Prog
	SCCs []*SCC

	// adj[u][v] is true iff some currently-unsatisfied Dep connects u
	// and v in either direction (undirected adjacency view used by
	// is_adjacent / sccs_direct_connected).
	adj [][]bool
}

// New builds a DDG over p and immediately computes its SCCs.
func New(p *prog.Prog) *Graph {
	g := &Graph{p: p}
	g.Update(p)
	g.ComputeSCCs()
	return g
}

// Update rebuilds the adjacency matrix from currently-unsatisfied
// dependences (§4.3 update(prog)).
func (g *Graph) Update(p *prog.Prog) {
	n := len(p.Stmts)
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, d := range p.Deps {
		if d.Satisfaction.Satisfied {
			continue
		}
		adj[d.Src][d.Dst] = true
		adj[d.Dst][d.Src] = true
	}
	g.adj = adj
	g.p = p
}

// IsAdjacent reports whether statements u and v are connected by an
// unsatisfied dependence (§4.3 is_adjacent).
func (g *Graph) IsAdjacent(u, v int) bool {
	if u == v {
		return false
	}
	return g.adj[u][v]
}

// directedEdges returns src->dst pairs from currently-unsatisfied deps,
// used only by Tarjan (which needs true edge direction, unlike the
// undirected adjacency matrix used for FCG connectivity queries).
func (g *Graph) directedEdges() map[int][]int {
	out := make(map[int][]int, len(g.p.Stmts))
	for _, d := range g.p.Deps {
		if d.Satisfaction.Satisfied {
			continue
		}
		out[d.Src] = append(out[d.Src], d.Dst)
	}
	return out
}

// ComputeSCCs runs Tarjan's algorithm over the unsatisfied-dependence
// digraph and (re)populates g.SCCs in an order consistent with
// reverse-topological discovery, then renumbers ids 0..S-1 by minimum
// member statement id so "SCCs are visited in id order" (§5 Ordering
// guarantees) is a stable, reproducible order across runs.
func (g *Graph) ComputeSCCs() {
	n := len(g.p.Stmts)
	edges := g.directedEdges()

	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	visited := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var stack []int
	var sccs [][]int
	counter := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true
		visited[v] = true

		for _, w := range edges[v] {
			if !visited[w] {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			var comp []int
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				comp = append(comp, top)
				if top == v {
					break
				}
			}
			sccs = append(sccs, comp)
		}
	}

	for v := 0; v < n; v++ {
		if !visited[v] {
			strongconnect(v)
		}
	}

	g.ComputeSCCVertices(sccs)
}

// ComputeSCCVertices materialises the *SCC membership list and derived
// fields (MaxDim, FCGSCCOffset) from raw id groupings, and assigns
// each statement's SCCID (§4.3 compute_scc_vertices).
//
// Ordering: SCCs are renumbered by ascending minimum-member-statement
// id, which keeps colouring's "SCCs visited in id order" tie-break
// (§5) deterministic regardless of Tarjan's internal discovery order.
func (g *Graph) ComputeSCCVertices(raw [][]int) {
	type withMin = struct {
		verts []int
		min   int
	}
	items := make([]withMin, len(raw))
	for i, comp := range raw {
		min := comp[0]
		for _, v := range comp {
			if v < min {
				min = v
			}
		}
		sorted := append([]int(nil), comp...)
		sortInts(sorted)
		items[i] = withMin{verts: sorted, min: min}
	}
	sortByMin(items)

	sccs := make([]*SCC, len(items))
	offset := 0
	for i, it := range items {
		maxDim := 0
		for _, v := range it.verts {
			if d := g.p.Stmts[v].DOrig; d > maxDim {
				maxDim = d
			}
			g.p.Stmts[v].SCCID = i
		}
		sccs[i] = &SCC{ID: i, Vertices: it.verts, MaxDim: maxDim, FCGSCCOffset: offset}
		offset += maxDim
	}
	g.SCCs = sccs
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func sortByMin(items []struct {
	verts []int
	min   int
}) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].min > items[j].min; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

// SCCsDirectConnected reports whether any unsatisfied dependence
// crosses a->b or b->a (§4.3 sccs_direct_connected).
func (g *Graph) SCCsDirectConnected(a, b *SCC) bool {
	for _, u := range a.Vertices {
		for _, v := range b.Vertices {
			if g.IsAdjacent(u, v) {
				return true
			}
		}
	}
	return false
}

// CutBetweenSCCs appends a scalar hyperplane distinguishing SCCs
// before/after the cut: every statement in an SCC with id < b's
// position gets a lower constant, every statement in an SCC with id >=
// b's position gets a higher one, realizing a distribution boundary
// at the SCC with id `atOrAfter` (§4.3 cut_between_sccs).
func (g *Graph) CutBetweenSCCs(atOrAfter int) error {
	return g.cut(atOrAfter)
}

// CutAllSCCs appends a scalar hyperplane distinguishing every SCC from
// every other (full distribution), used by NO_FUSE and by the
// driver's post-colouring cleanup (§4.3 cut_all_sccs, §4.5 end of
// find_permutable_dimensions_scc_based).
func (g *Graph) CutAllSCCs() error {
	return g.cut(-1)
}

// cut realizes a scalar hyperplane: if atOrAfter < 0 every SCC gets its
// own distinct constant (full distribution); otherwise SCCs with id <
// atOrAfter share one constant and SCCs with id >= atOrAfter share
// another (a single binary split).
func (g *Graph) cut(atOrAfter int) error {
	n := len(g.p.Stmts)
	row := make([]int64, n)
	for _, scc := range g.SCCs {
		var val int64
		if atOrAfter < 0 {
			val = int64(scc.ID)
		} else if scc.ID < atOrAfter {
			val = 0
		} else {
			val = 1
		}
		for _, v := range scc.Vertices {
			row[v] = val
		}
	}
	rows := make([][]int64, n)
	for j := range rows {
		rows[j] = []int64{row[j]}
	}
	if err := g.p.AppendHyperplane(rows, prog.HScalar); err != nil {
		return err
	}
	level := len(g.p.Stmts[0].Schedule) - 1
	g.p.DepSatisfactionUpdate(level, func(d *prog.Dep) bool {
		srcSCC, dstSCC := g.p.Stmts[d.Src].SCCID, g.p.Stmts[d.Dst].SCCID
		return srcSCC != dstSCC
	})
	g.Update(g.p)
	return nil
}

// FreeSCCWitnesses releases every SCC's cached parallel witness,
// called before a DDG rebuild (§5 resource discipline).
func (g *Graph) FreeSCCWitnesses() {
	for _, scc := range g.SCCs {
		scc.Sol = nil
		scc.IsParallel = false
	}
}

// SCCOf returns the SCC containing statement v, or nil.
func (g *Graph) SCCOf(v int) *SCC {
	id := g.p.Stmts[v].SCCID
	if id < 0 || id >= len(g.SCCs) {
		return nil
	}
	return g.SCCs[id]
}

// IsLPSolutionParallel implements the parallelism test of §4.4: a
// witness is parallel iff it carries no contribution from any
// parameter-multiplier column (sol[0..npar] sums to zero).
func IsLPSolutionParallel(sol polyrat.Vector, npar int) bool {
	sum, _ := sol.SumRange(0, npar+1)
	return sum.Sign() == 0
}

// DebugParallelSCCs writes a one-line-per-SCC parallelism dump,
// restoring framework-dfp.c's print_parallel_sccs as a plain
// io.Writer-based diagnostic rather than a direct stdout print (§13).
func (g *Graph) DebugParallelSCCs(w io.Writer) {
	for _, scc := range g.SCCs {
		fmt.Fprintf(w, "scc %d: size=%d parallel=%v\n", scc.ID, scc.Size(), scc.IsParallel)
	}
}
