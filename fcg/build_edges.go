package fcg

import (
	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/cstbuild"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
)

// feasible reports whether cs has a feasible point, by calling the
// oracle with a zero objective (§4.4: "toggle ... if infeasible").
func (e *Engine) feasible(cs *constraint.System) (bool, error) {
	obj := polyrat.NewVector(cs.Width - 1)
	_, ok, err := e.Oracle.FeasibilityLexmin(cs, obj)
	return ok, err
}

func mergeAll(width int, parts ...*constraint.System) (*constraint.System, error) {
	out := constraint.NewSystem(width)
	for _, p := range parts {
		if p == nil {
			continue
		}
		merged, err := out.Append(p)
		if err != nil {
			return nil, err
		}
		out = merged
	}
	return out, nil
}

// addPermutePreventingSelfLoopsStmt implements §4.4 step 3 in
// statement-dim mode: for each statement, for each still-uncoloured
// dim, demand that dim alone and test feasibility against the
// statement's intra-statement dependence constraints; infeasible means
// the dim cannot be permuted at all, i.e. a self-loop.
func (e *Engine) addPermutePreventingSelfLoopsStmt(p *prog.Prog, tmpl *cstbuild.Template, g *Graph, colour []int) error {
	for j, s := range p.Stmts {
		if s.IntraStmtDepCst == nil {
			cst, err := e.Builder.IntraStmtDepConstraints(p, j)
			if err != nil {
				return err
			}
			s.IntraStmtDepCst = cst
		}
		for k := 0; k < s.DOrig; k++ {
			v := g.VertexOfStmtDim(j, k)
			if colour[v] != 0 {
				continue
			}
			toggled, err := tmpl.ToggleDim(p.NPar, p.NVar, j, k, true)
			if err != nil {
				return err
			}
			full, err := mergeAll(tmpl.Width, toggled, s.IntraStmtDepCst)
			if err != nil {
				return err
			}
			ok, err := e.feasible(full)
			if err != nil {
				return err
			}
			if !ok {
				g.Adj[v][v] = true
			}
		}
	}
	return nil
}

// addPermutePreventingSelfLoopsSCC is the SCC-cluster-mode analogue of
// addPermutePreventingSelfLoopsStmt (§4.4 step 3 in cluster mode).
func (e *Engine) addPermutePreventingSelfLoopsSCC(p *prog.Prog, d *ddg.Graph, tmpl *cstbuild.Template, g *Graph, colour []int) error {
	for _, scc := range d.SCCs {
		cst, err := e.Builder.IntraSCCDepConstraints(p, scc)
		if err != nil {
			return err
		}
		for k := 0; k < scc.MaxDim; k++ {
			v := g.VertexOfSCCDim(scc.ID, k)
			if colour[v] != 0 {
				continue
			}
			var toggled *constraint.System
			for _, j := range scc.Vertices {
				if k >= p.Stmts[j].DOrig {
					continue
				}
				t, err := tmpl.ToggleDim(p.NPar, p.NVar, j, k, true)
				if err != nil {
					return err
				}
				toggled, err = mergeAll(tmpl.Width, toggled, t)
				if err != nil {
					return err
				}
			}
			if toggled == nil {
				continue
			}
			full, err := mergeAll(tmpl.Width, toggled, cst)
			if err != nil {
				return err
			}
			ok, err := e.feasible(full)
			if err != nil {
				return err
			}
			if !ok {
				g.Adj[v][v] = true
			}
		}
	}
	return nil
}

// addInterStmtEdges implements §4.4 step 5 in statement-dim mode.
func (e *Engine) addInterStmtEdges(p *prog.Prog, d *ddg.Graph, tmpl *cstbuild.Template, g *Graph, colour []int) error {
	n := len(p.Stmts)
	for j1 := 0; j1 < n; j1++ {
		for j2 := j1 + 1; j2 < n; j2++ {
			if !d.IsAdjacent(j1, j2) {
				continue
			}
			depCst, err := e.Builder.InterStmtDepConstraints(p, j1, j2)
			if err != nil {
				return err
			}
			for k1 := 0; k1 < p.Stmts[j1].DOrig; k1++ {
				v1 := g.VertexOfStmtDim(j1, k1)
				if colour[v1] != 0 {
					continue
				}
				for k2 := 0; k2 < p.Stmts[j2].DOrig; k2++ {
					v2 := g.VertexOfStmtDim(j2, k2)
					if colour[v2] != 0 || g.Adj[v1][v2] {
						continue
					}
					toggled, err := tmpl.ToggleDims(p.NPar, p.NVar, [][2]int{{j1, k1}, {j2, k2}}, true)
					if err != nil {
						return err
					}
					full, err := mergeAll(tmpl.Width, toggled, depCst)
					if err != nil {
						return err
					}
					sol, ok, err := e.Oracle.FeasibilityLexmin(full, polyrat.NewVector(tmpl.Width-1))
					if err != nil {
						return err
					}
					if !ok {
						addEdge(g.Adj, v1, v2)
						continue
					}
					if p.Options.Fuse == prog.TypedFuse && crossesParallelSCC(d, j1, j2) && !ddg.IsLPSolutionParallel(sol, p.NPar) {
						addEdge(g.Adj, v1, v2)
					}
				}
			}
		}
	}
	return nil
}

// addInterSCCEdges is the SCC-cluster-mode analogue (§4.4 step 5).
func (e *Engine) addInterSCCEdges(p *prog.Prog, d *ddg.Graph, tmpl *cstbuild.Template, g *Graph, colour []int) error {
	for i := 0; i < len(d.SCCs); i++ {
		for j := i + 1; j < len(d.SCCs); j++ {
			a, c := d.SCCs[i], d.SCCs[j]
			if !d.SCCsDirectConnected(a, c) {
				continue
			}
			depCst, err := e.Builder.InterSCCDepConstraints(p, a, c)
			if err != nil {
				return err
			}
			for k1 := 0; k1 < a.MaxDim; k1++ {
				v1 := g.VertexOfSCCDim(a.ID, k1)
				if colour[v1] != 0 {
					continue
				}
				for k2 := 0; k2 < c.MaxDim; k2++ {
					v2 := g.VertexOfSCCDim(c.ID, k2)
					if colour[v2] != 0 || g.Adj[v1][v2] {
						continue
					}
					dims := sccDimPairs(a, c, k1, k2, p)
					toggled, err := tmpl.ToggleDims(p.NPar, p.NVar, dims, true)
					if err != nil {
						return err
					}
					full, err := mergeAll(tmpl.Width, toggled, depCst)
					if err != nil {
						return err
					}
					sol, ok, err := e.Oracle.FeasibilityLexmin(full, polyrat.NewVector(tmpl.Width-1))
					if err != nil {
						return err
					}
					if !ok {
						addEdge(g.Adj, v1, v2)
						continue
					}
					if p.Options.Fuse == prog.TypedFuse && a.IsParallel && c.IsParallel && !ddg.IsLPSolutionParallel(sol, p.NPar) && !commonParallelDim(p, d, a, c, k1, k2) {
						addEdge(g.Adj, v1, v2)
					}
				}
			}
		}
	}
	return nil
}

// sccDimPairs expands an SCC-cluster dim pair (k1 of scc a, k2 of scc
// c) into the concrete (statement, dim) toggles across every member
// statement that actually has that dimension.
func sccDimPairs(a, c *ddg.SCC, k1, k2 int, p *prog.Prog) [][2]int {
	var out [][2]int
	for _, j := range a.Vertices {
		if k1 < p.Stmts[j].DOrig {
			out = append(out, [2]int{j, k1})
		}
	}
	for _, j := range c.Vertices {
		if k2 < p.Stmts[j].DOrig {
			out = append(out, [2]int{j, k2})
		}
	}
	return out
}

// crossesParallelSCC reports whether j1 and j2 belong to two distinct
// SCCs and at least one is flagged parallel (used by the statement-dim
// typed-fuse edge test).
func crossesParallelSCC(d *ddg.Graph, j1, j2 int) bool {
	s1, s2 := d.SCCOf(j1), d.SCCOf(j2)
	if s1 == nil || s2 == nil || s1.ID == s2.ID {
		return false
	}
	return s1.IsParallel || s2.IsParallel
}

// commonParallelDim implements the REDESIGN FLAGS (a) fix for
// get_common_parallel_dims_for_sccs: find a linking statement pair
// between scc1 and scc2 (a directly-adjacent pair, one statement in
// each), then report whether dim k1/k2 is a genuine loop dimension at
// that pair and both SCCs' cached witnesses hold a *positive*
// coefficient there — i.e. fusing along this dim would not destroy
// either SCC's own parallelism, so no parallelism-preventing edge
// should be added. The original's loop guard
// `for (i=0; i<(scc1.size && stmt1 == -1); i++)` is rewritten as the
// straightforward bounded loop with an explicit break once a linking
// statement pair is found (§13).
func commonParallelDim(p *prog.Prog, d *ddg.Graph, scc1, scc2 *ddg.SCC, k1, k2 int) bool {
	if scc1.Sol == nil || scc2.Sol == nil || k1 != k2 {
		return false
	}

	stmt1, stmt2 := -1, -1
	for i := 0; i < scc1.Size() && stmt1 == -1; i++ {
		for j := 0; j < scc2.Size(); j++ {
			if d.IsAdjacent(scc1.Vertices[i], scc2.Vertices[j]) {
				stmt1, stmt2 = scc1.Vertices[i], scc2.Vertices[j]
				break
			}
		}
	}
	if stmt1 == -1 {
		return false
	}

	if k1 >= p.Stmts[stmt1].DOrig || k2 >= p.Stmts[stmt2].DOrig {
		return false
	}
	if !p.Stmts[stmt1].IsOrigLoop[k1] || !p.Stmts[stmt2].IsOrigLoop[k2] {
		return false
	}

	col1 := constraint.StmtCoeffCol(p.NPar, p.NVar, stmt1, k1)
	col2 := constraint.StmtCoeffCol(p.NPar, p.NVar, stmt2, k2)
	if col1 >= len(scc1.Sol) || col2 >= len(scc2.Sol) {
		return false
	}
	return scc1.Sol[col1].Sign() > 0 && scc2.Sol[col2].Sign() > 0
}
