// Package ddg implements the Dependence Graph (§4.3): a statement-
// level graph whose edges are currently-unsatisfied dependences, with
// Tarjan SCC decomposition, direct-connectivity queries, and the
// lifecycle hooks (Update, ComputeSCCs, ComputeSCCVertices) the FCG
// engine and colouring driver call between colour rounds.
//
// The Tarjan implementation follows the three-colour (White/Gray/
// Black) DFS discipline used throughout the teacher's dfs package
// (dfs/cycle.go, dfs/topological.go): recursive post-order DFS with an
// explicit low-link array, adapted here to also track each SCC's
// member list, rather than operating over lvlath's core.Graph (our
// vertex set is Prog statement ids, not generic string vertex IDs, and
// our edges are Dep pointers carrying satisfaction state, which
// core.Graph has no notion of).
package ddg
