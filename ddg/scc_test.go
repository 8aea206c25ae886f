package ddg_test

import (
	"testing"

	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/katalvlaran/plutofcg/prog"
	"github.com/stretchr/testify/require"
)

func twoStmtProg(dep bool) *prog.Prog {
	p := prog.NewProg(1, 0, 2)
	p.AddStmt(1)
	p.AddStmt(1)
	if dep {
		p.AddDep(prog.NewDep(0, 1, prog.RAW))
	}
	return p
}

func TestGraph_IndependentStatementsTwoSCCs(t *testing.T) {
	t.Parallel()

	p := twoStmtProg(false)
	d := ddg.New(p)
	require.Len(t, d.SCCs, 2)
	require.False(t, d.IsAdjacent(0, 1))
}

func TestGraph_DependentStatementsShareAdjacency(t *testing.T) {
	t.Parallel()

	p := twoStmtProg(true)
	d := ddg.New(p)
	require.True(t, d.IsAdjacent(0, 1))
	require.True(t, d.SCCsDirectConnected(d.SCCOf(0), d.SCCOf(1)))
}

func TestGraph_SelfLoopSCC(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 1)
	p.AddStmt(1)
	p.AddDep(prog.NewDep(0, 0, prog.RAW))
	d := ddg.New(p)
	require.Len(t, d.SCCs, 1)
	require.Equal(t, 1, d.SCCs[0].Size())
}

func TestGraph_CutAllSCCsAppendsDistinguishingHyperplane(t *testing.T) {
	t.Parallel()

	p := twoStmtProg(true)
	d := ddg.New(p)
	require.NoError(t, d.CutAllSCCs())

	require.Len(t, p.Stmts[0].Schedule, 1)
	require.NotEqual(t, p.Stmts[0].Schedule[0][0], p.Stmts[1].Schedule[0][0])
	require.Equal(t, 0, p.NumUnsatisfiedDeps())
}

func TestGraph_CutBetweenSCCsSplitsAtBoundary(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 3)
	p.AddStmt(1)
	p.AddStmt(1)
	p.AddStmt(1)
	d := ddg.New(p)
	require.NoError(t, d.CutBetweenSCCs(1))

	require.Equal(t, p.Stmts[0].Schedule[0][0], int64(0))
	require.Equal(t, p.Stmts[1].Schedule[0][0], int64(1))
	require.Equal(t, p.Stmts[2].Schedule[0][0], int64(1))
}

func TestGraph_FreeSCCWitnesses(t *testing.T) {
	t.Parallel()

	p := twoStmtProg(false)
	d := ddg.New(p)
	d.SCCs[0].Sol = polyrat.VectorFromInts(1)
	d.SCCs[0].IsParallel = true

	d.FreeSCCWitnesses()
	require.Nil(t, d.SCCs[0].Sol)
	require.False(t, d.SCCs[0].IsParallel)
}

func TestIsLPSolutionParallel(t *testing.T) {
	t.Parallel()

	require.True(t, ddg.IsLPSolutionParallel(polyrat.VectorFromInts(0, 5), 0))
	require.False(t, ddg.IsLPSolutionParallel(polyrat.VectorFromInts(1, 5), 0))
}
