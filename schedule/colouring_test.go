package schedule_test

import (
	"testing"

	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/internal/uniform"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/prog"
	"github.com/katalvlaran/plutofcg/schedule"
	"github.com/stretchr/testify/require"
)

// TestFindPermutableDimensionsSCCBased_SCCClusterMode exercises
// colour_scc_cluster's linear-scan path (as opposed to the statement-
// dim backtracking search most other tests in this package drive),
// which only runs when Options.SCCCluster is set.
func TestFindPermutableDimensionsSCCBased_SCCClusterMode(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 2)
	p.Options.SCCCluster = true
	p.AddStmt(1)
	p.AddStmt(1)
	require.NoError(t, uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}))

	d := ddg.New(p)
	oracle := lp.NewSimplexOracle()
	driver, err := schedule.NewDriver(p, d, oracle)
	require.NoError(t, err)

	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, p.NumUnsatisfiedDeps())
}

// TestFindPermutableDimensionsSCCBased_SCCClusterTypedFuse drives the
// SCC-cluster-mode, typed-fuse combination: two single-statement SCCs
// joined by a same-iteration producer-consumer dependence, which
// exercises addInterSCCEdges' commonParallelDim probe (only reachable
// in cluster mode) end to end.
func TestFindPermutableDimensionsSCCBased_SCCClusterTypedFuse(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 2)
	p.Options.SCCCluster = true
	p.Options.Fuse = prog.TypedFuse
	p.AddStmt(1)
	p.AddStmt(1)
	require.NoError(t, uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}))

	d := ddg.New(p)
	oracle := lp.NewSimplexOracle()
	driver, err := schedule.NewDriver(p, d, oracle)
	require.NoError(t, err)

	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, p.NumUnsatisfiedDeps())
}

// TestFindPermutableDimensionsSCCBased_UnrealizableSelfDepSurfacesBugError
// checks that a statement whose only dim carries a self-dependence with
// no legal direction (offset -1, i.e. a later iteration feeding an
// earlier one) surfaces schedule's distinguished BugError rather than
// silently producing an incorrect schedule: every dim is permanently
// self-looped in the FCG, so no colour round can ever succeed.
func TestFindPermutableDimensionsSCCBased_UnrealizableSelfDepSurfacesBugError(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 1)
	p.AddStmt(1)
	require.NoError(t, uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{-1}}))

	d := ddg.New(p)
	oracle := lp.NewSimplexOracle()
	driver, err := schedule.NewDriver(p, d, oracle)
	require.NoError(t, err)

	err = driver.FindPermutableDimensionsSCCBased()
	require.Error(t, err)
	var bugErr *schedule.BugError
	require.ErrorAs(t, err, &bugErr)
}

// TestFindPermutableDimensionsSCCBased_LPColourWithParamsAndTypedFuse
// exercises the lpcolour tie-break with NPar > 0: the witness vector's
// statement-coefficient columns no longer start at index 0, so a
// tie-break reading the raw loop-dim index instead of
// constraint.StmtCoeffCol would evaluate the wrong (parameter/bound)
// column and could wrongly discard every candidate dim.
func TestFindPermutableDimensionsSCCBased_LPColourWithParamsAndTypedFuse(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 1, 2)
	p.Options.LPColour = true
	p.Options.Fuse = prog.TypedFuse
	p.AddStmt(1)
	p.AddStmt(1)
	require.NoError(t, uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}))

	d := ddg.New(p)
	oracle := lp.NewSimplexOracle()
	driver, err := schedule.NewDriver(p, d, oracle)
	require.NoError(t, err)

	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, p.NumUnsatisfiedDeps())
}
