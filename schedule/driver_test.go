package schedule_test

import (
	"testing"

	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/internal/scenario"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/schedule"
	"github.com/stretchr/testify/require"
)

func buildDriver(t *testing.T, name scenario.Name) (*schedule.Driver, *ddg.Graph) {
	t.Helper()
	p, err := scenario.Build(name)
	require.NoError(t, err)
	d := ddg.New(p)
	oracle := lp.NewSimplexOracle()
	driver, err := schedule.NewDriver(p, d, oracle)
	require.NoError(t, err)
	return driver, d
}

func TestNewDriver_BuildsInitialFCGAtColourZero(t *testing.T) {
	t.Parallel()

	driver, _ := buildDriver(t, scenario.IndependentNests)
	require.NotNil(t, driver.G)
	require.Equal(t, -1, driver.PrevSCC)
	require.Equal(t, 4, driver.G.NumVertices) // 2 statements * 2 dims each
}

func TestFindPermutableDimensionsSCCBased_IndependentNests(t *testing.T) {
	t.Parallel()

	// No dependences at all: every colour round should succeed without
	// any cut or repair, leaving NVar hyperplanes per statement.
	driver, _ := buildDriver(t, scenario.IndependentNests)
	require.NoError(t, driver.FindPermutableDimensionsSCCBased())

	for _, s := range driver.Prog.Stmts {
		require.Len(t, s.Schedule, driver.Prog.NVar)
	}
	require.Equal(t, 0, driver.Prog.NumUnsatisfiedDeps())
}

func TestFindPermutableDimensionsSCCBased_ProducerConsumerFuse(t *testing.T) {
	t.Parallel()

	// S1 writes A[i], S2 reads A[i]: the single shared dim is
	// permutable, so the one dependence should be satisfied without
	// any distribution cut splitting the two statements apart.
	driver, _ := buildDriver(t, scenario.ProducerConsumerFuse)
	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, driver.Prog.NumUnsatisfiedDeps())
}

func TestFindPermutableDimensionsSCCBased_ProducerConsumerCut(t *testing.T) {
	t.Parallel()

	// S1 writes A[i], S2 reads A[i+1]: the outer dim cannot be shared
	// legally, so the driver must fall back to a cut to finish with
	// every dependence satisfied.
	driver, _ := buildDriver(t, scenario.ProducerConsumerCut)
	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, driver.Prog.NumUnsatisfiedDeps())
}

func TestFindPermutableDimensionsSCCBased_Stencil2D(t *testing.T) {
	t.Parallel()

	driver, _ := buildDriver(t, scenario.Stencil2D)
	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, driver.Prog.NumUnsatisfiedDeps())
	require.Equal(t, driver.Prog.NVar, driver.Prog.ColouredDims)
}

func TestFindPermutableDimensionsSCCBased_TypedFuseTradeoff(t *testing.T) {
	t.Parallel()

	// lpcolour is set on this scenario's Options: MarkParallelSCCs runs
	// ahead of every colour round without erroring, and the run still
	// finishes with every dependence satisfied.
	driver, _ := buildDriver(t, scenario.TypedFuseTradeoff)
	require.True(t, driver.Prog.Options.LPColour)
	require.NoError(t, driver.FindPermutableDimensionsSCCBased())
	require.Equal(t, 0, driver.Prog.NumUnsatisfiedDeps())
}

func TestBugError_FormatsWhereAndColour(t *testing.T) {
	t.Parallel()

	colour := make([]int, 2)
	e := &schedule.BugError{Where: "ScaleShiftPermutations", Colour: 2, Schedule: nil, Colours: colour}
	require.Contains(t, e.Error(), "ScaleShiftPermutations")
	require.Contains(t, e.Error(), "colour 2")
}
