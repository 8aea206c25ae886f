package lp_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/stretchr/testify/require"
)

// system2Col builds a width-3 system (2 variables + constant column)
// from rows of the form [a, b, c] meaning a*x0 + b*x1 + c (>= 0 unless
// isEq).
func system2Col(rows [][3]int64, isEq []bool) *constraint.System {
	sys := constraint.NewSystem(3)
	for i, r := range rows {
		row := polyrat.VectorFromInts(r[0], r[1], r[2])
		sys.AppendRow(row, isEq[i])
	}
	return sys
}

func TestSimplexOracle_FeasibleRegion(t *testing.T) {
	t.Parallel()

	// x0 >= 0, x1 >= 0, x0 + x1 >= 1. Minimise x0: optimum is x0=0,x1=1.
	sys := system2Col([][3]int64{
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, -1},
	}, []bool{false, false, false})

	oracle := lp.NewSimplexOracle()
	obj := polyrat.VectorFromInts(1, 0)
	sol, ok, err := oracle.FeasibilityLexmin(sys, obj)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewRat(0, 1), sol[0])
	require.Equal(t, int64(1), oracle.NumCalls())
}

func TestSimplexOracle_Infeasible(t *testing.T) {
	t.Parallel()

	// x0 >= 1 and x0 <= -1 (encoded as -x0 - 1 >= 0) is infeasible.
	sys := system2Col([][3]int64{
		{1, 0, -1},
		{-1, 0, -1},
	}, []bool{false, false})

	oracle := lp.NewSimplexOracle()
	_, ok, err := oracle.FeasibilityLexmin(sys, polyrat.VectorFromInts(1, 0))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSimplexOracle_Lexmin(t *testing.T) {
	t.Parallel()

	// x0 + x1 >= 2, x0 >= 0, x1 >= 0; lexmin picks x0=0 first, then
	// x1=2 as the smallest value satisfying the sum constraint.
	sys := system2Col([][3]int64{
		{1, 1, -2},
		{1, 0, 0},
		{0, 1, 0},
	}, []bool{false, false, false})

	oracle := lp.NewSimplexOracle()
	sol, ok, err := oracle.Lexmin(sys)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewRat(0, 1), sol[0])
	require.Equal(t, big.NewRat(2, 1), sol[1])
}

func TestSimplexOracle_LexminInfeasible(t *testing.T) {
	t.Parallel()

	sys := system2Col([][3]int64{
		{1, 0, -1},
		{-1, 0, -1},
	}, []bool{false, false})

	oracle := lp.NewSimplexOracle()
	_, ok, err := oracle.Lexmin(sys)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSimplexOracle_FreeVariableSplit(t *testing.T) {
	t.Parallel()

	// x0 = -3 (equality), x1 unconstrained beyond >= 0: minimising x1
	// should still recover the negative x0 via the u-v split.
	sys := system2Col([][3]int64{
		{1, 0, 3},
		{0, 1, 0},
	}, []bool{true, false})

	oracle := lp.NewSimplexOracle()
	sol, ok, err := oracle.FeasibilityLexmin(sys, polyrat.VectorFromInts(0, 1))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewRat(-3, 1), sol[0])
}
