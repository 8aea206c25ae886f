package polyrat_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/stretchr/testify/require"
)

func TestVector_DotAndZero(t *testing.T) {
	t.Parallel()

	a := polyrat.VectorFromInts(1, 2, 3)
	b := polyrat.VectorFromInts(4, 5, 6)
	sum, err := a.Dot(b)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(32, 1), sum) // 1*4+2*5+3*6

	require.True(t, polyrat.NewVector(3).IsZero())
	require.False(t, a.IsZero())
}

func TestVector_DotDimensionMismatch(t *testing.T) {
	t.Parallel()

	a := polyrat.VectorFromInts(1, 2)
	b := polyrat.VectorFromInts(1, 2, 3)
	_, err := a.Dot(b)
	require.ErrorIs(t, err, polyrat.ErrDimensionMismatch)
}

func TestVector_SumRange(t *testing.T) {
	t.Parallel()

	v := polyrat.VectorFromInts(1, 2, 3, 4)
	sum, err := v.SumRange(1, 3)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(5, 1), sum) // 2+3

	_, err = v.SumRange(2, 1)
	require.ErrorIs(t, err, polyrat.ErrIndexOutOfBounds)

	_, err = v.SumRange(0, 5)
	require.ErrorIs(t, err, polyrat.ErrIndexOutOfBounds)
}

func TestVector_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := polyrat.VectorFromInts(1, 2, 3)
	b := a.Clone()
	b[0].SetInt64(99)
	require.Equal(t, big.NewRat(1, 1), a[0])
}

func TestVector_Ints(t *testing.T) {
	t.Parallel()

	v := polyrat.Vector{big.NewRat(7, 2), big.NewRat(-3, 1)}
	require.Equal(t, []int64{3, -3}, v.Ints()) // truncation toward zero
}
