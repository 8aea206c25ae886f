package polyrat_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/stretchr/testify/require"
)

func TestMatrix_SetAtRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := polyrat.NewMatrix(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.SetInt64(1, 2, 7))

	got, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(7, 1), got)
}

func TestMatrix_IndexOutOfBounds(t *testing.T) {
	t.Parallel()

	m, err := polyrat.NewMatrix(2, 2)
	require.NoError(t, err)
	_, err = m.At(2, 0)
	require.ErrorIs(t, err, polyrat.ErrIndexOutOfBounds)
}

func TestMatrix_RowSetRow(t *testing.T) {
	t.Parallel()

	m, err := polyrat.NewMatrix(2, 3)
	require.NoError(t, err)
	row := polyrat.VectorFromInts(1, 2, 3)
	require.NoError(t, m.SetRow(0, row))

	got, err := m.Row(0)
	require.NoError(t, err)
	require.Equal(t, row, got)

	err = m.SetRow(0, polyrat.VectorFromInts(1, 2))
	require.ErrorIs(t, err, polyrat.ErrDimensionMismatch)
}

func TestMatrix_AppendRowsPreservesData(t *testing.T) {
	t.Parallel()

	m, err := polyrat.NewMatrix(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetInt64(0, 0, 5))

	out, err := m.AppendRows(1)
	require.NoError(t, err)
	require.Equal(t, 2, out.Rows())

	got, err := out.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(5, 1), got)
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	m, err := polyrat.NewMatrix(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetInt64(0, 0, 1))

	clone := m.Clone()
	require.NoError(t, clone.SetInt64(0, 0, 2))

	got, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(1, 1), got)
}
