package constraint_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/polyrat"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	t.Parallel()

	// npar=1, nstmts=2, nvar=3: 1+1 + 2*(3+1) + 1 = 11
	require.Equal(t, 11, constraint.Width(3, 1, 2))
}

func TestStmtColumns(t *testing.T) {
	t.Parallel()

	npar, nvar := 1, 3
	require.Equal(t, 2, constraint.StmtCoeffCol(npar, nvar, 0, 0))
	require.Equal(t, 5, constraint.StmtShiftCol(npar, nvar, 0))
	require.Equal(t, 6, constraint.StmtCoeffCol(npar, nvar, 1, 0))
}

func TestSystem_AppendRowWidthMismatch(t *testing.T) {
	t.Parallel()

	sys := constraint.NewSystem(3)
	err := sys.AppendRow(polyrat.VectorFromInts(1, 2), false)
	require.ErrorIs(t, err, constraint.ErrWidthMismatch)
}

func TestSystem_AppendRowAndRow(t *testing.T) {
	t.Parallel()

	sys := constraint.NewSystem(2)
	require.NoError(t, sys.AppendRow(polyrat.VectorFromInts(1, 2), true))
	require.Equal(t, 1, sys.NumRows())

	row, err := sys.Row(0)
	require.NoError(t, err)
	require.Equal(t, polyrat.VectorFromInts(1, 2), row)

	_, err = sys.Row(5)
	require.ErrorIs(t, err, constraint.ErrRowNotFound)
}

func TestSystem_SetEq(t *testing.T) {
	t.Parallel()

	sys := constraint.NewSystem(2)
	sys.AppendZeroRow(false)
	require.NoError(t, sys.SetEq(0, true, big.NewRat(5, 1)))

	row, err := sys.Row(0)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(5, 1), row[sys.Width-1])

	err = sys.SetEq(9, true, big.NewRat(0, 1))
	require.ErrorIs(t, err, constraint.ErrRowNotFound)
}

func TestSystem_CloneIndependence(t *testing.T) {
	t.Parallel()

	sys := constraint.NewSystem(2)
	require.NoError(t, sys.AppendRow(polyrat.VectorFromInts(1, 2), false))

	clone := sys.Clone()
	clone.Rows[0][0].SetInt64(99)

	row, err := sys.Row(0)
	require.NoError(t, err)
	require.Equal(t, big.NewRat(1, 1), row[0])
}

func TestSystem_AppendCombinesRows(t *testing.T) {
	t.Parallel()

	a := constraint.NewSystem(2)
	require.NoError(t, a.AppendRow(polyrat.VectorFromInts(1, 0), false))
	b := constraint.NewSystem(2)
	require.NoError(t, b.AppendRow(polyrat.VectorFromInts(0, 1), true))

	out, err := a.Append(b)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	require.False(t, out.IsEq[0])
	require.True(t, out.IsEq[1])

	mismatched := constraint.NewSystem(3)
	_, err = a.Append(mismatched)
	require.ErrorIs(t, err, constraint.ErrWidthMismatch)
}
