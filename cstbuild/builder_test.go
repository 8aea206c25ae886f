package cstbuild_test

import (
	"testing"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/cstbuild"
	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/internal/uniform"
	"github.com/katalvlaran/plutofcg/prog"
	"github.com/stretchr/testify/require"
)

func twoStmtProgWithDep(t *testing.T) *prog.Prog {
	t.Helper()
	p := prog.NewProg(1, 0, 2)
	p.AddStmt(1)
	p.AddStmt(1)
	require.NoError(t, uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}))
	return p
}

func TestCoeffBoundingConstraints_Width(t *testing.T) {
	t.Parallel()

	p := twoStmtProgWithDep(t)
	b := cstbuild.NewBuilder()
	tmpl := b.CoeffBoundingConstraints(p)
	require.Equal(t, constraint.Width(p.NVar, p.NPar, len(p.Stmts)), tmpl.Width)
	require.Greater(t, tmpl.Sys.NumRows(), 0)
}

func TestToggleDim_DemandVsZero(t *testing.T) {
	t.Parallel()

	p := twoStmtProgWithDep(t)
	b := cstbuild.NewBuilder()
	tmpl := b.CoeffBoundingConstraints(p)

	zeroed, err := tmpl.ToggleDim(p.NPar, p.NVar, 0, 0, false)
	require.NoError(t, err)
	require.NotNil(t, zeroed)

	demanded, err := tmpl.ToggleDim(p.NPar, p.NVar, 0, 0, true)
	require.NoError(t, err)
	require.NotNil(t, demanded)
}

func TestToggleDim_UnknownColumn(t *testing.T) {
	t.Parallel()

	p := twoStmtProgWithDep(t)
	b := cstbuild.NewBuilder()
	tmpl := b.CoeffBoundingConstraints(p)

	_, err := tmpl.ToggleDim(p.NPar, p.NVar, 5, 5, true)
	require.Error(t, err)
}

func TestPermutabilityConstraints_MissingPolyhedron(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 2)
	p.AddStmt(1)
	p.AddStmt(1)
	dep := prog.NewDep(0, 1, prog.RAW) // no Cst set
	p.AddDep(dep)

	b := cstbuild.NewBuilder()
	_, err := b.PermutabilityConstraints(dep)
	require.ErrorIs(t, err, cstbuild.ErrNoDepPolyhedron)
}

func TestSCCPermutabilityConstraints_UnionsOnlyIntraSCCDeps(t *testing.T) {
	t.Parallel()

	p := twoStmtProgWithDep(t)
	d := ddg.New(p)
	b := cstbuild.NewBuilder()

	scc := d.SCCOf(0)
	sys, err := b.SCCPermutabilityConstraints(p, scc)
	require.NoError(t, err)
	require.NotNil(t, sys)
	// The only dependence (0->1) crosses into another SCC, so nothing
	// is unioned into statement 0's SCC.
	require.Zero(t, sys.NumRows())
}

func TestSCCOrthoConstraints_NoneWhenFullyColoured(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 1)
	p.AddStmt(1)
	d := ddg.New(p)
	b := cstbuild.NewBuilder()

	sys, err := b.SCCOrthoConstraints(p, d.SCCs[0], map[int][]int{})
	require.NoError(t, err)
	require.Nil(t, sys)
}

func TestSCCOrthoConstraints_DemandsUncolouredDims(t *testing.T) {
	t.Parallel()

	p := prog.NewProg(1, 0, 1)
	p.AddStmt(1)
	d := ddg.New(p)
	b := cstbuild.NewBuilder()

	sys, err := b.SCCOrthoConstraints(p, d.SCCs[0], map[int][]int{0: {0}})
	require.NoError(t, err)
	require.NotNil(t, sys)
	require.Equal(t, 1, sys.NumRows())
}
