// Package scenario builds the synthetic Progs named in spec §8's
// concrete-scenario suite, using internal/uniform in place of the
// excluded iteration-domain/dependence-polyhedron front end. Each
// builder returns a ready-to-schedule *prog.Prog with its NVar/NPar
// shape, statements, and uniform dependences already attached, the
// same hand-built fixture shape lvlath's graph constructors
// (core.NewGraph + AddEdge) use for their own test/demo programs.
package scenario

import (
	"fmt"

	"github.com/katalvlaran/plutofcg/internal/uniform"
	"github.com/katalvlaran/plutofcg/prog"
)

// Name enumerates the buildable scenarios.
type Name string

const (
	Stencil2D           Name = "stencil2d"
	IndependentNests     Name = "independent"
	ProducerConsumerFuse Name = "fusable"
	ProducerConsumerCut  Name = "fusion-preventing"
	TypedFuseTradeoff    Name = "typed-fuse"
	SkewHeat1D           Name = "skew"
)

// All lists every buildable scenario name, in the order spec §8
// enumerates them.
var All = []Name{Stencil2D, IndependentNests, ProducerConsumerFuse, ProducerConsumerCut, TypedFuseTradeoff, SkewHeat1D}

// Build dispatches to the named scenario's constructor.
func Build(name Name) (*prog.Prog, error) {
	switch name {
	case Stencil2D:
		return stencil2D()
	case IndependentNests:
		return independentNests()
	case ProducerConsumerFuse:
		return producerConsumerFuse()
	case ProducerConsumerCut:
		return producerConsumerCut()
	case TypedFuseTradeoff:
		return typedFuseTradeoff()
	case SkewHeat1D:
		return skewHeat1D()
	default:
		return nil, fmt.Errorf("scenario: unknown scenario %q", name)
	}
}

// stencil2D is scenario 1: a single statement over (t,i,j), with
// dependences (t,i,j) -> (t+1,i±1,j) and (t+1,i,j±1) — the Jacobi
// 2D-heat access pattern.
func stencil2D() (*prog.Prog, error) {
	p := prog.NewProg(3, 1, 1)
	p.AddStmt(3)
	deps := []uniform.Dep{
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, 1, 0}},
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, -1, 0}},
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, 0, 1}},
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, 0, -1}},
	}
	for _, d := range deps {
		if err := uniform.AddDep(p, d); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// independentNests is scenario 2: two statements with no dependence
// between them at all.
func independentNests() (*prog.Prog, error) {
	p := prog.NewProg(2, 0, 2)
	p.AddStmt(2)
	p.AddStmt(2)
	return p, nil
}

// producerConsumerFuse is scenario 3: S1 writes A[i], S2 reads A[i] —
// a same-iteration dependence that leaves the outermost dim fusable.
func producerConsumerFuse() (*prog.Prog, error) {
	p := prog.NewProg(1, 0, 2)
	p.AddStmt(1)
	p.AddStmt(1)
	if err := uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}); err != nil {
		return nil, err
	}
	return p, nil
}

// producerConsumerCut is scenario 4: S1 writes A[i], S2 reads A[i+1]
// at the outer level — a dependence the common schedule dim cannot
// satisfy without a distribution cut.
func producerConsumerCut() (*prog.Prog, error) {
	p := prog.NewProg(1, 0, 2)
	p.AddStmt(1)
	p.AddStmt(1)
	if err := uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{-1}}); err != nil {
		return nil, err
	}
	return p, nil
}

// typedFuseTradeoff is scenario 5: two parallel single-statement SCCs
// linked by one serialising dependence, under typed-fuse's lpcolour
// tie-break.
func typedFuseTradeoff() (*prog.Prog, error) {
	p := prog.NewProg(1, 0, 2)
	p.Options.Fuse = prog.TypedFuse
	p.Options.LPColour = true
	p.AddStmt(1)
	p.AddStmt(1)
	if err := uniform.AddDep(p, uniform.Dep{Src: 0, Dst: 1, Kind: prog.RAW, Offset: []int64{0}}); err != nil {
		return nil, err
	}
	return p, nil
}

// skewHeat1D is scenario 6: a heat-1D statement over (t,x) with
// dependences at distances (1,0), (1,1), (1,-1), chosen so the initial
// schedule leaves a negative direction component the skew post-pass
// must remove.
func skewHeat1D() (*prog.Prog, error) {
	p := prog.NewProg(2, 0, 1)
	p.AddStmt(2)
	deps := []uniform.Dep{
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, 0}},
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, 1}},
		{Src: 0, Dst: 0, Kind: prog.RAW, Offset: []int64{1, -1}},
	}
	for _, d := range deps {
		if err := uniform.AddDep(p, d); err != nil {
			return nil, err
		}
	}
	return p, nil
}
