package prog

import "github.com/katalvlaran/plutofcg/constraint"

// SatState is a Dependence's satisfaction state machine: unsatisfied,
// or satisfied at a specific schedule level (§3 Dependence,
// "Dependence" state machine in §4's State Machines section).
type SatState struct {
	Satisfied bool
	Level     int // meaningful only when Satisfied
}

// Unsatisfied is the initial state of every Dep.
var Unsatisfied = SatState{Satisfied: false}

// SatisfiedAt builds a satisfied-at-level state.
func SatisfiedAt(level int) SatState {
	return SatState{Satisfied: true, Level: level}
}

// Dep is one dependence edge of the DDG: a source/destination
// statement pair, a kind tag, a satisfaction state, a cached
// constraint polyhedron, and a lazily-filled direction vector (§3
// Dependence, §13 supplemented direction-vector feature).
type Dep struct {
	Src, Dst int
	Kind     DepKind

	Satisfaction SatState

	// Cst is the cached affine-constraint polyhedron over all
	// statement coefficient vectors that this dependence imposes; set
	// by the caller that builds the Prog and returned as-is by
	// cstbuild.PermutabilityConstraints.
	Cst *constraint.System

	// DirVec[level] holds this dependence's direction at schedule
	// level `level`, filled lazily by ComputeDirection.
	DirVec []Direction
}

// NewDep constructs an unsatisfied Dep of the given kind between src
// and dst statement ids.
func NewDep(src, dst int, kind DepKind) *Dep {
	return &Dep{Src: src, Dst: dst, Kind: kind, Satisfaction: Unsatisfied}
}

// IsIntra reports whether this is a self (intra-statement) dependence.
func (d *Dep) IsIntra() bool { return d.Src == d.Dst }

// EnsureDirVecLen grows DirVec to at least n entries (DirStar-filled)
// so ComputeDirection can write level `n-1` without a bounds check at
// every call site.
func (d *Dep) EnsureDirVecLen(n int) {
	for len(d.DirVec) < n {
		d.DirVec = append(d.DirVec, DirStar)
	}
}

// ComputeDirection fills DirVec[level] from the sign of coeff, which
// the schedule driver computes from the level's schedule rows for this
// dependence's source/destination pair (§13: restores framework-dfp.c's
// get_dep_direction-equivalent lazily-filled direction vector, which
// skew.IntroduceSkew reads to find tile-preventing negative
// components).
func (d *Dep) ComputeDirection(level int, coeff int64) {
	d.EnsureDirVecLen(level + 1)
	switch {
	case coeff > 0:
		d.DirVec[level] = DirPlus
	case coeff < 0:
		d.DirVec[level] = DirMinus
	default:
		d.DirVec[level] = DirZero
	}
}
