package prog

import "errors"

// Sentinel errors for prog operations. Callers branch on these with
// errors.Is, never string comparison (lvlath convention).
var (
	ErrNilProg      = errors.New("prog: nil program context")
	ErrStmtNotFound = errors.New("prog: statement not found")
	ErrDepNotFound  = errors.New("prog: dependence not found")
	ErrBadDimension = errors.New("prog: loop-dimension index out of range")
)

// FuseMode selects the fusion policy the FCG engine and driver use
// when deciding whether two statements/SCCs may share a schedule
// dimension (§6 Inbound options).
type FuseMode int

const (
	// NoFuse never fuses distinct SCCs: every SCC boundary becomes a
	// distribution cut.
	NoFuse FuseMode = iota
	// SmartFuse fuses greedily subject to LP feasibility alone.
	SmartFuse
	// MaxFuse is the most aggressive policy: fuse whenever feasible,
	// even at some cost to permutability elsewhere.
	MaxFuse
	// TypedFuse additionally protects SCC parallelism: a feasible-but-
	// non-parallel witness still blocks fusion (§4.4 step 5).
	TypedFuse
)

// String renders the FuseMode the way tsp.BoundAlgo renders in lvlath.
func (f FuseMode) String() string {
	switch f {
	case NoFuse:
		return "no-fuse"
	case SmartFuse:
		return "smart-fuse"
	case MaxFuse:
		return "max-fuse"
	case TypedFuse:
		return "typed-fuse"
	default:
		return "unknown-fuse"
	}
}

// HProp tags a schedule hyperplane (row) as a genuine loop dimension or
// a scalar (distribution) dimension (§3 Prog context).
type HProp int

const (
	HUnknown HProp = iota
	HLoop
	HScalar
)

func (h HProp) String() string {
	switch h {
	case HLoop:
		return "H_LOOP"
	case HScalar:
		return "H_SCALAR"
	default:
		return "H_UNKNOWN"
	}
}

// DepKind classifies a Dependence by the kind of storage conflict that
// produced it.
type DepKind int

const (
	RAW DepKind = iota
	WAR
	WAW
	RAR
)

func (k DepKind) String() string {
	switch k {
	case RAW:
		return "RAW"
	case WAR:
		return "WAR"
	case WAW:
		return "WAW"
	case RAR:
		return "RAR"
	default:
		return "UNKNOWN"
	}
}

// Direction is one entry of a Dep's lazily-computed direction vector
// (§3 Dependence type, §13 supplemented feature).
type Direction int

const (
	DirStar Direction = iota // unknown / not yet computed
	DirPlus
	DirMinus
	DirZero
)

func (d Direction) String() string {
	switch d {
	case DirPlus:
		return "+"
	case DirMinus:
		return "-"
	case DirZero:
		return "0"
	default:
		return "*"
	}
}

// Options mirrors spec §6's Inbound option set exactly; it is the
// single configuration value threaded through every core operation
// (REDESIGN FLAGS: global mutable state is replaced by this explicit,
// passed-by-reference context instead of a package-level singleton).
type Options struct {
	Fuse       FuseMode
	SCCCluster bool
	LPColour   bool
	RAR        bool
	Silent     bool
	Gurobi     bool // informational only: the active lp.Oracle backend is chosen by the caller, never by this flag
}

// DefaultOptions returns the scheduler's default policy: smart fusion,
// statement-dim mode, lpcolour tie-break disabled, RAR dependences
// ignored, verbose logging.
func DefaultOptions() Options {
	return Options{
		Fuse:       SmartFuse,
		SCCCluster: false,
		LPColour:   false,
		RAR:        false,
		Silent:     false,
		Gurobi:     false,
	}
}

// Timing accumulates the outbound counters named in spec §6. Every
// field is a cumulative duration in nanoseconds except NumLPCalls.
type Timing struct {
	FCGConstTime      int64
	FCGColourTime     int64
	FCGUpdateTime     int64
	FCGCstAllocTime   int64
	FCGDimsScaleTime  int64
	ScalingCstSolTime int64
	SkewTime          int64
	MIPTime           int64
	NumLPCalls        int64
}
