package schedule

import (
	"time"

	"github.com/katalvlaran/plutofcg/ddg"
	"github.com/katalvlaran/plutofcg/fcg"
	"github.com/katalvlaran/plutofcg/lp"
	"github.com/katalvlaran/plutofcg/prog"
)

// Driver is the Colouring & Scaling Driver of §4.5: it owns the live
// FCG, the colour map, and the per-run bookkeeping the outer loop
// reads (previous-SCC tracking for cut/update decisions).
type Driver struct {
	Prog   *prog.Prog
	DDG    *ddg.Graph
	Engine *fcg.Engine
	Oracle lp.Oracle

	G       *fcg.Graph
	Colour  []int
	PrevSCC int
}

// NewDriver builds the initial FCG (colour round 0, all-zero colour
// map) over p and d.
func NewDriver(p *prog.Prog, d *ddg.Graph, oracle lp.Oracle) (*Driver, error) {
	engine := fcg.NewEngine(oracle)
	n := numVertices(p, d)
	colour := make([]int, n)
	start := time.Now()
	g, err := engine.Build(p, d, colour, 0)
	p.Timing.FCGConstTime += time.Since(start).Nanoseconds()
	if err != nil {
		return nil, err
	}
	return &Driver{Prog: p, DDG: d, Engine: engine, Oracle: oracle, G: g, Colour: colour, PrevSCC: -1}, nil
}

func numVertices(p *prog.Prog, d *ddg.Graph) int {
	if p.Options.SCCCluster {
		n := 0
		for _, scc := range d.SCCs {
			n += scc.MaxDim
		}
		return n
	}
	n := 0
	for _, s := range p.Stmts {
		n += s.DOrig
	}
	return n
}

func (dr *Driver) colourOne(scc *ddg.SCC, c int) (bool, error) {
	if dr.Prog.Options.SCCCluster {
		return colourCluster(dr.Prog, dr.G, scc, dr.Colour, c), nil
	}
	return colourStmt(dr.Prog, dr.DDG, dr.G, scc, dr.Colour, c, 0, -1)
}

// ColourFCGSCCBased implements §4.5 colour_fcg_scc_based: visits every
// SCC in id order, colouring each with colour c, repairing the FCG via
// update-between-SCCs, cut, or full rebuild on failure, per step 3's
// a/b/c ladder.
func (dr *Driver) ColourFCGSCCBased(c int) error {
	for i, scc := range dr.DDG.SCCs {
		ok, err := dr.colourOne(scc, c)
		if err != nil {
			return err
		}
		if ok {
			dr.markColoured(scc, c)
			continue
		}

		if err := dr.repair(scc, i, c); err != nil {
			return err
		}
	}
	return nil
}

// repair runs the failure ladder of §4.5 step 3 for scc at position i
// in this colour round, retrying colourOne after each repair attempt.
func (dr *Driver) repair(scc *ddg.SCC, i, c int) error {
	if dr.G.ToBeRebuilt || i == 0 {
		if dr.Prog.Options.Fuse == prog.NoFuse {
			dr.DDG.CutAllSCCs()
		}
		if err := dr.rebuild(c); err != nil {
			return err
		}
		if i != 0 {
			if ok, err := dr.colourOne(scc, c); err != nil {
				return err
			} else if ok {
				dr.markColoured(scc, c)
				return nil
			}
		}
		if dr.PrevSCC >= 0 {
			if dr.Prog.Options.Fuse == prog.NoFuse {
				dr.DDG.CutAllSCCs()
			} else {
				dr.DDG.CutBetweenSCCs(scc.ID)
			}
		}
		dr.G.UpdateBetweenSCCs(dr.Prog, dr.DDG, dr.PrevSCC, scc.ID)
	} else {
		dr.G.UpdateBetweenSCCs(dr.Prog, dr.DDG, dr.PrevSCC, scc.ID)
	}

	if ok, err := dr.colourOne(scc, c); err != nil {
		return err
	} else if ok {
		dr.markColoured(scc, c)
		return nil
	}

	dr.G.ToBeRebuilt = true
	if err := dr.rebuild(c); err != nil {
		return err
	}
	ok, err := dr.colourOne(scc, c)
	if err != nil {
		return err
	}
	if !ok {
		return newBugError("ColourFCGSCCBased", dr.Prog, dr.Colour, c)
	}
	dr.markColoured(scc, c)
	return nil
}

// markColoured records a successful colouring of scc at round c: flags
// the SCC, remembers it as the previous SCC for the next cut/update
// decision, and bumps total_coloured_stmts[c-1] (§4.5 step 1's
// precondition for ScaleShiftPermutations).
func (dr *Driver) markColoured(scc *ddg.SCC, c int) {
	scc.IsSCCColoured = true
	dr.PrevSCC = scc.ID
	dr.Prog.TotalColouredStmts[c-1] += scc.Size()
}

func (dr *Driver) rebuild(c int) error {
	start := time.Now()
	g, err := dr.Engine.Rebuild(dr.Prog, dr.DDG, dr.Colour, c)
	dr.Prog.Timing.FCGUpdateTime += time.Since(start).Nanoseconds()
	if err != nil {
		return err
	}
	dr.G = g
	return nil
}

// FindPermutableDimensionsSCCBased implements §4.5's top-level driver:
// for colour 1..NVar, optionally mark parallel SCCs (lpcolour), colour
// the FCG, scale-shift the result into a concrete hyperplane, update
// dependence satisfaction, and prepare for the next round. After all
// colours, any remaining unsatisfied dependence is resolved with a
// final cut_all_sccs.
func (dr *Driver) FindPermutableDimensionsSCCBased() error {
	for c := 1; c <= dr.Prog.NVar; c++ {
		if dr.Prog.Options.LPColour {
			if err := dr.Engine.MarkParallelSCCs(dr.Prog, dr.DDG, dr.Colour, c); err != nil {
				return err
			}
		}

		colourStart := time.Now()
		if err := dr.ColourFCGSCCBased(c); err != nil {
			return err
		}
		dr.Prog.Timing.FCGColourTime += time.Since(colourStart).Nanoseconds()

		scaleStart := time.Now()
		rows, ok, err := ScaleShiftPermutations(dr.Prog, dr.DDG, dr.Engine.Builder, dr.Oracle, dr.Colour, c-1)
		dr.Prog.Timing.FCGDimsScaleTime += time.Since(scaleStart).Nanoseconds()
		if err != nil {
			return err
		}
		if !ok {
			return newBugError("ScaleShiftPermutations", dr.Prog, dr.Colour, c)
		}

		if err := dr.Prog.AppendHyperplane(rows, prog.HLoop); err != nil {
			return err
		}
		level := len(dr.Prog.Stmts[0].Schedule) - 1
		for _, dep := range dr.Prog.Deps {
			if dep.Satisfaction.Satisfied {
				continue
			}
			dep.ComputeDirection(level, scheduleDelta(dr.Prog, dep, level))
		}
		dr.Prog.DepSatisfactionUpdate(level, func(dep *prog.Dep) bool {
			return depNonNegativeAt(dep, level)
		})

		dr.Prog.ColouredDims = c
		dr.G.ToBeRebuilt = true
		dr.DDG.FreeSCCWitnesses()

		if !dr.Prog.Options.SCCCluster {
			dr.DDG.Update(dr.Prog)
			dr.DDG.ComputeSCCs()
		}
	}

	dr.Prog.Timing.NumLPCalls = dr.Oracle.NumCalls()

	if dr.Prog.NumUnsatisfiedDeps() > 0 {
		return dr.DDG.CutAllSCCs()
	}
	return nil
}

// scheduleDelta approximates the sign-bearing scalar ComputeDirection
// needs: the aggregate difference between dst's and src's schedule row
// at level, across loop coefficients and the constant shift. The true
// Pluto direction-vector computation evaluates the hyperplane against
// the dependence's iteration-domain extreme rays; since constructing
// the iteration domain itself is out of scope here (§1), this uses the
// coarser but still sound-for-monotone-satisfaction row delta — exact
// per-component direction analysis is left to the excluded Farkas
// front end.
func scheduleDelta(p *prog.Prog, dep *prog.Dep, level int) int64 {
	src, dst := p.Stmts[dep.Src].Schedule[level], p.Stmts[dep.Dst].Schedule[level]
	var sum int64
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for k := 0; k < n; k++ {
		sum += dst[k] - src[k]
	}
	return sum
}

// depNonNegativeAt evaluates whether dep's direction vector at level is
// non-negative, i.e. PLUS or ZERO rather than MINUS/STAR, the
// schedule-legality test §8's universal property 1 requires before a
// dependence can be marked satisfied at that level.
func depNonNegativeAt(dep *prog.Dep, level int) bool {
	if level >= len(dep.DirVec) {
		return false
	}
	switch dep.DirVec[level] {
	case prog.DirPlus, prog.DirZero:
		return true
	default:
		return false
	}
}
