package lp

import (
	"math/big"
	"sync/atomic"

	"github.com/katalvlaran/plutofcg/constraint"
	"github.com/katalvlaran/plutofcg/polyrat"
)

// SimplexOracle is the reference Oracle backend: a two-phase rational
// simplex using Bland's rule for anti-cycling (Pluto's own coefficient
// systems are small — tens of columns — so a dense tableau is fine;
// see DESIGN.md for why this is stdlib-only rather than wrapping a
// third-party solver).
//
// Free variables (every schedule coefficient may be positive or
// negative) are represented by the classical u-v split: x = u - v,
// u,v >= 0. Each inequality row gets its own non-negative slack.
type SimplexOracle struct {
	numCalls int64
}

// NewSimplexOracle constructs a fresh SimplexOracle with a zeroed call
// counter.
func NewSimplexOracle() *SimplexOracle {
	return &SimplexOracle{}
}

// NumCalls implements Oracle.
func (o *SimplexOracle) NumCalls() int64 { return atomic.LoadInt64(&o.numCalls) }

// tableau is a dense simplex tableau: rows are equality constraints
// (after standardization), the last row is the reduced-cost row.
type tableau struct {
	rows, cols int
	a          [][]*big.Rat // rows x cols, cols includes the RHS in the last column
	basis      []int        // basis[r] = column index of the basic variable for row r
}

func newTableau(rows, cols int) *tableau {
	a := make([][]*big.Rat, rows)
	for i := range a {
		a[i] = make([]*big.Rat, cols)
		for j := range a[i] {
			a[i][j] = new(big.Rat)
		}
	}
	return &tableau{rows: rows, cols: cols, a: a, basis: make([]int, rows)}
}

// standardForm converts cs into standard equality form A y = b, y>=0,
// over variables [u_0..u_{n-1}, v_0..v_{n-1}, s_0..s_{k-1}] where
// n = cs.Width-1 and k = number of inequality rows. Returns the
// equation matrix (without objective row), the count n, and the total
// variable count nVars = 2n+k.
func standardForm(cs *constraint.System) (eqs [][]*big.Rat, n, nVars int) {
	n = cs.Width - 1
	// count slacks
	nSlack := 0
	for _, eq := range cs.IsEq {
		if !eq {
			nSlack++
		}
	}
	nVars = 2*n + nSlack // u,v,s
	eqs = make([][]*big.Rat, len(cs.Rows))
	slackIdx := 0
	for r, row := range cs.Rows {
		eqRow := make([]*big.Rat, nVars+1) // +1 for RHS
		for j := range eqRow {
			eqRow[j] = new(big.Rat)
		}
		for i := 0; i < n; i++ {
			eqRow[i].Set(row[i])          // u_i coeff
			eqRow[n+i].Neg(row[i])        // v_i coeff = -row[i]
		}
		rhs := new(big.Rat).Neg(row[n]) // -const
		isEq := cs.IsEq[r]
		if !isEq {
			eqRow[2*n+slackIdx].SetInt64(-1)
			slackIdx++
		}
		// Normalize so RHS >= 0 (phase-1 needs nonnegative b).
		if rhs.Sign() < 0 {
			for j := range eqRow {
				eqRow[j].Neg(eqRow[j])
			}
			rhs.Neg(rhs)
		}
		eqRow[nVars] = rhs
		eqs[r] = eqRow
	}
	return eqs, n, nVars
}

// simplexMinimize runs a dense two-phase simplex minimizing objective
// c (length nVars, over the u/v/s variable space) subject to eqs (each
// row length nVars+1, last column RHS, all RHS >= 0). Returns the
// optimal y vector (length nVars) or ok=false if infeasible.
func simplexMinimize(eqs [][]*big.Rat, nVars int, c []*big.Rat) (y []*big.Rat, ok bool) {
	m := len(eqs)
	if m == 0 {
		// No constraints at all: unbounded-free feasible point is the
		// origin, which is optimal only if c is zero or irrelevant;
		// callers only hit this for a trivially empty system.
		y = make([]*big.Rat, nVars)
		for i := range y {
			y[i] = new(big.Rat)
		}
		return y, true
	}
	// Phase 1: minimize sum of artificial variables a_0..a_{m-1}.
	nAll := nVars + m // + artificials
	t := newTableau(m, nAll+1)
	for r := 0; r < m; r++ {
		for j := 0; j < nVars; j++ {
			t.a[r][j].Set(eqs[r][j])
		}
		t.a[r][nVars+r].SetInt64(1) // artificial r
		t.a[r][nAll].Set(eqs[r][nVars])
		t.basis[r] = nVars + r
	}
	// Phase-1 objective row: minimize sum(a) => cost row = -sum of
	// constraint rows that have a nonzero artificial coefficient,
	// reduced so basic artificials have zero reduced cost.
	obj := make([]*big.Rat, nAll+1)
	for j := range obj {
		obj[j] = new(big.Rat)
	}
	for j := nVars; j < nAll; j++ {
		obj[j].SetInt64(1)
	}
	for r := 0; r < m; r++ {
		for j := 0; j <= nAll; j++ {
			obj[j].Sub(obj[j], t.a[r][j])
		}
	}
	runSimplex(t, obj, nAll)
	if obj[nAll].Sign() != 0 {
		return nil, false // phase 1 optimum > 0: infeasible
	}
	// Drive any remaining artificial out of the basis (degenerate
	// feasible vertex touching an artificial at value 0).
	for r := 0; r < m; r++ {
		if t.basis[r] >= nVars {
			pivoted := false
			for j := 0; j < nVars; j++ {
				if t.a[r][j].Sign() != 0 {
					pivot(t, r, j)
					t.basis[r] = j
					pivoted = true
					break
				}
			}
			_ = pivoted // if no replacement column exists the row is a redundant 0=0 equation
		}
	}
	// Phase 2: minimize the real objective over the original variables.
	obj2 := make([]*big.Rat, nAll+1)
	for j := range obj2 {
		obj2[j] = new(big.Rat)
	}
	for j := 0; j < nVars; j++ {
		obj2[j].Set(c[j])
	}
	for r := 0; r < m; r++ {
		b := t.basis[r]
		if b >= nAll {
			continue
		}
		coeff := obj2[b]
		if coeff.Sign() == 0 {
			continue
		}
		factor := new(big.Rat).Set(coeff)
		for j := 0; j <= nAll; j++ {
			tmp := new(big.Rat).Mul(factor, t.a[r][j])
			obj2[j].Sub(obj2[j], tmp)
		}
	}
	runSimplex(t, obj2, nVars) // forbid re-entering artificial columns
	y = make([]*big.Rat, nVars)
	for j := range y {
		y[j] = new(big.Rat)
	}
	for r := 0; r < m; r++ {
		if t.basis[r] < nVars {
			y[t.basis[r]].Set(t.a[r][nAll])
		}
	}
	return y, true
}

// runSimplex iterates Bland's-rule pivots on tableau t with reduced-
// cost row obj (one entry per tableau column plus the right-hand side;
// cols at or beyond limitCols are excluded from entering consideration
// — used in phase 2 to keep artificials out of the basis) until no
// improving column remains.
func runSimplex(t *tableau, obj []*big.Rat, limitCols int) {
	const maxIter = 10000
	for iter := 0; iter < maxIter; iter++ {
		enter := -1
		for j := 0; j < limitCols; j++ {
			if obj[j].Sign() < 0 {
				enter = j // Bland's rule: first negative reduced cost
				break
			}
		}
		if enter == -1 {
			return // optimal
		}
		leave := -1
		best := new(big.Rat)
		for r := 0; r < t.rows; r++ {
			if t.a[r][enter].Sign() <= 0 {
				continue
			}
			ratio := new(big.Rat).Quo(t.a[r][len(t.a[r])-1], t.a[r][enter])
			if leave == -1 || ratio.Cmp(best) < 0 || (ratio.Cmp(best) == 0 && t.basis[r] < t.basis[leave]) {
				leave = r
				best = ratio
			}
		}
		if leave == -1 {
			return // unbounded; treat as degenerate stop (bounding constraints in practice prevent this)
		}
		pivot(t, leave, enter)
		t.basis[leave] = enter
		// update objective row
		factor := new(big.Rat).Set(obj[enter])
		if factor.Sign() != 0 {
			for j := range obj {
				var val *big.Rat
				if j < len(t.a[leave]) {
					val = t.a[leave][j]
				} else {
					val = new(big.Rat)
				}
				tmp := new(big.Rat).Mul(factor, val)
				obj[j].Sub(obj[j], tmp)
			}
		}
	}
}

// pivot performs a Gauss-Jordan pivot on tableau t at (row, col).
func pivot(t *tableau, row, col int) {
	piv := new(big.Rat).Set(t.a[row][col])
	rowVec := t.a[row]
	for j := range rowVec {
		rowVec[j].Quo(rowVec[j], piv)
	}
	for r := 0; r < t.rows && r < len(t.a); r++ {
		if r == row {
			continue
		}
		factor := new(big.Rat).Set(t.a[r][col])
		if factor.Sign() == 0 {
			continue
		}
		for j := range t.a[r] {
			tmp := new(big.Rat).Mul(factor, rowVec[j])
			t.a[r][j].Sub(t.a[r][j], tmp)
		}
	}
}

// recoverX reconstructs the original n free-variable vector from a
// u/v/s solution y (x_i = u_i - v_i).
func recoverX(y []*big.Rat, n int) polyrat.Vector {
	x := make(polyrat.Vector, n)
	for i := 0; i < n; i++ {
		x[i] = new(big.Rat).Sub(y[i], y[n+i])
	}
	return x
}

// FeasibilityLexmin implements Oracle.
func (o *SimplexOracle) FeasibilityLexmin(cs *constraint.System, obj polyrat.Vector) (polyrat.Vector, bool, error) {
	atomic.AddInt64(&o.numCalls, 1)
	return o.solve(cs, obj)
}

// solve runs the feasibility-lexmin query without touching the call
// counter, so Lexmin's per-coordinate sweep can count as one logical
// LP call instead of n.
func (o *SimplexOracle) solve(cs *constraint.System, obj polyrat.Vector) (polyrat.Vector, bool, error) {
	eqs, n, nVars := standardForm(cs)
	c := make([]*big.Rat, nVars)
	for i := range c {
		c[i] = new(big.Rat)
	}
	for i := 0; i < n && i < len(obj); i++ {
		c[i].Set(obj[i])
		c[n+i].Neg(obj[i])
	}
	y, ok := simplexMinimize(eqs, nVars, c)
	if !ok {
		return nil, false, nil
	}
	return recoverX(y, n), true, nil
}

// Lexmin implements Oracle. It sequentially minimizes x0, then x1
// subject to x0 fixed at its optimum, and so on — the standard way to
// compute an exact lexicographic minimum with a plain LP solver, and
// what Pluto's own lexmin routine does over its constraint systems.
func (o *SimplexOracle) Lexmin(cs *constraint.System) (polyrat.Vector, bool, error) {
	atomic.AddInt64(&o.numCalls, 1)
	cur := cs
	n := cs.Width - 1
	fixed := make(polyrat.Vector, 0, n)
	for i := 0; i < n; i++ {
		obj := polyrat.NewVector(n)
		obj[i].SetInt64(1)
		x, ok, err := o.solve(cur, obj)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		fixed = append(fixed, x[i])
		// Pin x_i = x[i] for subsequent rounds via an extra equality row.
		row := polyrat.NewVector(cur.Width)
		row[i].SetInt64(1)
		row[cur.Width-1].Neg(x[i])
		next := cur.Clone()
		if err := next.AppendRow(row, true); err != nil {
			return nil, false, err
		}
		cur = next
	}
	return fixed, true, nil
}
