package prog

// Prog is the scheduler's single context object: the program shape
// (NVar, NPar), its statements and dependences, the active Options,
// bookkeeping for the colouring driver, and accumulated timing. Every
// core operation takes a *Prog explicitly rather than reading package-
// level globals (REDESIGN FLAGS: global mutable state is confined to
// this one object, owned exclusively by the scheduler for the
// duration of a run, per §5 Concurrency & Resource Model).
type Prog struct {
	NVar int
	NPar int

	Stmts []*Stmt
	Deps  []*Dep

	Options Options

	// ColouredDims counts how many colours 1..NVar have been fully
	// realized as a schedule hyperplane so far.
	ColouredDims int

	// TotalColouredStmts[c] counts, for colour c (0-indexed), how many
	// statements have contributed a vertex of that colour.
	TotalColouredStmts []int

	// HProps[level] tags schedule row `level` as H_LOOP or H_SCALAR.
	HProps []HProp

	Timing Timing
}

// NewProg allocates a Prog for nstmts statements, a max loop depth of
// nvar and npar program parameters, with default Options.
func NewProg(nvar, npar, nstmts int) *Prog {
	return &Prog{
		NVar:               nvar,
		NPar:               npar,
		Stmts:              make([]*Stmt, 0, nstmts),
		Options:            DefaultOptions(),
		TotalColouredStmts: make([]int, nvar),
	}
}

// AddStmt appends a new statement of rank dOrig and returns it.
func (p *Prog) AddStmt(dOrig int) *Stmt {
	s := NewStmt(len(p.Stmts), dOrig)
	p.Stmts = append(p.Stmts, s)
	return s
}

// AddDep appends dep to the dependence list.
func (p *Prog) AddDep(dep *Dep) {
	p.Deps = append(p.Deps, dep)
}

// NumUnsatisfiedDeps returns how many dependences remain unsatisfied.
func (p *Prog) NumUnsatisfiedDeps() int {
	n := 0
	for _, d := range p.Deps {
		if !d.Satisfaction.Satisfied {
			n++
		}
	}
	return n
}

// AppendHyperplane appends schedule row rows[j] to statement j for all
// j, and tags HProps with prop.
func (p *Prog) AppendHyperplane(rows [][]int64, prop HProp) error {
	if len(rows) != len(p.Stmts) {
		return ErrStmtNotFound
	}
	for j, s := range p.Stmts {
		s.AppendHyperplane(rows[j])
	}
	p.HProps = append(p.HProps, prop)
	return nil
}

// DepSatisfactionUpdate marks every currently-unsatisfied dependence
// whose source and destination schedules now produce a non-negative
// direction at `level` as satisfied-at-level (§3 Monotone satisfaction
// invariant: a satisfied Dep is never reset within one run).
//
// isNonNegative is supplied by the caller (schedule/ddg), which knows
// how to evaluate a dependence's polyhedron against the new row; this
// keeps prog free of any LP/constraint dependency beyond the cached
// constraint.System pointer on Dep.
func (p *Prog) DepSatisfactionUpdate(level int, isNonNegative func(d *Dep) bool) {
	for _, d := range p.Deps {
		if d.Satisfaction.Satisfied {
			continue
		}
		if isNonNegative(d) {
			d.Satisfaction = SatisfiedAt(level)
		}
	}
}
