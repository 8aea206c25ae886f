// Package constraint defines System, the affine-polyhedron
// representation every LP query in plutofcg operates on (§3 Width
// invariant, §4.2).
//
// A System is a flat list of rows over the shared column
// layout:
//
//	[ npar+1 parameter/constant-bound coeffs | nstmts * (nvar coeffs + 1 constant shift) | constant ]
//
// This package owns only the representation and the generic row
// operations (append, toggle equality, clone). Building the rows that
// encode a specific dependence, bounding, or orthogonality constraint
// is the job of package cstbuild, which depends on prog's Stmt/Dep
// types; constraint itself stays dependency-free so both prog and lp
// can import it without an import cycle.
package constraint
