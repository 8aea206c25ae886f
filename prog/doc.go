// Package prog defines the central Prog context, Stmt and Dep types,
// and the option set consumed by plutofcg's scheduler (§3 and §6 of
// SPEC_FULL.md). It plays the role the teacher's core package plays
// for lvlath: a small, dependency-free data model that every other
// package imports and operates on, with no algorithms of its own.
//
// Errors:
//
//	ErrNilProg       - a nil *Prog was passed where one is required.
//	ErrStmtNotFound  - a statement id has no corresponding Stmt.
//	ErrDepNotFound   - a dependence index is out of range.
//	ErrBadDimension  - a loop-dimension index is outside [0, d_orig).
package prog
