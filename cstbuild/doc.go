// Package cstbuild implements the Constraint Builder (§4.2): it
// assembles coefficient-bounding constraints, the reserved toggleable
// equality/orthogonality rows, and unions of per-dependence
// permutability polyhedra, over a *prog.Prog.
//
// cstbuild sits above both prog and constraint (which stay import-
// cycle-free of each other and of prog) so it can read Stmt/Dep
// directly while building constraint.System values.
//
// Building the *initial* dependence polyhedron for a Dep (projecting
// the source/destination iteration-domain constraints into schedule-
// coefficient space via the affine form of Farkas's lemma) is the one
// piece spec.md §1 names as an external collaborator ("constructing
// the initial dependence polyhedra") — Dep.Cst therefore arrives
// pre-built (§3, §6 Inbound: "deps[] ... with pre-built dep
// polyhedra"). cstbuild's per-dependence functions are cached getters
// and union operators over that pre-built representation, exactly as
// §4.2 describes scc_permutability_constraints, inter_scc_dep_
// constraints, and friends as unions rather than as Farkas-elimination
// sites.
package cstbuild
