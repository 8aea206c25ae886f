// Package fcg implements the Fusion Conflict Graph engine (§4.4): it
// constructs, mutates, and rebuilds the FCG, runs the parallel-SCC
// marker, and maintains the to_be_rebuilt bit.
//
// The FCG is stored as a dense symmetric adjacency matrix, the same
// representation the teacher's matrix.Dense uses for adjacency/
// incidence matrices (matrix/dense.go, matrix/adjacency_matrix.go) —
// appropriate here too since FCG vertex counts are small (bounded by
// nstmts*nvar or the SCC-cluster equivalent) and every query is a
// dense row/column scan.
package fcg
