// Package polyrat provides exact rational vector and matrix primitives
// used throughout plutofcg's constraint system and LP oracle.
//
// Every coefficient in a polyhedral schedule — bounding constants,
// dependence-polyhedron rows, LP witnesses, scale-shift solutions — is
// an exact rational number. Floating point would silently corrupt the
// lexicographic feasibility tests the scheduler depends on, so polyrat
// builds its Vector and Matrix types on top of math/big.Rat instead of
// float64 (see DESIGN.md for why no third-party rational/LP library
// from the reference corpus could serve this role).
//
// Complexity: all operations are O(n) or O(n*m) in the vector/matrix
// dimensions; big.Rat arithmetic itself is not constant time, but
// constraint systems in this scheduler are small (tens of columns).
package polyrat
