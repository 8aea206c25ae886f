// Package schedule implements the Colouring & Scaling Driver (§4.5):
// the outer loop that, for each colour 1..nvar, colours every SCC of
// the current FCG, repairs the FCG on colouring failure (update,
// rebuild, or cut), and calls the LP oracle one final time per colour
// to realise the coloured dimension as a concrete schedule hyperplane.
//
// The backtracking search in colourStmt is a plain recursive function:
// its search state (the colour map, the position in the SCC, the
// previously coloured vertex) is passed as parameters, and each call
// keeps its own local discard list.
package schedule
