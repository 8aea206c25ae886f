// Package skew implements the optional post-pass of §4.5,
// introduce_skew: after the main colouring driver finishes, look for
// schedule rows that still carry a negative dependence-direction
// component (tile-preventing), and try to replace that row with a
// fresh LP witness that eliminates the negative component by
// recombining the SCC's loop dimensions.
//
// The pass operates on a throwaway dependence-satisfaction view: it
// saves every Dep's Satisfaction, resets all of them to unsatisfied,
// rebuilds a fresh ddg.Graph to get SCC membership, runs its analysis,
// then restores the saved satisfaction state — so a failed or partial
// skew attempt can never leak into the main run's satisfaction
// bookkeeping (§5 resource discipline: "Uses a cloned DDG and resets
// dep satisfaction locally").
package skew
