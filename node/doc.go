// Package node implements the engine's edge/node packing (C4) and the
// concurrent node unique-table (C3), together with the one canonical
// node constructor, MakeNode, and the GetTopVar decomposition helper
// used throughout the diagram algebra (spec §4.3, §4.4).
//
// An Edge is a single packed machine word holding a weight.Handle and a
// Handle (node handle); two bitwise-equal Edge values always denote the
// same function, which is what lets MakeNode's reduction rule
// ("low == high ⇒ return low") and the unique-table's injectivity
// invariant be implemented as plain integer comparisons rather than
// structural graph comparisons.
//
// A Node is the triple (var, lowEdge, highEdge) a Shannon decomposition
// at var. This implementation stores both child edges explicitly rather
// than physically omitting one under the L2 strategy the way spec §3's
// 128-bit packed record does — a Go struct field is not bit-constrained
// the way the original's packed record is, so the memory optimization
// has no equivalent benefit here. The functional contract (spec §3
// invariant 3: one child carries a reserved weight, or the L2 equation
// |low|^2+|high|^2=1 holds with low real non-negative) is preserved
// exactly; MakeNode only ever stores a pair that normalize.Strategy
// actually produced, so the stored low weight is always equal to what
// normalize.LowFromHigh would reconstruct from the stored high weight
// under L2.
package node
