// Package normalize implements the engine's four normalization policies
// (C5): LOW, MAX, MIN, and L2. Each policy takes the pair of child edge
// weights a node.MakeNode is about to install and returns the
// normalized pair together with the common factor that becomes the
// outer edge's weight, per spec §4.5.
//
// All four strategies are total (defined for every input pair, including
// both-zero) and idempotent: normalizing an already-canonical pair
// returns weight.One as the common factor and leaves the weights
// unchanged.
package normalize
