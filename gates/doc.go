// Package gates is the gate-construction layer sitting on top of evbdd:
// a fixed catalogue of named single-qubit gates, a parameterized phase
// family, and helpers that lift those 2×2 matrices into full n-qubit
// operators and apply them to a state via the engine's diagram algebra.
// The engine itself has no notion of a "gate" — everything here is built
// from MakeOperator, Tensor, Plus and MatVec.
package gates
