// Package weight implements the engine's complex-valued edge weights
// (C1) and the concurrent, tolerance-keyed interning table that turns
// them into small, stable integer handles (C2).
//
// A Complex is a pair of IEEE-754 doubles. Two weights are exactly equal
// iff their components are bitwise equal; they are tolerance-equal iff
// both components differ by less than a configured epsilon. Table.Lookup
// returns the handle of an existing tolerance-equal entry or interns a
// fresh one — never both, and never a duplicate for the same logical
// value within the contract described on Table.
//
// Three handles are reserved for the lifetime of the process (and are
// re-installed at the same numeric value by every Table.Rebuild):
//
//	Zero      ≡ 0 + 0i
//	One       ≡ 1 + 0i
//	MinusOne  ≡ -1 + 0i
//
// Handle values below HandleCount are never returned for any other
// value, and Zero/One/MinusOne are always found at the handles of the
// same name regardless of how many times the table has been rebuilt.
package weight
