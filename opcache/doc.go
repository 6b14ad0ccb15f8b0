// Package opcache implements the engine's operation cache (C6): a
// fixed-capacity memo table keyed by an operation tag and up to three
// uint64 operands, used to avoid re-deriving the same recursive diagram
// operation twice within a GC epoch.
//
// The cache is a weak reference by invariant (spec §3 Ownership):
// entries are never reference-counted and are discarded wholesale on
// every GC cycle, so a lost put or a stale get (spec §5) is always
// benign — the caller simply recomputes the same, identical result.
package opcache
