// Package refs implements the three reference channels spec §4.7
// requires a GC cycle to treat as live roots: a persistent-pointer
// Registry for long-lived diagram variables, a per-goroutine value
// Stack for intermediate results inside recursive algorithms, and a
// per-goroutine TaskStack for in-flight task handles.
//
// None of these types talk to the node or weight tables directly — they
// only track node.Edge values. The evbdd package's GC orchestration
// reads only the Registry (through Engine.Protect/Unprotect); the
// contents of a Stack or TaskStack are not GC roots for it.
package refs
