package refs

import "github.com/evbdd/qsim/node"

// Stack is the value-stack reference channel (spec §4.7): a LIFO of
// edges used inside recursive algorithms to protect intermediate
// results across suspension points where the runtime may initiate a GC.
//
// Spec frames this as implicit thread-local state; this implementation
// makes the per-goroutine discipline explicit instead — each worker
// goroutine owns one Stack and threads it through its call chain as an
// ordinary argument, which is the idiomatic Go equivalent of "per-thread
// LIFO" (Go has no supported thread-local storage). Guard, below, is the
// "scoped-acquisition helper" spec §9 Design Notes recommends: it pushes
// on entry and pops on every exit path via defer.
type Stack struct {
	edges []node.Edge
}

// NewStack returns an empty Stack with room for depth entries before it
// needs to grow.
func NewStack(depth int) *Stack {
	return &Stack{edges: make([]node.Edge, 0, depth)}
}

// Push protects e until a matching Pop.
func (s *Stack) Push(e node.Edge) {
	s.edges = append(s.edges, e)
}

// Pop discards the top k entries (spec's pop(k)). Popping more entries
// than are present truncates to empty rather than panicking.
func (s *Stack) Pop(k int) {
	n := len(s.edges) - k
	if n < 0 {
		n = 0
	}
	s.edges = s.edges[:n]
}

// Len reports the number of currently protected entries.
func (s *Stack) Len() int { return len(s.edges) }

// Snapshot returns a copy of every edge currently on the stack. evbdd's
// GC does not read it (see package doc).
func (s *Stack) Snapshot() []node.Edge {
	out := make([]node.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Guard pushes e and returns a function that pops it; call the returned
// function via defer so e is protected for the remainder of the calling
// scope regardless of which return path is taken:
//
//	defer stack.Guard(e)()
func (s *Stack) Guard(e node.Edge) func() {
	s.Push(e)
	return func() { s.Pop(1) }
}
