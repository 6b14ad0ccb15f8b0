package refs

import (
	"sync"

	"github.com/evbdd/qsim/node"
)

// Registry is the persistent-pointer channel (spec §4.7): the set of
// storage locations whose current value must be treated as a GC root.
// This is the channel user code (and the gates package's registry) uses
// for long-lived diagram variables.
type Registry struct {
	mu        sync.RWMutex
	protected map[*node.Edge]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{protected: make(map[*node.Edge]struct{})}
}

// Protect registers ptr so that *ptr is treated as a GC root until
// Unprotect(ptr) is called. Protecting the same pointer twice is a no-op.
func (r *Registry) Protect(ptr *node.Edge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protected[ptr] = struct{}{}
}

// Unprotect removes ptr from the set of GC roots.
func (r *Registry) Unprotect(ptr *node.Edge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.protected, ptr)
}

// Roots returns a snapshot of the edges currently reachable through
// every protected pointer.
func (r *Registry) Roots() []node.Edge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]node.Edge, 0, len(r.protected))
	for ptr := range r.protected {
		out = append(out, *ptr)
	}
	return out
}

// Pointers returns a snapshot of every currently-protected storage
// location. GC uses this (rather than Roots) because it must write the
// post-relocation edge back into each location, not merely read it.
func (r *Registry) Pointers() []*node.Edge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*node.Edge, 0, len(r.protected))
	for ptr := range r.protected {
		out = append(out, ptr)
	}
	return out
}

// Len reports how many pointers are currently protected.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.protected)
}
