package gates

import (
	"fmt"
	"sync"

	"github.com/evbdd/qsim/evbdd"
	"github.com/evbdd/qsim/node"
)

// Registry holds the process-wide gate-matrix operator diagrams for the
// fixed single-qubit catalogue, rebuilt from their construction recipe
// (the Matrix2 values in matrixFor) after every GC cycle (spec.md's
// Design Notes: "hide it behind a registry object whose handle-valued
// contents are reconstructed from a stored construction recipe"). Each
// operator edge is kept live via refs.Registry.Protect (through the
// engine's Protect/Unprotect), and the whole catalogue is rebuilt by
// Reinit, wired as evbdd.Config's ReinitHook via SetReinitHook.
type Registry struct {
	eng *evbdd.Engine

	mu    sync.Mutex
	edges map[Name]*node.Edge
}

// NewRegistry builds the operator for every catalogued gate against eng
// and installs Reinit as eng's GC reinit hook, so the catalogue survives
// every subsequent GC cycle automatically.
func NewRegistry(eng *evbdd.Engine) (*Registry, error) {
	r := &Registry{eng: eng, edges: make(map[Name]*node.Edge, len(catalogue))}
	if err := r.Reinit(); err != nil {
		return nil, err
	}
	eng.SetReinitHook(func() {
		if err := r.Reinit(); err != nil {
			panic("gates: reinit failed: " + err.Error())
		}
	})
	return r, nil
}

// Reinit rebuilds every catalogued gate's operator edge from its Matrix2
// recipe and writes it into the same protected pointer it occupied
// before, so existing Get callers observe the refreshed post-GC handle
// without re-registering (spec §4.7 step 5's "reinit_entries_hook").
//
// Reinit always rebuilds through makeOperatorLocked rather than
// makeOperator. It is called from two places: once from NewRegistry,
// before eng is shared with any other goroutine (safe without the
// engine's lock, same as any other field write during construction),
// and once per GC cycle from the ReinitHook NewRegistry installs, which runs
// from inside gc() while the triggering run()/GCNow() call still holds
// the engine's lock — going through the public, locking MakeOperator
// there would deadlock the engine (sync.Mutex is not reentrant).
func (r *Registry) Reinit() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range catalogue {
		m, ok := matrixFor(name)
		if !ok {
			return fmt.Errorf("gates: no recipe for catalogued name %q", name)
		}
		edge, err := makeOperatorLocked(r.eng, m)
		if err != nil {
			return err
		}

		ptr, exists := r.edges[name]
		if !exists {
			ptr = new(node.Edge)
			r.eng.Protect(ptr)
			r.edges[name] = ptr
		}
		*ptr = edge
	}
	return nil
}

// Get returns the current operator edge for a catalogued single-qubit
// gate name, and whether that name is in the catalogue.
func (r *Registry) Get(name Name) (node.Edge, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ptr, ok := r.edges[name]
	if !ok {
		return 0, false
	}
	return *ptr, true
}

// Apply1 applies the registry's catalogued gate name to qubit q of the
// n-qubit state. It looks the gate up by its stored Matrix2 recipe
// rather than its (possibly stale, pre-GC) cached edge, so it is safe to
// call at any point in the engine's lifetime.
func (r *Registry) Apply1(state node.Edge, n, q int, name Name) (node.Edge, error) {
	m, ok := matrixFor(name)
	if !ok {
		return 0, ErrUnknownGate
	}
	return Apply1(r.eng, state, n, q, m)
}
