package task

import (
	"sync"

	"github.com/evbdd/qsim/node"
)

// Handle is a future for one Spawn'd job. It satisfies the Syncer
// interface the refs package defines structurally — refs.TaskStack can
// track in-flight handles without this package importing refs.
type Handle struct {
	wg   sync.WaitGroup
	edge node.Edge
	err  error
}

// Sync blocks until the job backing h completes and returns its result.
// Sync is safe to call more than once, and from more than one goroutine;
// every call after the first returns instantly with the same result.
func (h *Handle) Sync() (node.Edge, error) {
	h.wg.Wait()
	return h.edge, h.err
}
