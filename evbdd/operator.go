package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// MakeOperator builds the 2-variable diagram for the 2×2 matrix
//
//	u00 u01
//	u10 u11
//
// with row bit at variable 0 and column bit at variable 1, matching the
// (rowVar=2·level, colVar=2·level+1) convention MatVec/MatMat use at
// every level. Building an n-qubit separable operator reduces to
// MakeOperator for the per-qubit 2×2 block plus a chain of Tensor calls
// (spec §4.8.5/§4.8.6) — the engine has no gate-specific primitive, only
// this generic "matrix from four scalars" constructor, matching the
// engine's role per spec.md §1 ("the engine does not interpret gates").
func (e *Engine) MakeOperator(u00, u01, u10, u11 weight.Complex) (node.Edge, error) {
	return e.run(nil, func(roots []node.Edge) (node.Edge, error) {
		return e.buildOperator(u00, u01, u10, u11)
	})
}

// MakeOperatorLocked builds the same 2-variable operator diagram as
// MakeOperator, but assumes the caller already holds mu instead of
// acquiring it through run(). It exists for a ReinitHook (gates.Registry
// also uses it for its initial build inside NewRegistry): gc() invokes
// the hook while still holding the lock that the
// triggering run()/GCNow() call took, and sync.Mutex is not reentrant,
// so a hook that rebuilds its operators via the public, locking
// MakeOperator would deadlock the engine on its very first GC cycle.
// Not part of the public diagram API.
func (e *Engine) MakeOperatorLocked(u00, u01, u10, u11 weight.Complex) (node.Edge, error) {
	return e.buildOperator(u00, u01, u10, u11)
}

func (e *Engine) buildOperator(u00, u01, u10, u11 weight.Complex) (node.Edge, error) {
	h00, err := e.lookupWeight(u00)
	if err != nil {
		return 0, err
	}
	h01, err := e.lookupWeight(u01)
	if err != nil {
		return 0, err
	}
	h10, err := e.lookupWeight(u10)
	if err != nil {
		return 0, err
	}
	h11, err := e.lookupWeight(u11)
	if err != nil {
		return 0, err
	}

	row0, err := e.makeNode(1,
		e.layout.MakeEdge(node.Terminal, h00),
		e.layout.MakeEdge(node.Terminal, h01))
	if err != nil {
		return 0, err
	}
	row1, err := e.makeNode(1,
		e.layout.MakeEdge(node.Terminal, h10),
		e.layout.MakeEdge(node.Terminal, h11))
	if err != nil {
		return 0, err
	}
	return e.makeNode(0, row0, row1)
}
