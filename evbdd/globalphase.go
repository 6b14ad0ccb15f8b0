package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// RemoveGlobalPhase rescales a's root edge by the inverse of its own
// phase, so that the outer weight becomes a nonnegative real magnitude.
// Because every amplitude in the diagram is the product of edge weights
// along its path, dividing only the root weight by a single unit-modulus
// factor divides every amplitude by the same factor — exactly a global
// phase rotation — leaving every relative phase and probability
// untouched (grounded on qdd_remove_global_phase's use in
// test_qdd_gates.c, where it normalizes a diagram's global phase before
// comparing two otherwise-equal states).
func (e *Engine) RemoveGlobalPhase(a node.Edge) (node.Edge, error) {
	return e.run([]node.Edge{a}, func(roots []node.Edge) (node.Edge, error) {
		root := roots[0]
		w, err := e.wt.Value(e.layout.Weight(root))
		if err != nil {
			return 0, err
		}
		mag := weight.Abs(w)
		if mag == 0 {
			return root, nil
		}
		phaseInv := weight.Complex{Re: w.Re / mag, Im: -w.Im / mag}
		rescaled := weight.Mul(w, phaseInv)
		h, err := e.lookupWeight(rescaled)
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(e.layout.Target(root), h), nil
	})
}
