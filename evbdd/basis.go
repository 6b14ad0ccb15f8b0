package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// MakeBasisState builds the diagram for the computational basis state
// |bits⟩, where bits[i] is the value (0 or 1) of qubit i. It is built
// bottom-up from a Terminal edge of weight one, wrapping one variable
// level at a time so that the unmatched branch at every level routes to
// the Terminal with weight zero and collapses under MakeNode's
// zero-absorption rule, leaving a single path of amplitude one through
// the diagram (supplemented from bell_state.c's basis-vector setup).
func (e *Engine) MakeBasisState(bits []int) (node.Edge, error) {
	return e.run(nil, func(roots []node.Edge) (node.Edge, error) {
		return e.makeBasisStateRec(bits)
	})
}

func (e *Engine) makeBasisStateRec(bits []int) (node.Edge, error) {
	cur := e.layout.MakeEdge(node.Terminal, weight.One)
	zero := e.layout.MakeEdge(node.Terminal, weight.Zero)

	for level := len(bits) - 1; level >= 0; level-- {
		var err error
		if bits[level] == 0 {
			cur, err = e.makeNode(uint32(level), cur, zero)
		} else {
			cur, err = e.makeNode(uint32(level), zero, cur)
		}
		if err != nil {
			return 0, err
		}
	}
	return cur, nil
}
