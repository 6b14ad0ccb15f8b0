package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// GetValue descends a following assignment's bits, multiplying edge
// weights along the path, and returns the resulting complex amplitude
// directly (spec §4.8.8). assignment[i] selects the low (0) or high (1)
// child at variable i; variables the path never visits — because a node
// at a higher variable was skipped — contribute nothing, matching
// "skipped variables take either branch (same subdiagram)" automatically,
// since no branch decision is ever made for a variable with no node.
//
// GetValue never allocates a table entry, so it takes the engine's lock
// directly rather than going through run/makeNode's GC-retry machinery.
func (e *Engine) GetValue(a node.Edge, assignment []int) (weight.Complex, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return weight.Complex{}, ErrShutdown
	}
	return e.getValueRec(a, assignment)
}

func (e *Engine) getValueRec(a node.Edge, assignment []int) (weight.Complex, error) {
	w, err := e.wt.Value(e.layout.Weight(a))
	if err != nil {
		return weight.Complex{}, err
	}

	target := e.layout.Target(a)
	if target == node.Terminal {
		return w, nil
	}

	varv, low, high, err := e.nt.Get(target)
	if err != nil {
		return weight.Complex{}, err
	}

	child := low
	if int(varv) < len(assignment) && assignment[varv] == 1 {
		child = high
	}

	childVal, err := e.getValueRec(child, assignment)
	if err != nil {
		return weight.Complex{}, err
	}
	return weight.Mul(w, childVal), nil
}
