package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// Shift returns an edge denoting the same function as a with every
// internal node's variable increased by k, rebuilt level-by-level
// through the unique-table and cached by (a, k) (spec §4.8.6).
func (e *Engine) Shift(a node.Edge, k int) (node.Edge, error) {
	return e.run([]node.Edge{a}, func(roots []node.Edge) (node.Edge, error) {
		return e.shiftRec(roots[0], k)
	})
}

func (e *Engine) shiftRec(a node.Edge, k int) (node.Edge, error) {
	target := e.layout.Target(a)
	if target == node.Terminal {
		return a, nil
	}

	if cached, ok := e.cache.Get3(opcache.SHIFT, uint64(a), uint64(k), 0); ok {
		return node.Edge(cached), nil
	}

	varv, low, high, err := e.nt.Get(target)
	if err != nil {
		return 0, err
	}
	newVar := varv + uint32(k)

	highTask := e.pool.Spawn(func() (node.Edge, error) { return e.shiftRec(high, k) })
	newLow, err := e.shiftRec(low, k)
	if err != nil {
		return 0, err
	}
	newHigh, err := highTask.Sync()
	if err != nil {
		return 0, err
	}

	result, err := e.foldOuterWeight(a, newVar, newLow, newHigh)
	if err != nil {
		return 0, err
	}
	e.cache.Put3(opcache.SHIFT, uint64(a), uint64(k), 0, uint64(result))
	return result, nil
}

// ReplaceTerminal substitutes target t wherever a's Terminal edge would
// appear, folding a's leaf weight multiplicatively into t's root weight
// (spec §4.8.7; the traversal Tensor reuses to splice a shifted operand
// in beneath every leaf of a).
func (e *Engine) ReplaceTerminal(a, t node.Edge) (node.Edge, error) {
	return e.run([]node.Edge{a, t}, func(roots []node.Edge) (node.Edge, error) {
		return e.replaceTerminalRec(roots[0], roots[1])
	})
}

func (e *Engine) replaceTerminalRec(a, t node.Edge) (node.Edge, error) {
	target := e.layout.Target(a)
	if target == node.Terminal {
		aw, err := e.wt.Value(e.layout.Weight(a))
		if err != nil {
			return 0, err
		}
		tw, err := e.wt.Value(e.layout.Weight(t))
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(weight.Mul(aw, tw))
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(e.layout.Target(t), h), nil
	}

	if cached, ok := e.cache.Get3(opcache.REPLACE_TERMINAL, uint64(a), uint64(t), 0); ok {
		return node.Edge(cached), nil
	}

	varv, low, high, err := e.nt.Get(target)
	if err != nil {
		return 0, err
	}

	highTask := e.pool.Spawn(func() (node.Edge, error) { return e.replaceTerminalRec(high, t) })
	newLow, err := e.replaceTerminalRec(low, t)
	if err != nil {
		return 0, err
	}
	newHigh, err := highTask.Sync()
	if err != nil {
		return 0, err
	}

	result, err := e.foldOuterWeight(a, varv, newLow, newHigh)
	if err != nil {
		return 0, err
	}
	e.cache.Put3(opcache.REPLACE_TERMINAL, uint64(a), uint64(t), 0, uint64(result))
	return result, nil
}

// Tensor increases every variable index in b by nvarsA, then splices the
// result beneath every leaf of a, propagating a's terminal weight into
// b's root weight (spec §4.8.5).
func (e *Engine) Tensor(a, b node.Edge, nvarsA int) (node.Edge, error) {
	return e.run([]node.Edge{a, b}, func(roots []node.Edge) (node.Edge, error) {
		shiftedB, err := e.shiftRec(roots[1], nvarsA)
		if err != nil {
			return 0, err
		}
		return e.replaceTerminalRec(roots[0], shiftedB)
	})
}

// foldOuterWeight builds the node (varv, newLow, newHigh) and multiplies
// its resulting common weight by src's own outer weight — the operation
// both Shift and ReplaceTerminal need once they've rebuilt a node's
// children but must still carry forward the weight on the edge pointing
// at the node they rebuilt from.
func (e *Engine) foldOuterWeight(src node.Edge, varv uint32, newLow, newHigh node.Edge) (node.Edge, error) {
	mid, err := e.makeNode(varv, newLow, newHigh)
	if err != nil {
		return 0, err
	}
	outerC, err := e.wt.Value(e.layout.Weight(src))
	if err != nil {
		return 0, err
	}
	midC, err := e.wt.Value(e.layout.Weight(mid))
	if err != nil {
		return 0, err
	}
	h, err := e.lookupWeight(weight.Mul(outerC, midC))
	if err != nil {
		return 0, err
	}
	return e.layout.MakeEdge(e.layout.Target(mid), h), nil
}
