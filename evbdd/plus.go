package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// Plus computes the pointwise sum of the two diagrams: eval(Plus(a,b)) =
// eval(a) + eval(b) over their shared variable set (spec §4.8.1).
func (e *Engine) Plus(a, b node.Edge) (node.Edge, error) {
	return e.run([]node.Edge{a, b}, func(roots []node.Edge) (node.Edge, error) {
		return e.plusRec(roots[0], roots[1])
	})
}

func (e *Engine) plusRec(a, b node.Edge) (node.Edge, error) {
	if e.layout.Weight(a) == weight.Zero {
		return b, nil
	}
	if e.layout.Weight(b) == weight.Zero {
		return a, nil
	}

	ta, tb := e.layout.Target(a), e.layout.Target(b)
	if ta == node.Terminal && tb == node.Terminal {
		wa, err := e.wt.Value(e.layout.Weight(a))
		if err != nil {
			return 0, err
		}
		wb, err := e.wt.Value(e.layout.Weight(b))
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(weight.Add(wa, wb))
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(node.Terminal, h), nil
	}

	keyA, keyB := opcache.OrderCommutative(uint64(a), uint64(b))
	if cached, ok := e.cache.Get3(opcache.PLUS, keyA, keyB, 0); ok {
		return node.Edge(cached), nil
	}

	va, err := e.topVar(a)
	if err != nil {
		return 0, err
	}
	vb, err := e.topVar(b)
	if err != nil {
		return 0, err
	}
	v := minVar(va, vb)

	_, aLow, aHigh, err := e.getTopVar(a, v)
	if err != nil {
		return 0, err
	}
	_, bLow, bHigh, err := e.getTopVar(b, v)
	if err != nil {
		return 0, err
	}

	highTask := e.pool.Spawn(func() (node.Edge, error) {
		return e.plusRec(aHigh, bHigh)
	})
	low, err := e.plusRec(aLow, bLow)
	if err != nil {
		return 0, err
	}
	high, err := highTask.Sync()
	if err != nil {
		return 0, err
	}

	result, err := e.makeNode(v, low, high)
	if err != nil {
		return 0, err
	}
	e.cache.Put3(opcache.PLUS, keyA, keyB, 0, uint64(result))
	return result, nil
}
