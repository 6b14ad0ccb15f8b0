package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// Inner computes the inner product ⟨b|a⟩ = Σₓ conj(b(x))·a(x) of two
// n-variable diagrams, returned as a Terminal-rooted edge carrying the
// scalar (spec §4.8.4).
func (e *Engine) Inner(a, b node.Edge, n int) (node.Edge, error) {
	return e.run([]node.Edge{a, b}, func(roots []node.Edge) (node.Edge, error) {
		c, err := e.innerRec(roots[0], roots[1], 0, n)
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(c)
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(node.Terminal, h), nil
	})
}

func (e *Engine) innerRec(a, b node.Edge, level, n int) (weight.Complex, error) {
	if level == n {
		wa, err := e.wt.Value(e.layout.Weight(a))
		if err != nil {
			return weight.Complex{}, err
		}
		wb, err := e.wt.Value(e.layout.Weight(b))
		if err != nil {
			return weight.Complex{}, err
		}
		return weight.Mul(weight.Conj(wb), wa), nil
	}

	if cached, ok := e.cache.Get3(opcache.INNER_PRODUCT, uint64(a), uint64(b), uint64(level)); ok {
		return e.wt.Value(weight.Handle(cached))
	}

	_, aLow, aHigh, err := e.getTopVar(a, uint32(level))
	if err != nil {
		return weight.Complex{}, err
	}
	_, bLow, bHigh, err := e.getTopVar(b, uint32(level))
	if err != nil {
		return weight.Complex{}, err
	}

	highTask := e.pool.Spawn(func() (node.Edge, error) {
		c, err := e.innerRec(aHigh, bHigh, level+1, n)
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(c)
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(node.Terminal, h), nil
	})

	lowC, err := e.innerRec(aLow, bLow, level+1, n)
	if err != nil {
		return weight.Complex{}, err
	}

	highEdge, err := highTask.Sync()
	if err != nil {
		return weight.Complex{}, err
	}
	highC, err := e.wt.Value(e.layout.Weight(highEdge))
	if err != nil {
		return weight.Complex{}, err
	}

	sum := weight.Add(lowC, highC)
	h, err := e.lookupWeight(sum)
	if err != nil {
		return weight.Complex{}, err
	}
	e.cache.Put3(opcache.INNER_PRODUCT, uint64(a), uint64(b), uint64(level), uint64(h))
	return sum, nil
}
