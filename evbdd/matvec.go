package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// MatVec computes the matrix-vector product of the 2n-variable diagram m
// (row bit 2k, column bit 2k+1 at level k) against the n-variable
// diagram v (spec §4.8.2).
func (e *Engine) MatVec(m, v node.Edge, n int) (node.Edge, error) {
	return e.run([]node.Edge{m, v}, func(roots []node.Edge) (node.Edge, error) {
		return e.matvecRec(roots[0], roots[1], 0, n)
	})
}

func (e *Engine) matvecRec(m, v node.Edge, level, n int) (node.Edge, error) {
	if level == n {
		wm, err := e.wt.Value(e.layout.Weight(m))
		if err != nil {
			return 0, err
		}
		wv, err := e.wt.Value(e.layout.Weight(v))
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(weight.Mul(wm, wv))
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(node.Terminal, h), nil
	}

	keyM, keyV, keyLevel := uint64(m), uint64(v), uint64(level)
	if cached, ok := e.cache.Get3(opcache.MATVEC, keyM, keyV, keyLevel); ok {
		return node.Edge(cached), nil
	}

	rowVar := uint32(2 * level)
	colVar := uint32(2*level + 1)

	_, mRow0, mRow1, err := e.getTopVar(m, rowVar)
	if err != nil {
		return 0, err
	}
	_, m00, m01, err := e.getTopVar(mRow0, colVar)
	if err != nil {
		return 0, err
	}
	_, m10, m11, err := e.getTopVar(mRow1, colVar)
	if err != nil {
		return 0, err
	}
	_, v0, v1, err := e.getTopVar(v, uint32(level))
	if err != nil {
		return 0, err
	}

	out0Task := e.pool.Spawn(func() (node.Edge, error) {
		a, err := e.matvecRec(m00, v0, level+1, n)
		if err != nil {
			return 0, err
		}
		b, err := e.matvecRec(m01, v1, level+1, n)
		if err != nil {
			return 0, err
		}
		return e.plusRec(a, b)
	})

	a1, err := e.matvecRec(m10, v0, level+1, n)
	if err != nil {
		return 0, err
	}
	b1, err := e.matvecRec(m11, v1, level+1, n)
	if err != nil {
		return 0, err
	}
	out1, err := e.plusRec(a1, b1)
	if err != nil {
		return 0, err
	}

	out0, err := out0Task.Sync()
	if err != nil {
		return 0, err
	}

	result, err := e.makeNode(uint32(level), out0, out1)
	if err != nil {
		return 0, err
	}
	e.cache.Put3(opcache.MATVEC, keyM, keyV, keyLevel, uint64(result))
	return result, nil
}
