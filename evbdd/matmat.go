package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// MatMat computes the matrix-matrix product of two 2n-variable diagrams,
// with a four-way block split at every level (spec §4.8.3).
func (e *Engine) MatMat(a, b node.Edge, n int) (node.Edge, error) {
	return e.run([]node.Edge{a, b}, func(roots []node.Edge) (node.Edge, error) {
		return e.matmatRec(roots[0], roots[1], 0, n)
	})
}

func (e *Engine) matmatRec(a, b node.Edge, level, n int) (node.Edge, error) {
	if level == n {
		wa, err := e.wt.Value(e.layout.Weight(a))
		if err != nil {
			return 0, err
		}
		wb, err := e.wt.Value(e.layout.Weight(b))
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(weight.Mul(wa, wb))
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(node.Terminal, h), nil
	}

	keyA, keyB, keyLevel := uint64(a), uint64(b), uint64(level)
	if cached, ok := e.cache.Get3(opcache.MATMAT, keyA, keyB, keyLevel); ok {
		return node.Edge(cached), nil
	}

	rowVar := uint32(2 * level)
	colVar := uint32(2*level + 1)

	_, aRow0, aRow1, err := e.getTopVar(a, rowVar)
	if err != nil {
		return 0, err
	}
	_, a00, a01, err := e.getTopVar(aRow0, colVar)
	if err != nil {
		return 0, err
	}
	_, a10, a11, err := e.getTopVar(aRow1, colVar)
	if err != nil {
		return 0, err
	}
	_, bRow0, bRow1, err := e.getTopVar(b, rowVar)
	if err != nil {
		return 0, err
	}
	_, b00, b01, err := e.getTopVar(bRow0, colVar)
	if err != nil {
		return 0, err
	}
	_, b10, b11, err := e.getTopVar(bRow1, colVar)
	if err != nil {
		return 0, err
	}

	row0Task := e.pool.Spawn(func() (node.Edge, error) {
		c00a, err := e.matmatRec(a00, b00, level+1, n)
		if err != nil {
			return 0, err
		}
		c00b, err := e.matmatRec(a01, b10, level+1, n)
		if err != nil {
			return 0, err
		}
		c00, err := e.plusRec(c00a, c00b)
		if err != nil {
			return 0, err
		}

		c01a, err := e.matmatRec(a00, b01, level+1, n)
		if err != nil {
			return 0, err
		}
		c01b, err := e.matmatRec(a01, b11, level+1, n)
		if err != nil {
			return 0, err
		}
		c01, err := e.plusRec(c01a, c01b)
		if err != nil {
			return 0, err
		}

		return e.makeNode(colVar, c00, c01)
	})

	c10a, err := e.matmatRec(a10, b00, level+1, n)
	if err != nil {
		return 0, err
	}
	c10b, err := e.matmatRec(a11, b10, level+1, n)
	if err != nil {
		return 0, err
	}
	c10, err := e.plusRec(c10a, c10b)
	if err != nil {
		return 0, err
	}

	c11a, err := e.matmatRec(a10, b01, level+1, n)
	if err != nil {
		return 0, err
	}
	c11b, err := e.matmatRec(a11, b11, level+1, n)
	if err != nil {
		return 0, err
	}
	c11, err := e.plusRec(c11a, c11b)
	if err != nil {
		return 0, err
	}

	row1, err := e.makeNode(colVar, c10, c11)
	if err != nil {
		return 0, err
	}

	row0, err := row0Task.Sync()
	if err != nil {
		return 0, err
	}

	result, err := e.makeNode(rowVar, row0, row1)
	if err != nil {
		return 0, err
	}
	e.cache.Put3(opcache.MATMAT, keyA, keyB, keyLevel, uint64(result))
	return result, nil
}
