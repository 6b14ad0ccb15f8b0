package evbdd

import (
	"math"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/weight"
)

// ProbSum returns the unnormalized sum of |amplitude|² over every
// n-qubit basis state reachable from a, starting at variable level
// (spec §4.8.9). Results are memoized by (a, level, n); since a cache
// slot only stores a uint64, the float64 sum is carried through as its
// raw bit pattern rather than interned as a weight handle — ProbSum is
// a derived scalar outside the diagram algebra proper.
func (e *Engine) ProbSum(a node.Edge, level, n int) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return 0, ErrShutdown
	}
	return e.probSumRec(a, level, n)
}

func (e *Engine) probSumRec(a node.Edge, level, n int) (float64, error) {
	if level == n {
		w, err := e.wt.Value(e.layout.Weight(a))
		if err != nil {
			return 0, err
		}
		return weight.Sqr(w), nil
	}

	if cached, ok := e.cache.Get3(opcache.PROB_SUM, uint64(a), uint64(level), uint64(n)); ok {
		return math.Float64frombits(cached), nil
	}

	_, low, high, err := e.getTopVar(a, uint32(level))
	if err != nil {
		return 0, err
	}

	lowSum, err := e.probSumRec(low, level+1, n)
	if err != nil {
		return 0, err
	}
	highSum, err := e.probSumRec(high, level+1, n)
	if err != nil {
		return 0, err
	}

	sum := lowSum + highSum
	e.cache.Put3(opcache.PROB_SUM, uint64(a), uint64(level), uint64(n), math.Float64bits(sum))
	return sum, nil
}
