package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// Equivalent reports whether a and b denote the same n-qubit state
// (spec §4.8.10). In exact mode it compares the root edges directly —
// both operands are already canonical under the engine's normalization
// and reduction rules, so structural equality of the packed edge word
// is equivalent to functional equality. Otherwise it enumerates every
// basis assignment and compares amplitudes within the engine's
// tolerance, which is exponential in n and intended for small n or test
// use rather than the simulator's hot path.
func (e *Engine) Equivalent(a, b node.Edge, n int, exact bool) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return false, ErrShutdown
	}

	if exact {
		return a == b, nil
	}

	assignment := make([]int, n)
	total := uint64(1) << uint(n)
	for x := uint64(0); x < total; x++ {
		for i := 0; i < n; i++ {
			assignment[i] = int((x >> uint(i)) & 1)
		}
		va, err := e.getValueRec(a, assignment)
		if err != nil {
			return false, err
		}
		vb, err := e.getValueRec(b, assignment)
		if err != nil {
			return false, err
		}
		if !weight.ApproxEq(va, vb, e.cfg.Tolerance) {
			return false, nil
		}
	}
	return true, nil
}
