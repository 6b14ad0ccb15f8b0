package evbdd

import (
	"math"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// ProbQubit0 returns the probability that measuring qubit k in the
// n-qubit state a yields outcome 0: it descends level by level from the
// root, marginalizing over every qubit before k (both branches
// contribute, since those qubits are not being measured) until it
// reaches level k, where only the low half-diagram is summed with
// ProbSum (grounded on qmdd_measure_qubit's probability computation in
// qsylvan_simulator.h). a is assumed already normalized, so this is
// P(k=0) directly rather than a fraction of a separately-computed total.
func (e *Engine) ProbQubit0(a node.Edge, k, n int) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return 0, ErrShutdown
	}
	return e.probQubit0Rec(a, 0, k, n)
}

// probQubit0Rec walks levels [level, k): at each one it descends into
// both low and high (marginalizing the qubit at that level, which is not
// the one being measured) and sums their contributions. At level k it
// keeps only the low branch — the outcome-0 half — and hands the rest
// off to probSumRec, which needs no further special-casing.
func (e *Engine) probQubit0Rec(a node.Edge, level, k, n int) (float64, error) {
	if level == k {
		_, low, _, err := e.getTopVar(a, uint32(level))
		if err != nil {
			return 0, err
		}
		return e.probSumRec(low, level+1, n)
	}

	_, low, high, err := e.getTopVar(a, uint32(level))
	if err != nil {
		return 0, err
	}
	lowSum, err := e.probQubit0Rec(low, level+1, k, n)
	if err != nil {
		return 0, err
	}
	highSum, err := e.probQubit0Rec(high, level+1, k, n)
	if err != nil {
		return 0, err
	}
	return lowSum + highSum, nil
}

// ProjectAndNormalize returns the post-measurement state after qubit k
// is observed to be outcome (0 or 1): the branch not matching outcome is
// zeroed at level k, and the surviving amplitudes are rescaled by
// 1/sqrt(prob) so the resulting state is unit norm again. prob must be
// the probability of outcome (e.g. from ProbQubit0, or 1-ProbQubit0 for
// outcome 1) and is the caller's responsibility — this keeps the engine
// from recomputing a probability it was likely just asked for. A prob
// that is not positive is rejected with ErrVariableMismatch.
func (e *Engine) ProjectAndNormalize(a node.Edge, k, outcome int, prob float64, n int) (node.Edge, error) {
	if prob <= 0 {
		return 0, ErrVariableMismatch
	}
	return e.run([]node.Edge{a}, func(roots []node.Edge) (node.Edge, error) {
		projected, err := e.projectRec(roots[0], 0, n, k, outcome)
		if err != nil {
			return 0, err
		}
		scale := 1 / math.Sqrt(prob)
		rootW, err := e.wt.Value(e.layout.Weight(projected))
		if err != nil {
			return 0, err
		}
		h, err := e.lookupWeight(weight.Mul(rootW, weight.Complex{Re: scale}))
		if err != nil {
			return 0, err
		}
		return e.layout.MakeEdge(e.layout.Target(projected), h), nil
	})
}

func (e *Engine) projectRec(a node.Edge, level, n, k, outcome int) (node.Edge, error) {
	_, low, high, err := e.getTopVar(a, uint32(level))
	if err != nil {
		return 0, err
	}

	if level == k {
		zero := e.layout.MakeEdge(node.Terminal, weight.Zero)
		child := low
		if outcome == 1 {
			child = high
		}
		if outcome == 0 {
			return e.makeNode(uint32(level), child, zero)
		}
		return e.makeNode(uint32(level), zero, child)
	}

	newLow, err := e.projectRec(low, level+1, n, k, outcome)
	if err != nil {
		return 0, err
	}
	newHigh, err := e.projectRec(high, level+1, n, k, outcome)
	if err != nil {
		return 0, err
	}
	return e.makeNode(uint32(level), newLow, newHigh)
}
