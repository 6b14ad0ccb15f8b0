package gates

import (
	"github.com/evbdd/qsim/evbdd"
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

func makeOperator(e *evbdd.Engine, m Matrix2) (node.Edge, error) {
	return e.MakeOperator(m.U00, m.U01, m.U10, m.U11)
}

// makeOperatorLocked is makeOperator's counterpart for use from inside a
// ReinitHook, which runs while the GC cycle that invoked it still holds
// the engine's lock (see Engine.MakeOperatorLocked). Registry.Reinit is
// the only caller.
func makeOperatorLocked(e *evbdd.Engine, m Matrix2) (node.Edge, error) {
	return e.MakeOperatorLocked(m.U00, m.U01, m.U10, m.U11)
}

// embedOne builds the n-qubit operator that applies m at qubit q and
// identity at every other qubit, via a chain of Tensor calls.
func embedOne(e *evbdd.Engine, n, q int, m Matrix2) (node.Edge, error) {
	acc := e.Layout().MakeEdge(node.Terminal, evbdd.WOne)
	for i := 0; i < n; i++ {
		var factor node.Edge
		var err error
		if i == q {
			factor, err = makeOperator(e, m)
		} else {
			factor, err = makeOperator(e, identity2())
		}
		if err != nil {
			return 0, err
		}
		acc, err = e.Tensor(acc, factor, 2*i)
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}

// embedTwo builds the n-qubit operator that applies ma at qa and mb at
// qb (qa != qb), identity everywhere else.
func embedTwo(e *evbdd.Engine, n, qa int, ma Matrix2, qb int, mb Matrix2) (node.Edge, error) {
	acc := e.Layout().MakeEdge(node.Terminal, evbdd.WOne)
	for i := 0; i < n; i++ {
		var factor node.Edge
		var err error
		switch {
		case i == qa:
			factor, err = makeOperator(e, ma)
		case i == qb:
			factor, err = makeOperator(e, mb)
		default:
			factor, err = makeOperator(e, identity2())
		}
		if err != nil {
			return 0, err
		}
		acc, err = e.Tensor(acc, factor, 2*i)
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}

// OperatorControlled builds the full n-qubit operator for gate m applied
// to target, controlled by control (control != target): the standard
// |0⟩⟨0|⊗I + |1⟩⟨1|⊗U projector decomposition, summed with Plus (spec
// §4.8.1) — "lifts a single-qubit gate to a controlled form via the
// engine's diagram algebra, no new engine primitive" (SPEC_FULL.md §4.1).
func OperatorControlled(e *evbdd.Engine, n, control, target int, m Matrix2) (node.Edge, error) {
	term0, err := embedTwo(e, n, control, projector0(), target, identity2())
	if err != nil {
		return 0, err
	}
	term1, err := embedTwo(e, n, control, projector1(), target, m)
	if err != nil {
		return 0, err
	}
	return e.Plus(term0, term1)
}

// OperatorSwap builds the full n-qubit SWAP operator between qa and qb
// from the Pauli decomposition SWAP = (I⊗I + X⊗X + Y⊗Y + Z⊗Z) / 2, each
// term embedded and summed with Plus — again no dedicated SWAP
// primitive, only the generic algebra.
func OperatorSwap(e *evbdd.Engine, n, qa, qb int) (node.Edge, error) {
	half := weight.Complex{Re: 0.5}
	terms := []Matrix2{identity2(), {c0, c1, c1, c0}, {c0, cNegI, cI, c0}, {c1, c0, c0, cNeg1}}

	var acc node.Edge
	for i, m := range terms {
		term, err := embedTwo(e, n, qa, scale(m, half), qb, m)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			acc = term
			continue
		}
		acc, err = e.Plus(acc, term)
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}
