package evbdd

import (
	"math"
	"math/rand/v2"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

var (
	stressOne  = weight.Complex{Re: 1}
	stressZero = weight.Complex{}
)

// RandomCircuitResult is the outcome of one RunRandomCircuit call.
type RandomCircuitResult struct {
	State    node.Edge
	GCCycles int
}

// RunRandomCircuit builds the |0...0⟩ basis state on nQubits qubits and
// applies nGates random gates — a single-qubit diagonal rotation or a
// controlled diagonal rotation between two distinct qubits, chosen and
// parameterized by a seeded PCG source for bit-for-bit reproducibility —
// against it (spec §8 scenario 6, grounded on examples/random_circuit.c).
// When checkEvery > 0 and checkFn is non-nil, checkFn runs on the running
// state after every checkEvery-th gate, letting a caller assert invariants
// 1-4 and ProbSum == 1 mid-run as the seed scenario requires.
//
// This stays inside evbdd rather than living in the gates package so the
// GC-soak stress path never depends on the named-gate catalogue: it
// builds its own operators directly from MakeOperator/Tensor/Plus, the
// same primitives gates.OperatorControlled uses for a real controlled
// gate, just kept independent to avoid a dependency cycle (gates already
// imports evbdd).
func (e *Engine) RunRandomCircuit(seed uint64, nQubits, nGates, checkEvery int, checkFn func(node.Edge) error) (RandomCircuitResult, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

	state, err := e.MakeBasisState(make([]int, nQubits))
	if err != nil {
		return RandomCircuitResult{}, err
	}
	e.Protect(&state)
	defer e.Unprotect(&state)

	for i := 0; i < nGates; i++ {
		theta := rng.Float64() * 2 * math.Pi
		d00, d11 := rzDiag(theta)

		var op node.Edge
		if nQubits == 1 || rng.Float64() < 0.5 {
			q := rng.IntN(nQubits)
			op, err = e.embedDiagonalOne(nQubits, q, d00, d11)
		} else {
			control := rng.IntN(nQubits)
			target := rng.IntN(nQubits - 1)
			if target >= control {
				target++
			}
			op, err = e.embedControlledDiagonal(nQubits, control, target, d00, d11)
		}
		if err != nil {
			return RandomCircuitResult{}, err
		}

		state, err = e.MatVec(op, state, nQubits)
		if err != nil {
			return RandomCircuitResult{}, err
		}

		if checkEvery > 0 && checkFn != nil && (i+1)%checkEvery == 0 {
			if err := checkFn(state); err != nil {
				return RandomCircuitResult{}, err
			}
		}
	}
	return RandomCircuitResult{State: state, GCCycles: e.GCCycles()}, nil
}

// rzDiag returns the two diagonal entries of an Rz(theta)-style phase
// rotation, e^{∓iθ/2}.
func rzDiag(theta float64) (weight.Complex, weight.Complex) {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return weight.Complex{Re: c, Im: -s}, weight.Complex{Re: c, Im: s}
}

func (e *Engine) identityOperator1() (node.Edge, error) {
	return e.MakeOperator(stressOne, stressZero, stressZero, stressOne)
}

func (e *Engine) diagonalOperator1(d00, d11 weight.Complex) (node.Edge, error) {
	return e.MakeOperator(d00, stressZero, stressZero, d11)
}

// embedDiagonalOne builds the n-qubit operator that applies the diagonal
// single-qubit gate (d00, d11) at qubit q and identity elsewhere, via a
// chain of Tensor calls (spec §4.8.5/§4.8.6) — no new engine primitive.
func (e *Engine) embedDiagonalOne(n, q int, d00, d11 weight.Complex) (node.Edge, error) {
	acc := e.Layout().MakeEdge(node.Terminal, weight.One)
	e.Protect(&acc)
	defer e.Unprotect(&acc)
	for i := 0; i < n; i++ {
		var factor node.Edge
		var err error
		if i == q {
			factor, err = e.diagonalOperator1(d00, d11)
		} else {
			factor, err = e.identityOperator1()
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

// embedControlledDiagonal builds the n-qubit operator for a controlled
// diagonal rotation: |0⟩⟨0| on control with identity on target, plus
// |1⟩⟨1| on control with (d00, d11) on target, summed with Plus (spec
// §4.8.1) — the same projector-sum construction gates.OperatorControlled
// uses for named controlled gates.
func (e *Engine) embedControlledDiagonal(n, control, target int, d00, d11 weight.Complex) (node.Edge, error) {
	term0, err := e.embedTwoDiagonal(n, control, stressOne, stressZero, target, stressOne, stressOne)
	if err != nil {
		return 0, err
	}
	e.Protect(&term0)
	defer e.Unprotect(&term0)
	term1, err := e.embedTwoDiagonal(n, control, stressZero, stressOne, target, d00, d11)
	if err != nil {
		return 0, err
	}
	return e.Plus(term0, term1)
}

func (e *Engine) embedTwoDiagonal(n, qa int, a00, a11 weight.Complex, qb int, b00, b11 weight.Complex) (node.Edge, error) {
	acc := e.Layout().MakeEdge(node.Terminal, weight.One)
	e.Protect(&acc)
	defer e.Unprotect(&acc)
	for i := 0; i < n; i++ {
		var factor node.Edge
		var err error
		switch {
		case i == qa:
			factor, err = e.diagonalOperator1(a00, a11)
		case i == qb:
			factor, err = e.diagonalOperator1(b00, b11)
		default:
			factor, err = e.identityOperator1()
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
