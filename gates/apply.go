package gates

import (
	"errors"

	"github.com/evbdd/qsim/evbdd"
	"github.com/evbdd/qsim/node"
)

// ErrUnknownGate is returned when ApplySequence encounters a Name with
// no catalogue entry and that is not one of the two-qubit dispatch tags.
var ErrUnknownGate = errors.New("gates: unknown gate name")

// Apply1 applies the single-qubit matrix m to qubit q of the n-qubit
// state, folding m into the n-qubit identity-elsewhere operator and
// running MatVec (spec §4.8.2), as SPEC_FULL.md §4 describes for the
// gate-application helpers.
func Apply1(e *evbdd.Engine, state node.Edge, n, q int, m Matrix2) (node.Edge, error) {
	op, err := embedOne(e, n, q, m)
	if err != nil {
		return 0, err
	}
	return e.MatVec(op, state, n)
}

// ApplyControlled applies m to target, controlled by control, via
// OperatorControlled + MatVec.
func ApplyControlled(e *evbdd.Engine, state node.Edge, n, control, target int, m Matrix2) (node.Edge, error) {
	op, err := OperatorControlled(e, n, control, target, m)
	if err != nil {
		return 0, err
	}
	return e.MatVec(op, state, n)
}

// ApplySwap swaps qubits qa and qb via OperatorSwap + MatVec.
func ApplySwap(e *evbdd.Engine, state node.Edge, n, qa, qb int) (node.Edge, error) {
	op, err := OperatorSwap(e, n, qa, qb)
	if err != nil {
		return 0, err
	}
	return e.MatVec(op, state, n)
}

// Step is one circuit instruction: a gate name plus the qubit(s) it acts
// on (one qubit for a catalogue entry, two for CX/CZ/Swap, control first).
type Step struct {
	Gate   Name
	Qubits []int
}

// ApplySequence drives state through steps in order — the minimum
// surface SPEC_FULL.md needs to build the Bell/GHZ/Pauli-identity/
// interference scenarios from spec.md §8 without a QASM parser.
func ApplySequence(e *evbdd.Engine, state node.Edge, n int, steps []Step) (node.Edge, error) {
	cur := state
	for _, step := range steps {
		var err error
		switch step.Gate {
		case CX:
			cur, err = ApplyControlled(e, cur, n, step.Qubits[0], step.Qubits[1], matrixX())
		case CZ:
			cur, err = ApplyControlled(e, cur, n, step.Qubits[0], step.Qubits[1], matrixZ())
		case Swap:
			cur, err = ApplySwap(e, cur, n, step.Qubits[0], step.Qubits[1])
		default:
			m, ok := matrixFor(step.Gate)
			if !ok {
				return 0, ErrUnknownGate
			}
			cur, err = Apply1(e, cur, n, step.Qubits[0], m)
		}
		if err != nil {
			return 0, err
		}
	}
	return cur, nil
}

func matrixX() Matrix2 { m, _ := matrixFor(X); return m }
func matrixZ() Matrix2 { m, _ := matrixFor(Z); return m }
