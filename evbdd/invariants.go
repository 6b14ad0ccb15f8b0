package evbdd

import (
	"fmt"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/normalize"
	"github.com/evbdd/qsim/weight"
)

// CheckInvariants walks every node reachable from a and verifies spec §3
// invariants 1 (ordering), 2 (reduction), 3 (weight canonicalization under
// the engine's active normalization strategy) and 4 (zero absorption).
// It is not part of any production code path: per SPEC_FULL.md's "testing
// mode" decision, invariant checking is an ordinary exported helper
// exercised only from tests rather than a runtime toggle, since a
// violation is always a fatal bug regardless of who observes it.
func (e *Engine) CheckInvariants(a node.Edge) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := checkZeroAbsorption(e.layout, a); err != nil {
		return err
	}

	seen := make(map[node.Handle]struct{})
	return e.checkInvariantsRec(a, seen)
}

func (e *Engine) checkInvariantsRec(a node.Edge, seen map[node.Handle]struct{}) error {
	target := e.layout.Target(a)
	if target == node.Terminal {
		return nil
	}
	if _, ok := seen[target]; ok {
		return nil
	}
	seen[target] = struct{}{}

	varv, low, high, err := e.nt.Get(target)
	if err != nil {
		return err
	}

	if low == high {
		return fmt.Errorf("evbdd: invariant 2 violated at node %d: low == high", target)
	}
	if err := checkZeroAbsorption(e.layout, low); err != nil {
		return err
	}
	if err := checkZeroAbsorption(e.layout, high); err != nil {
		return err
	}
	if err := e.checkOrdering(varv, low, "low", target); err != nil {
		return err
	}
	if err := e.checkOrdering(varv, high, "high", target); err != nil {
		return err
	}
	if err := e.checkCanonical(low, high, target); err != nil {
		return err
	}

	if err := e.checkInvariantsRec(low, seen); err != nil {
		return err
	}
	return e.checkInvariantsRec(high, seen)
}

func checkZeroAbsorption(layout node.Layout, e node.Edge) error {
	if layout.Weight(e) == weight.Zero && layout.Target(e) != node.Terminal {
		return fmt.Errorf("evbdd: invariant 4 violated: zero-weight edge targets non-terminal node %d", layout.Target(e))
	}
	return nil
}

func (e *Engine) checkOrdering(parentVar uint32, child node.Edge, side string, at node.Handle) error {
	childTarget := e.layout.Target(child)
	if childTarget == node.Terminal {
		return nil
	}
	childVar, _, _, err := e.nt.Get(childTarget)
	if err != nil {
		return err
	}
	if parentVar >= childVar {
		return fmt.Errorf("evbdd: invariant 1 violated at node %d: var %d does not precede %s child var %d",
			at, parentVar, side, childVar)
	}
	return nil
}

func (e *Engine) checkCanonical(low, high node.Edge, at node.Handle) error {
	lowW, err := e.wt.Value(e.layout.Weight(low))
	if err != nil {
		return err
	}
	highW, err := e.wt.Value(e.layout.Weight(high))
	if err != nil {
		return err
	}

	if e.strat.Kind() == normalize.L2 {
		sum := weight.Sqr(lowW) + weight.Sqr(highW)
		if lowW.Im != 0 || lowW.Re < -e.cfg.Tolerance {
			return fmt.Errorf("evbdd: invariant 3 violated at node %d: L2 low weight %v is not real non-negative", at, lowW)
		}
		if diff := sum - 1; diff > 1e-9 || diff < -1e-9 {
			return fmt.Errorf("evbdd: invariant 3 violated at node %d: |low|^2+|high|^2 = %v, want 1", at, sum)
		}
		return nil
	}

	isReserved := func(c weight.Complex) bool {
		return weight.ApproxEq(c, weight.Complex{Re: 0}, e.cfg.Tolerance) || weight.ApproxEq(c, weight.Complex{Re: 1}, e.cfg.Tolerance)
	}
	if !isReserved(lowW) && !isReserved(highW) {
		return fmt.Errorf("evbdd: invariant 3 violated at node %d: neither child weight is 0 or 1 (low=%v, high=%v)", at, lowW, highW)
	}
	return nil
}
