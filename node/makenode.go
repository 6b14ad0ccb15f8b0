package node

import (
	"github.com/evbdd/qsim/normalize"
	"github.com/evbdd/qsim/weight"
)

// MakeNode is the engine's one canonical node constructor (spec §4.4). It
// enforces every invariant of spec §3: zero absorption, the reduction
// rule, weight canonicalization via strat, and unique-table insertion.
//
// On ErrTableFull (the node or weight table could not accept a new
// record), MakeNode returns the error without retrying. The single retry
// lives in the evbdd engine, which is the only component with enough
// context (all three tables, the reference registry) to run a GC cycle:
// it runs one GC and then recomputes the whole top-level operation from
// its protected operands.
func MakeNode(nt *Table, wt *weight.Table, strat normalize.Strategy, layout Layout, eps float64, varv uint32, low, high Edge) (Edge, error) {
	low = absorbZero(layout, low)
	high = absorbZero(layout, high)

	if low == high {
		return low, nil
	}

	lowTarget := layout.Target(low)
	highTarget := layout.Target(high)

	lowW, err := wt.Value(layout.Weight(low))
	if err != nil {
		return 0, err
	}
	highW, err := wt.Value(layout.Weight(high))
	if err != nil {
		return 0, err
	}

	lowOutC, highOutC, commonC := strat.Normalize(lowW, highW, eps)

	lowOutH, err := wt.Lookup(lowOutC)
	if err != nil {
		return 0, err
	}
	highOutH, err := wt.Lookup(highOutC)
	if err != nil {
		return 0, err
	}
	commonH, err := wt.Lookup(commonC)
	if err != nil {
		return 0, err
	}

	newLow := layout.MakeEdge(lowTarget, lowOutH)
	newHigh := layout.MakeEdge(highTarget, highOutH)
	newLow = absorbZero(layout, newLow)
	newHigh = absorbZero(layout, newHigh)

	h, _, err := nt.Lookup(varv, newLow, newHigh)
	if err != nil {
		return 0, err
	}

	return layout.MakeEdge(h, commonH), nil
}

// absorbZero enforces spec §3 invariant 4: an edge whose weight is
// weight.Zero always targets Terminal.
func absorbZero(layout Layout, e Edge) Edge {
	if layout.Weight(e) == weight.Zero {
		return layout.MakeEdge(Terminal, weight.Zero)
	}
	return e
}

// GetTopVar returns the decomposition of e at level wantedVar: either the
// node's real (var, low, high) — with e's own weight folded
// multiplicatively into both children — or, if e's target is Terminal or
// a node whose var has skipped past wantedVar (a don't-care variable),
// the synthetic decomposition (wantedVar, e, e) that lets callers
// uniformly descend one level at a time without materializing
// don't-care nodes (spec §4.4).
func GetTopVar(nt *Table, wt *weight.Table, layout Layout, e Edge, wantedVar uint32) (varOut uint32, lowOut, highOut Edge, err error) {
	target := layout.Target(e)
	if target == Terminal {
		return wantedVar, e, e, nil
	}

	nodeVar, low, high, err := nt.Get(target)
	if err != nil {
		return 0, 0, 0, err
	}
	if nodeVar > wantedVar {
		return wantedVar, e, e, nil
	}

	eW, err := wt.Value(layout.Weight(e))
	if err != nil {
		return 0, 0, 0, err
	}

	lowOut, err = foldWeight(wt, layout, low, eW)
	if err != nil {
		return 0, 0, 0, err
	}
	highOut, err = foldWeight(wt, layout, high, eW)
	if err != nil {
		return 0, 0, 0, err
	}
	return nodeVar, lowOut, highOut, nil
}

func foldWeight(wt *weight.Table, layout Layout, child Edge, outer weight.Complex) (Edge, error) {
	childW, err := wt.Value(layout.Weight(child))
	if err != nil {
		return 0, err
	}
	product := weight.Mul(outer, childW)
	h, err := wt.Lookup(product)
	if err != nil {
		return 0, err
	}
	return absorbZero(layout, layout.MakeEdge(layout.Target(child), h)), nil
}
