package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/weight"
)

// GCStats summarizes one completed GC cycle, passed to a caller-supplied
// WithGCObserver hook — the engine's substitute for the one place the
// original source logs (spec §4.7, §9 Design Notes; see DESIGN.md for
// why no logging library is introduced).
type GCStats struct {
	Cycle             int
	OldWeightCapacity int
	NewWeightCapacity int
	OldNodeCapacity   int
	NewNodeCapacity   int
	LiveNodes         int
}

// gc runs one stop-the-world GC cycle (spec §4.7). Callers must already
// hold mu; e.gcLocalRoots (if set) names edges that must survive even
// though they are not yet reachable through the persistent registry —
// the operands and in-flight result of the run() call triggering this
// cycle.
//
// Unlike spec's literal two-pass description (clear marks, mark phase,
// then a separate rebuild-and-relocate pass), this implementation
// collapses both passes into one memoized recursive relocate: visiting
// an edge for the first time is the mark, and immediately produces its
// relocated replacement, so a node already requires its children's new
// handles to exist before it can be repacked — exactly the post-order
// spec's two-pass walk would also have to establish. Both give identical
// results (spec §4.7's correctness requirement — eval(E) ≡ eval(E') for
// every live root — cares nothing about handle stability or pass count)
// and this one is the natural shape for a DAG in a language with map
// literals and recursion as cheap as Go's. node.Table's ClearMarks/Mark/
// CountMarked still run, purely for the LiveNodes statistic in GCStats.
func (e *Engine) gc() {
	oldWT, oldNT := e.wt, e.nt

	newWeightCap := oldWT.Capacity() * 2
	if newWeightCap > e.cfg.WeightTableMax {
		newWeightCap = e.cfg.WeightTableMax
	}
	newNodeCap := oldNT.Capacity() * 2
	if newNodeCap > e.cfg.NodeTableMax {
		newNodeCap = e.cfg.NodeTableMax
	}

	newWT := weight.NewTable(newWeightCap, e.cfg.Tolerance)
	newNT := node.NewTable(newNodeCap, e.layout)

	oldNT.ClearMarks()

	memo := make(map[node.Edge]node.Edge)
	var relocate func(node.Edge) node.Edge
	relocate = func(e_ node.Edge) node.Edge {
		if v, ok := memo[e_]; ok {
			return v
		}

		target := e.layout.Target(e_)
		newW, err := newWT.Relocate(oldWT, e.layout.Weight(e_))
		if err != nil {
			// e_'s weight handle does not exist in the table it claims to
			// come from. Every edge the engine hands out is built from a
			// handle that table issued, so this can only mean a caller
			// handed GC a corrupted edge — a programmer error, not a
			// recoverable runtime condition.
			panic("evbdd: gc: " + err.Error())
		}

		if target == node.Terminal {
			result := e.layout.MakeEdge(node.Terminal, newW)
			memo[e_] = result
			return result
		}

		oldNT.Mark(target)
		varv, low, high, err := oldNT.Get(target)
		if err != nil {
			panic("evbdd: gc: " + err.Error())
		}

		newLow := relocate(low)
		newHigh := relocate(high)
		newTarget, _, err := newNT.Lookup(varv, newLow, newHigh)
		if err != nil {
			// newNT was sized at 2x the old table and holds at most as
			// many distinct nodes as were live in the old one, so this
			// would mean the growth factor itself is insufficient — a
			// configuration problem, surfaced like any other capacity
			// exhaustion.
			panic("evbdd: gc: " + err.Error())
		}

		result := e.layout.MakeEdge(newTarget, newW)
		memo[e_] = result
		return result
	}

	for _, ptr := range e.registry.Pointers() {
		*ptr = relocate(*ptr)
	}
	for i, root := range e.gcLocalRoots {
		e.gcLocalRoots[i] = relocate(root)
	}

	liveNodes := oldNT.CountMarked()

	e.wt = newWT
	e.nt = newNT
	e.cache.Clear()

	if e.cfg.ReinitHook != nil {
		e.cfg.ReinitHook()
	}

	e.gcCycles++
	if e.cfg.GCObserver != nil {
		e.cfg.GCObserver(GCStats{
			Cycle:             e.gcCycles,
			OldWeightCapacity: oldWT.Capacity(),
			NewWeightCapacity: newWT.Capacity(),
			OldNodeCapacity:   oldNT.Capacity(),
			NewNodeCapacity:   newNT.Capacity(),
			LiveNodes:         liveNodes,
		})
	}
}
