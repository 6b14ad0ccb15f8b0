package evbdd

import "github.com/evbdd/qsim/node"

// topVar returns the variable level of edge's target, or node.NoVar if
// the target is Terminal — the "childvar of terminal is infinity"
// convention spec §3 invariant 1 relies on.
func (e *Engine) topVar(edge node.Edge) (uint32, error) {
	target := e.layout.Target(edge)
	if target == node.Terminal {
		return node.NoVar, nil
	}
	varv, _, _, err := e.nt.Get(target)
	return varv, err
}

func minVar(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
