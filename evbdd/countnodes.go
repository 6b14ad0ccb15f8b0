package evbdd

import "github.com/evbdd/qsim/node"

// CountNodes returns the number of distinct internal nodes reachable
// from a, visiting each node handle at most once (spec §4.8.10).
func (e *Engine) CountNodes(a node.Edge) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return 0, ErrShutdown
	}

	seen := make(map[node.Handle]struct{})
	var walk func(node.Edge) error
	walk = func(edge node.Edge) error {
		target := e.layout.Target(edge)
		if target == node.Terminal {
			return nil
		}
		if _, ok := seen[target]; ok {
			return nil
		}
		seen[target] = struct{}{}

		_, low, high, err := e.nt.Get(target)
		if err != nil {
			return err
		}
		if err := walk(low); err != nil {
			return err
		}
		return walk(high)
	}

	if err := walk(a); err != nil {
		return 0, err
	}
	return len(seen), nil
}
