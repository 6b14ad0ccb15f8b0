package node

import "github.com/evbdd/qsim/weight"

// Handle is a small, stable integer identifying a unique node. Handle 0
// is never valid. Handle 1 is the reserved Terminal sink.
type Handle uint64

const (
	// Invalid is never a valid node handle.
	Invalid Handle = 0

	// Terminal is the single reserved sink node every edge eventually
	// targets.
	Terminal Handle = 1
)

// Edge packs a (weight.Handle, Handle) pair into one machine word, per
// spec §3. Two bitwise-equal Edge values always denote the same
// function; MakeNode's reduction rule and the unique-table's
// injectivity both rely on this.
type Edge uint64

// Layout describes one of the two supported (weight-bits, node-bits)
// splits of an Edge word (spec §3: "selected once at initialization and
// fixed thereafter"). One bit is always left unused.
type Layout struct {
	WeightBits uint
	NodeBits   uint
}

// Narrow is the 23-bit-weight / 40-bit-node layout (weight table <= 2^23).
var Narrow = Layout{WeightBits: 23, NodeBits: 40}

// Wide is the 33-bit-weight / 30-bit-node layout.
var Wide = Layout{WeightBits: 33, NodeBits: 30}

func (l Layout) weightMask() uint64 { return (uint64(1) << l.WeightBits) - 1 }
func (l Layout) nodeMask() uint64   { return (uint64(1) << l.NodeBits) - 1 }

// MaxWeightHandle returns the largest weight.Handle this layout can pack.
func (l Layout) MaxWeightHandle() weight.Handle { return weight.Handle(l.weightMask()) }

// MaxNodeHandle returns the largest Handle this layout can pack.
func (l Layout) MaxNodeHandle() Handle { return Handle(l.nodeMask()) }

// MakeEdge packs (n, w) into an Edge under this layout.
func (l Layout) MakeEdge(n Handle, w weight.Handle) Edge {
	return Edge((uint64(w) & l.weightMask()) | ((uint64(n) & l.nodeMask()) << l.WeightBits))
}

// Target extracts the node Handle half of e.
func (l Layout) Target(e Edge) Handle {
	return Handle((uint64(e) >> l.WeightBits) & l.nodeMask())
}

// Weight extracts the weight.Handle half of e.
func (l Layout) Weight(e Edge) weight.Handle {
	return weight.Handle(uint64(e) & l.weightMask())
}
