package weight

import (
	"errors"
	"math"
	"math/bits"
	"runtime"
	"sync/atomic"
)

// Handle is a small, stable integer identifying an interned Complex
// value. Handle values are never negative and below HandleCount are
// permanently reserved.
type Handle uint32

// Reserved handles, installed at the same numeric value by NewTable and
// by every subsequent Rebuild (spec §3, §4.2, §4.9 Design Notes).
const (
	Zero     Handle = 0
	One      Handle = 1
	MinusOne Handle = 2

	// HandleCount is the number of reserved handles occupying the head
	// of every table.
	HandleCount = 3
)

// ErrTableFull is returned by Lookup when no slot could be claimed for
// a new value after a full probe of the table. Callers (node.MakeNode,
// evbdd's GC orchestration) are responsible for rebuilding at a larger
// capacity and retrying — the table itself never silently duplicates or
// blocks.
var ErrTableFull = errors.New("weight: table full")

// ErrInvalidHandle is returned by Value when h does not name a filled
// slot in the table (out-of-range, or not yet written).
var ErrInvalidHandle = errors.New("weight: invalid handle")

const (
	slotEmpty int32 = iota
	slotWriting
	slotFilled
)

// slot is one entry of the table. state gates visibility of reBits/imBits
// to readers: a value is only trusted once state == slotFilled, which is
// published with a Store after the payload bits are written (a simple
// software seqlock/publication pattern, per spec §4.2's "fixed-capacity
// open-addressed table with linear probing and a seqlock per slot").
type slot struct {
	state  atomic.Int32
	reBits atomic.Uint64
	imBits atomic.Uint64
}

// Table is the engine's weight-interning table (C2): a fixed-capacity,
// concurrent map from Complex values to stable Handles under a
// configured tolerance. Table is safe for concurrent Lookup/Value calls
// from any number of goroutines; it never mutates capacity in place —
// growth happens by constructing a new Table via Rebuild and relocating
// live handles into it (spec §4.7 GC step 1).
type Table struct {
	slots []slot
	count atomic.Uint32
	eps   float64
}

// NewTable allocates a Table of the given capacity (must be at least
// HandleCount) and installs the three reserved handles.
func NewTable(capacity int, eps float64) *Table {
	if capacity < HandleCount {
		capacity = HandleCount
	}
	t := &Table{
		slots: make([]slot, capacity),
		eps:   eps,
	}
	t.installReserved()
	return t
}

func (t *Table) installReserved() {
	t.forceFill(Zero, Complex{Re: 0, Im: 0})
	t.forceFill(One, Complex{Re: 1, Im: 0})
	t.forceFill(MinusOne, Complex{Re: -1, Im: 0})
	t.count.Store(HandleCount)
}

func (t *Table) forceFill(h Handle, c Complex) {
	s := &t.slots[h]
	s.reBits.Store(math.Float64bits(c.Re))
	s.imBits.Store(math.Float64bits(c.Im))
	s.state.Store(slotFilled)
}

// Capacity returns the total number of slots in the table.
func (t *Table) Capacity() int { return len(t.slots) }

// Entries returns the number of currently filled slots, including the
// three reserved handles.
func (t *Table) Entries() int { return int(t.count.Load()) }

// Free returns the number of unfilled slots remaining.
func (t *Table) Free() int { return t.Capacity() - t.Entries() }

// Eps returns the tolerance this table interns under.
func (t *Table) Eps() float64 { return t.eps }

// Value retrieves the exact stored value for h (no tolerance applied).
func (t *Table) Value(h Handle) (Complex, error) {
	if int(h) < 0 || int(h) >= len(t.slots) {
		return Complex{}, ErrInvalidHandle
	}
	s := &t.slots[h]
	if s.state.Load() != slotFilled {
		return Complex{}, ErrInvalidHandle
	}
	return Complex{
		Re: math.Float64frombits(s.reBits.Load()),
		Im: math.Float64frombits(s.imBits.Load()),
	}, nil
}

// Lookup returns the handle of an existing entry that is tolerance-equal
// to c, or interns c and returns a fresh handle. Canonical representatives
// for 0, 1, -1 are always the reserved handles. Returns ErrTableFull if
// no slot could be claimed for a genuinely new value.
func (t *Table) Lookup(c Complex) (Handle, error) {
	if ApproxEq(c, Complex{Re: 0, Im: 0}, t.eps) {
		return Zero, nil
	}
	if ApproxEq(c, Complex{Re: 1, Im: 0}, t.eps) {
		return One, nil
	}
	if ApproxEq(c, Complex{Re: -1, Im: 0}, t.eps) {
		return MinusOne, nil
	}

	n := uint32(len(t.slots))
	start := t.bucket(c) % n
outer:
	for i := uint32(0); i < n; i++ {
		idx := (start + i) % n
		if idx < HandleCount {
			continue // reserved slots are never probe targets for new values
		}
		s := &t.slots[idx]

		// Re-examine idx, not the next probe slot, until it resolves to
		// either a value we can compare or a slot we win the CAS on: a
		// CAS loser that advanced the probe instead would intern a second
		// handle for the same logical value the winner is mid-writing,
		// breaking the "concurrent inserts converge to one handle"
		// invariant (spec §3 invariant 5 / §4.3, §9).
		for {
			switch s.state.Load() {
			case slotFilled:
				existing := Complex{
					Re: math.Float64frombits(s.reBits.Load()),
					Im: math.Float64frombits(s.imBits.Load()),
				}
				if ApproxEq(existing, c, t.eps) {
					return Handle(idx), nil
				}
				continue outer
			case slotEmpty:
				if s.state.CompareAndSwap(slotEmpty, slotWriting) {
					s.reBits.Store(math.Float64bits(c.Re))
					s.imBits.Store(math.Float64bits(c.Im))
					s.state.Store(slotFilled)
					t.count.Add(1)
					return Handle(idx), nil
				}
				// Lost the race; another writer claimed this slot.
				// Spin and re-read rather than advancing the probe.
				runtime.Gosched()
			case slotWriting:
				// Another goroutine is mid-insert at this slot; wait for
				// it to publish before deciding whether idx is our match.
				runtime.Gosched()
			}
		}
	}
	return 0, ErrTableFull
}

// Rebuild allocates a fresh table at newCapacity and installs the
// reserved handles at the same numeric values. It does not copy any
// other entries — the caller (evbdd's GC orchestration) relocates live
// handles explicitly via Relocate, per spec §4.7 step 1.
func (t *Table) Rebuild(newCapacity int) *Table {
	return NewTable(newCapacity, t.eps)
}

// Relocate looks up the value stored at h in src and interns it into t,
// returning t's handle for the same logical value. Used during GC to
// move live weights from the old table to the new one (spec §4.7 step
// 3b). Reserved handles relocate to themselves without consulting src.
func (t *Table) Relocate(src *Table, h Handle) (Handle, error) {
	if h == Zero || h == One || h == MinusOne {
		return h, nil
	}
	c, err := src.Value(h)
	if err != nil {
		return 0, err
	}
	return t.Lookup(c)
}

// bucket computes a deterministic probe-start index from c, quantized to
// the table's tolerance so that tolerance-equal values land in the same
// neighborhood (spec §4.2: "two values collide in a slot iff both
// components lie within eps").
func (t *Table) bucket(c Complex) uint32 {
	rq := quantize(c.Re, t.eps)
	iq := quantize(c.Im, t.eps)
	h := fnv1a(uint64(rq))
	h = fnv1aCombine(h, uint64(iq))
	return uint32(h)
}

func quantize(f, eps float64) int64 {
	if eps <= 0 {
		eps = 1e-14
	}
	return int64(math.Round(f / eps))
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnv1a(v uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}

func fnv1aCombine(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return bits.RotateLeft64(h, 17)
}
