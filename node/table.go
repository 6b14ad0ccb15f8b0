package node

import (
	"errors"
	"math/bits"
	"runtime"
	"sync/atomic"
)

// ErrTableFull is returned by Table.Lookup when no slot could be
// claimed for a new (var, low, high) record.
var ErrTableFull = errors.New("node: table full")

// ErrInvalidHandle is returned by Table.Get when h does not name a
// filled slot.
var ErrInvalidHandle = errors.New("node: invalid handle")

const (
	slotEmpty int32 = iota
	slotWriting
	slotFilled
)

type nodeSlot struct {
	state atomic.Int32
	mark  atomic.Bool
	varv  atomic.Uint32
	low   atomic.Uint64
	high  atomic.Uint64
}

// Table is the engine's node unique-table (C3): a single fixed-capacity,
// open-addressed, concurrent hash table from (var, lowEdge, highEdge)
// records to stable Handles. Handle 1 (Terminal) is reserved and
// installed at construction; handle 0 is never allocated.
type Table struct {
	layout Layout
	slots  []nodeSlot
	count  atomic.Uint32
}

// NewTable allocates a Table of the given capacity (at least 2, for the
// unused handle 0 and the reserved Terminal at handle 1) under layout.
func NewTable(capacity int, layout Layout) *Table {
	if capacity < 2 {
		capacity = 2
	}
	t := &Table{layout: layout, slots: make([]nodeSlot, capacity)}
	t.slots[Terminal].varv.Store(maxVar)
	t.slots[Terminal].state.Store(slotFilled)
	t.count.Store(1)
	return t
}

// maxVar is the sentinel "variable" of the Terminal node: every real
// variable index is strictly less than it, satisfying the ordering
// invariant's "childvar of terminal is infinity" clause.
const maxVar = ^uint32(0)

// NoVar is maxVar exported for callers outside this package that need
// to compare a real variable index against "the terminal's variable is
// infinity" (e.g. evbdd's topVar helper, used to pick min(topvar(a),
// topvar(b)) before a recursive descent).
const NoVar = maxVar

// Layout returns the Edge packing this table was constructed with.
func (t *Table) Layout() Layout { return t.layout }

// Capacity returns the total number of slots, including handles 0 and 1.
func (t *Table) Capacity() int { return len(t.slots) }

// Entries returns the number of currently filled slots (including Terminal).
func (t *Table) Entries() int { return int(t.count.Load()) }

// Free returns the number of unfilled slots remaining.
func (t *Table) Free() int { return t.Capacity() - t.Entries() }

// Get returns the (var, low, high) record stored at h.
func (t *Table) Get(h Handle) (varv uint32, low, high Edge, err error) {
	if h == Invalid || int(h) >= len(t.slots) {
		return 0, 0, 0, ErrInvalidHandle
	}
	s := &t.slots[h]
	if s.state.Load() != slotFilled {
		return 0, 0, 0, ErrInvalidHandle
	}
	return s.varv.Load(), Edge(s.low.Load()), Edge(s.high.Load()), nil
}

// Lookup finds or inserts the node record (varv, low, high), returning
// its Handle and whether it was newly created. Concurrent inserts of an
// identical record converge to a single handle and exactly one of them
// reports created == true.
func (t *Table) Lookup(varv uint32, low, high Edge) (h Handle, created bool, err error) {
	n := uint32(len(t.slots))
	start := t.bucket(varv, low, high) % n
outer:
	for i := uint32(0); i < n; i++ {
		idx := (start + i) % n
		if idx == uint32(Invalid) || idx == uint32(Terminal) {
			continue
		}
		s := &t.slots[idx]

		// Re-examine idx, not the next probe slot, until it resolves;
		// see weight.Table.Lookup for why a CAS loser must not advance
		// the probe past a slot another writer is still filling.
		for {
			switch s.state.Load() {
			case slotFilled:
				if s.varv.Load() == varv && Edge(s.low.Load()) == low && Edge(s.high.Load()) == high {
					return Handle(idx), false, nil
				}
				continue outer
			case slotEmpty:
				if s.state.CompareAndSwap(slotEmpty, slotWriting) {
					s.varv.Store(varv)
					s.low.Store(uint64(low))
					s.high.Store(uint64(high))
					s.mark.Store(false)
					s.state.Store(slotFilled)
					t.count.Add(1)
					return Handle(idx), true, nil
				}
				runtime.Gosched()
			case slotWriting:
				runtime.Gosched()
			}
		}
	}
	return Invalid, false, ErrTableFull
}

// ClearMarks resets the two-colour mark bit on every slot, the first
// step of a GC mark phase (spec §4.7 step 2).
func (t *Table) ClearMarks() {
	for i := range t.slots {
		t.slots[i].mark.Store(false)
	}
}

// Mark sets the mark bit on h. Safe to call redundantly (GC's DFS visits
// shared subdiagrams more than once).
func (t *Table) Mark(h Handle) {
	if h == Invalid || int(h) >= len(t.slots) {
		return
	}
	t.slots[h].mark.Store(true)
}

// IsMarked reports whether h is currently marked.
func (t *Table) IsMarked(h Handle) bool {
	if h == Invalid || int(h) >= len(t.slots) {
		return false
	}
	return t.slots[h].mark.Load()
}

// CountMarked returns the number of currently marked slots.
func (t *Table) CountMarked() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].mark.Load() {
			n++
		}
	}
	return n
}

// Rebuild allocates a fresh Table at newCapacity under the same layout.
// As with weight.Table.Rebuild, no entries are copied; the caller
// relocates live nodes explicitly during GC.
func (t *Table) Rebuild(newCapacity int) *Table {
	return NewTable(newCapacity, t.layout)
}

func (t *Table) bucket(varv uint32, low, high Edge) uint32 {
	h := fnv1a64(uint64(varv))
	h = fnv1aCombine64(h, uint64(low))
	h = fnv1aCombine64(h, uint64(high))
	return uint32(h)
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func fnv1a64(v uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}

func fnv1aCombine64(h, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return bits.RotateLeft64(h, 13)
}
