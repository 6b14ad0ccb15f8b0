package evbdd

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition violations, following the teacher's
// ErrXxx pattern (core.ErrNilVertex, core.ErrVertexNotFound, …).
var (
	// ErrInvalidEdge names the invalid-handle precondition violation
	// (spec §7 PreconditionViolated). No operation in this package
	// returns it: an edge whose handle does not name a live node or
	// weight surfaces as node.ErrInvalidHandle or weight.ErrInvalidHandle
	// from the table that rejected it.
	ErrInvalidEdge = errors.New("evbdd: invalid edge handle")

	// ErrVariableMismatch is returned by ProjectAndNormalize when the
	// outcome probability it is given is not positive (spec §7
	// PreconditionViolated). No operation compares operand variable
	// counts.
	ErrVariableMismatch = errors.New("evbdd: operand variable counts are incompatible")

	// ErrShutdown is returned by any diagram operation called after Shutdown.
	ErrShutdown = errors.New("evbdd: engine has been shut down")
)

// FatalKind names one of the two fatal error classes spec §7 defines.
// (NotImplemented/Unsupported belongs to an external collaborator — the
// gate-construction layer — and is never raised by this package.)
type FatalKind int

const (
	// CapacityExceeded: a table is still full at its configured maximum
	// size after a GC cycle rebuilt it. There is no local recovery.
	CapacityExceeded FatalKind = iota

	// NumericDomain: a normalization strategy attempted to divide by a
	// zero weight. Cannot arise when spec §3's invariants hold; a bug in
	// a normalization strategy if observed.
	NumericDomain
)

func (k FatalKind) String() string {
	switch k {
	case CapacityExceeded:
		return "CapacityExceeded"
	case NumericDomain:
		return "NumericDomain"
	default:
		return "Unknown"
	}
}

// FatalError models spec §7's "print the diagnostics and abort" errors
// as an ordinary Go error instead of calling panic/os.Exit directly, so
// callers (tests, the external CLI driver) decide how to surface it.
// Must converts one into the panic spec §7 prescribes verbatim.
type FatalError struct {
	Kind    FatalKind
	Table   string // which table was exhausted, e.g. "node", "weight"
	Entries int
	Capacity int
}

func (e *FatalError) Error() string {
	if e.Kind == CapacityExceeded {
		return fmt.Sprintf("evbdd: %s table exhausted at capacity (entries=%d, capacity=%d)",
			e.Table, e.Entries, e.Capacity)
	}
	return fmt.Sprintf("evbdd: numeric domain violation in %s", e.Table)
}

// Must panics with a diagnostic message if err is non-nil, otherwise
// returns value unmodified. It is the thin helper spec §7 calls for —
// callers that want the original "print and abort" behavior verbatim
// rather than propagating the error.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err.Error())
	}
	return value
}
