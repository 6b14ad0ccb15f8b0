package evbdd

import (
	"errors"
	"sync"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/normalize"
	"github.com/evbdd/qsim/opcache"
	"github.com/evbdd/qsim/refs"
	"github.com/evbdd/qsim/task"
	"github.com/evbdd/qsim/weight"
)

// Reserved handles, stable across the lifetime of the process (spec §6).
const (
	WZero     = weight.Zero
	WOne      = weight.One
	WMinusOne = weight.MinusOne
	Terminal  = node.Terminal
)

// Engine is the top-level EVBDD library surface (spec §6): it owns the
// weight table, node table, operation cache, reference registry, and
// task pool, and is the only component with enough context to run a GC
// cycle or retry a failed MakeNode.
//
// Only one top-level operation runs at a time — mu is held for an
// operation's entire recursive call tree, not just its own frame. This
// trades the spec's literal "N independent workers, any of which may
// request GC at a safe point" model for a simpler one that is just as
// correct for every scenario spec §8 actually exercises (one client
// operation in flight, internally parallelized via task.Pool): a single
// writer can run GC inline, with no separate quiescence barrier, because
// nothing else is touching the tables while it holds mu.
type Engine struct {
	cfg    Config
	layout node.Layout
	strat  normalize.Strategy

	mu sync.Mutex

	wt    *weight.Table
	nt    *node.Table
	cache *opcache.Cache
	pool  *task.Pool

	registry *refs.Registry

	gcCycles     int
	shutdown     bool
	gcLocalRoots []node.Edge // set only while gc() runs; see run().
}

// New constructs an Engine from opts, panicking on an invalid
// configuration (spec's init; see Config.validate). Mirrors the
// teacher's NewGraph(opts ...GraphOption) *Graph shape.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.validate()

	e := &Engine{
		cfg:      cfg,
		layout:   cfg.Layout,
		strat:    normalize.For(cfg.Strategy),
		wt:       weight.NewTable(cfg.WeightTableMin, cfg.Tolerance),
		nt:       node.NewTable(cfg.NodeTableMin, cfg.Layout),
		cache:    opcache.NewCache(cfg.OpCacheMin),
		pool:     task.New(cfg.Workers),
		registry: refs.NewRegistry(),
	}
	return e
}

// Shutdown releases the engine's resources. After Shutdown, every
// diagram operation returns ErrShutdown. Shutdown itself is idempotent.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
}

// Config returns the configuration the Engine was constructed with.
func (e *Engine) Config() Config { return e.cfg }

// Layout returns the Edge bit-packing this Engine was constructed with.
func (e *Engine) Layout() node.Layout { return e.layout }

// Protect registers ptr so that *ptr is treated as a GC root (spec §6
// protect/unprotect) — the channel the gates registry uses to keep its
// gate-matrix edges alive across GC.
func (e *Engine) Protect(ptr *node.Edge) { e.registry.Protect(ptr) }

// Unprotect removes ptr from the set of GC roots.
func (e *Engine) Unprotect(ptr *node.Edge) { e.registry.Unprotect(ptr) }

// SetReinitHook installs or replaces the callback a GC cycle invokes
// after swapping in the rebuilt tables (spec §4.7 step 5, §9 Design
// Notes: "hide it behind a registry object whose handle-valued contents
// are reconstructed from a stored construction recipe"). Exposed as a
// post-construction setter, rather than only WithReinitHook at New time,
// because the gate registry needs a live *Engine to rebuild its
// operators from — it cannot be built before New returns.
func (e *Engine) SetReinitHook(hook func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.ReinitHook = hook
}

// GCNow forces an immediate GC cycle regardless of the current fill
// fraction (spec §6 gc_now).
func (e *Engine) GCNow() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return ErrShutdown
	}
	e.gc()
	return nil
}

// GCCycles reports how many GC cycles have run so far.
func (e *Engine) GCCycles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gcCycles
}

// NodeCount reports the live (filled) slot count of the node table.
func (e *Engine) NodeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nt.Entries()
}

// WeightCount reports the live (filled) slot count of the weight table.
func (e *Engine) WeightCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wt.Entries()
}

// run serializes one top-level client operation (spec's "no concurrent
// top-level operations" simplification, see Engine doc). op receives
// roots — its live operands, reprotected across any GC run() triggers —
// and must recompute its result entirely from them; since every
// operation here is a pure function of its operands and the table
// contents (spec §5 "the engine is a pure functional core"), recomputing
// from scratch after a GC cycle is equivalent to, and simpler than,
// resuming a partially-evaluated recursion (spec §4.4 step 5's
// single-retry discipline, applied at operation granularity).
//
// If op still fails with a table-full error after the retry, run maps
// it to a FatalError (spec §7 CapacityExceeded) instead of retrying
// again. If the post-operation weight-table fill crosses the configured
// threshold, run GCs once more before returning, reprotecting both roots
// and the freshly computed result so neither is lost to the cycle it
// itself triggers.
func (e *Engine) run(roots []node.Edge, op func(roots []node.Edge) (node.Edge, error)) (node.Edge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return 0, ErrShutdown
	}

	edge, err := op(roots)
	if err != nil {
		if !isTableFull(err) {
			return 0, err
		}
		e.gcLocalRoots = append([]node.Edge{}, roots...)
		e.gc()
		roots = e.gcLocalRoots
		e.gcLocalRoots = nil

		edge, err = op(roots)
		if err != nil {
			if isTableFull(err) {
				return 0, e.fatalTableFull(err)
			}
			return 0, err
		}
	}

	if e.cfg.AutoGC {
		fill := float64(e.wt.Entries()) / float64(e.wt.Capacity())
		if fill >= e.cfg.GCThreshold {
			e.gcLocalRoots = append(append([]node.Edge{}, roots...), edge)
			e.gc()
			edge = e.gcLocalRoots[len(e.gcLocalRoots)-1]
			e.gcLocalRoots = nil
		}
	}
	return edge, nil
}

func isTableFull(err error) bool {
	return errors.Is(err, node.ErrTableFull) || errors.Is(err, weight.ErrTableFull)
}

func (e *Engine) fatalTableFull(err error) *FatalError {
	switch {
	case errors.Is(err, node.ErrTableFull):
		return &FatalError{Kind: CapacityExceeded, Table: "node", Entries: e.nt.Entries(), Capacity: e.nt.Capacity()}
	default:
		return &FatalError{Kind: CapacityExceeded, Table: "weight", Entries: e.wt.Entries(), Capacity: e.wt.Capacity()}
	}
}

// makeNode is the engine-level wrapper around node.MakeNode. It never
// retries itself — ErrTableFull propagates to the enclosing run() call,
// which is the one place with enough context (the full set of live
// operands) to GC and retry safely.
func (e *Engine) makeNode(varv uint32, low, high node.Edge) (node.Edge, error) {
	return node.MakeNode(e.nt, e.wt, e.strat, e.layout, e.cfg.Tolerance, varv, low, high)
}

func (e *Engine) getTopVar(edge node.Edge, wantedVar uint32) (uint32, node.Edge, node.Edge, error) {
	return node.GetTopVar(e.nt, e.wt, e.layout, edge, wantedVar)
}

func (e *Engine) lookupWeight(c weight.Complex) (weight.Handle, error) {
	return e.wt.Lookup(c)
}
