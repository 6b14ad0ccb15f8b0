package evbdd

import (
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/normalize"
)

// Documented defaults (spec §6), mirroring the teacher's convention of
// exposing every tunable default as a named constant rather than a
// magic number buried in a constructor.
const (
	DefaultNodeTableMin   = 1 << 12
	DefaultNodeTableMax   = 1 << 22
	DefaultWeightTableMin = 1 << 12
	DefaultWeightTableMax = 1 << 22
	DefaultOpCacheMin     = 1 << 14
	DefaultOpCacheMax     = 1 << 18
	DefaultTolerance      = 1e-14
	DefaultGCThreshold    = 0.5
	DefaultInverseCaching = true
	DefaultAutoGC         = true
)

// Config holds every tunable the engine exposes, assembled by New from
// functional Options the same way the teacher's core.NewGraph assembles
// a Graph from GraphOptions.
type Config struct {
	NodeTableMin, NodeTableMax     int
	WeightTableMin, WeightTableMax int
	OpCacheMin, OpCacheMax         int
	Tolerance                      float64
	Strategy                       normalize.Kind
	Layout                         node.Layout
	Workers                        int
	AutoGC                         bool
	GCThreshold                    float64
	InverseCaching                 bool
	CacheGranularity               int
	ReinitHook                     func()
	GCObserver                     func(GCStats)
}

func defaultConfig() Config {
	return Config{
		NodeTableMin:     DefaultNodeTableMin,
		NodeTableMax:     DefaultNodeTableMax,
		WeightTableMin:   DefaultWeightTableMin,
		WeightTableMax:   DefaultWeightTableMax,
		OpCacheMin:       DefaultOpCacheMin,
		OpCacheMax:       DefaultOpCacheMax,
		Tolerance:        DefaultTolerance,
		Strategy:         normalize.LOW,
		Layout:           node.Narrow,
		Workers:          0,
		AutoGC:           DefaultAutoGC,
		GCThreshold:      DefaultGCThreshold,
		InverseCaching:   DefaultInverseCaching,
		CacheGranularity: 0,
	}
}

// Option configures an Engine before construction.
type Option func(*Config)

// WithNodeTableSize sets the node unique-table's initial and maximum
// capacity (spec §6 init's node_tab_min/node_tab_max).
func WithNodeTableSize(min, max int) Option {
	return func(c *Config) { c.NodeTableMin, c.NodeTableMax = min, max }
}

// WithWeightTableSize sets the weight table's initial and maximum
// capacity.
func WithWeightTableSize(min, max int) Option {
	return func(c *Config) { c.WeightTableMin, c.WeightTableMax = min, max }
}

// WithOpCacheSize sets the operation cache's initial and maximum size.
func WithOpCacheSize(min, max int) Option {
	return func(c *Config) { c.OpCacheMin, c.OpCacheMax = min, max }
}

// WithTolerance sets the weight-interning tolerance ε (spec §3, default 1e-14).
func WithTolerance(eps float64) Option {
	return func(c *Config) { c.Tolerance = eps }
}

// WithNormalization selects one of the four canonicalization strategies
// (spec §4.5).
func WithNormalization(strategy normalize.Kind) Option {
	return func(c *Config) { c.Strategy = strategy }
}

// WithLayout selects the Edge bit-packing (node.Narrow or node.Wide),
// fixed for the lifetime of the engine (spec §3).
func WithLayout(layout node.Layout) Option {
	return func(c *Config) { c.Layout = layout }
}

// WithWorkers sets the number of parallel workers the task pool runs.
// WithWorkers(1) is the reference sequential semantics (spec §4.9).
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// WithAutoGC toggles automatic GC triggering after top-level operations
// (spec §6 set_auto_gc_weight_table, default on).
func WithAutoGC(enabled bool) Option {
	return func(c *Config) { c.AutoGC = enabled }
}

// WithGCThreshold sets the weight-table fill fraction that triggers an
// automatic GC (spec §6 set_gc_weight_table_threshold, default 0.5).
func WithGCThreshold(fraction float64) Option {
	return func(c *Config) { c.GCThreshold = fraction }
}

// WithInverseCaching sets Config.InverseCaching (default on). The flag
// is only stored: the engine does not memoize weight arithmetic in the
// operation cache, so no mirror div(c,a)=b / div(c,b)=a entries are
// written whichever way it is set.
func WithInverseCaching(enabled bool) Option {
	return func(c *Config) { c.InverseCaching = enabled }
}

// WithCacheGranularity sets g for "log every g-th op" (spec §6
// set_cache_granularity); purely an implementation hint with no semantic
// effect. The value is stored in Config; nothing in the engine reads it.
func WithCacheGranularity(g int) Option {
	return func(c *Config) { c.CacheGranularity = g }
}

// WithReinitHook installs the callback invoked after every GC cycle to
// reinstall process-wide gate-weight-table entries (spec §4.7 step 5,
// §9 Design Notes).
func WithReinitHook(hook func()) Option {
	return func(c *Config) { c.ReinitHook = hook }
}

// WithGCObserver installs a callback invoked with statistics after every
// GC cycle — the engine's substitute for a logging dependency (see
// DESIGN.md: no logging library appears anywhere in the retrieved pack).
func WithGCObserver(observer func(GCStats)) Option {
	return func(c *Config) { c.GCObserver = observer }
}

// validate panics on a programmer error in configuration, matching the
// teacher's "strong validation, panic on misuse" idiom (see e.g.
// matrix.Options' constructor checks) rather than returning an error a
// caller might silently ignore.
func (c Config) validate() {
	if c.NodeTableMin <= 0 || c.NodeTableMax < c.NodeTableMin {
		panic("evbdd: invalid node table size range")
	}
	if c.WeightTableMin <= 0 || c.WeightTableMax < c.WeightTableMin {
		panic("evbdd: invalid weight table size range")
	}
	if c.OpCacheMin <= 0 || c.OpCacheMax < c.OpCacheMin {
		panic("evbdd: invalid op cache size range")
	}
	if c.Tolerance <= 0 {
		panic("evbdd: tolerance must be positive")
	}
	if c.GCThreshold <= 0 || c.GCThreshold > 1 {
		panic("evbdd: GC threshold must be in (0, 1]")
	}
	if c.Layout.WeightBits == 0 || c.Layout.NodeBits == 0 {
		panic("evbdd: invalid edge layout")
	}
	// normalize.For panics on an unknown Kind, which is exactly the
	// "unknown strategy" programmer error this validation should catch.
	_ = normalize.For(c.Strategy)
}
