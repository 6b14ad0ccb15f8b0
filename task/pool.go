package task

import (
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/evbdd/qsim/node"
)

// Job is a unit of recursive work that produces one diagram edge.
type Job func() (node.Edge, error)

// Pool bounds how many Jobs run concurrently across the whole engine.
// It has no persistent worker goroutines of its own — see doc.go for why
// a fixed worker-per-goroutine pool doesn't suit recursive fork/join —
// only a semaphore that caps how many Spawn'd goroutines may be in
// flight at once.
type Pool struct {
	workers int
	sem     *semaphore.Weighted
}

// New returns a Pool that allows up to workers Jobs to run concurrently.
// workers <= 0 uses runtime.GOMAXPROCS(0). workers == 1 makes every
// Spawn run inline, i.e. fully sequential reference semantics.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers, sem: semaphore.NewWeighted(int64(workers))}
}

// NumWorkers reports the configured concurrency bound.
func (p *Pool) NumWorkers() int { return p.workers }

// Spawn runs job on a new goroutine if a concurrency slot is free,
// otherwise runs it inline on the calling goroutine and returns an
// already-completed Handle. The evbdd diagram algebra (Plus, MatVec,
// MatMat, Inner, Shift, ReplaceTerminal) calls Spawn for one branch and
// computes the other branch inline before calling Sync on the handle,
// which is the fork/join shape spec §4.9 names; ProbSum and the
// measurement walks recurse sequentially without Spawn.
func (p *Pool) Spawn(job Job) *Handle {
	if p.workers <= 1 || !p.sem.TryAcquire(1) {
		edge, err := job()
		return &Handle{edge: edge, err: err}
	}

	h := &Handle{}
	h.wg.Add(1)
	go func() {
		defer p.sem.Release(1)
		defer h.wg.Done()
		h.edge, h.err = job()
	}()
	return h
}

// Run computes a and b — in parallel when a slot is free, inline
// otherwise — and returns both results in order. This is the fork/join
// primitive itself: spawn a, compute b on the current goroutine, sync a.
func (p *Pool) Run(a, b Job) (edgeA, edgeB node.Edge, err error) {
	h := p.Spawn(a)
	edgeB, errB := b()
	edgeA, errA := h.Sync()
	if errA != nil {
		return 0, 0, errA
	}
	if errB != nil {
		return 0, 0, errB
	}
	return edgeA, edgeB, nil
}
