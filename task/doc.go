// Package task implements the fork/join parallel runtime shim spec §4.9
// assumes underneath every recursive diagram algorithm: spawn one
// branch, compute the other on the calling goroutine, then sync.
//
// Pool is grounded on the persistent worker pool pattern in
// github.com/janpfeifer-go-highway's hwy/contrib/workerpool package,
// adapted from data-parallel ParallelFor to recursive fork/join: instead
// of a fixed set of goroutines draining a work channel (which would
// deadlock a fork/join recursion deeper than the pool's worker count,
// since every frame wants a worker while holding one), Spawn bounds
// concurrency with a semaphore and falls back to running inline on the
// calling goroutine when no slot is free. A Pool built with one worker
// runs every Spawn inline, which is the reference sequential semantics
// spec §8 requires the parallel algorithms to agree with bit-for-bit.
package task
