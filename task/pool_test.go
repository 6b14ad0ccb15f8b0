package task_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/task"
)

func TestSpawnSyncReturnsResult(t *testing.T) {
	p := task.New(4)
	h := p.Spawn(func() (node.Edge, error) { return node.Edge(42), nil })
	edge, err := h.Sync()
	require.NoError(t, err)
	require.Equal(t, node.Edge(42), edge)
}

func TestSpawnPropagatesError(t *testing.T) {
	p := task.New(4)
	wantErr := errors.New("boom")
	h := p.Spawn(func() (node.Edge, error) { return 0, wantErr })
	_, err := h.Sync()
	require.Equal(t, wantErr, err)
}

func TestSingleWorkerRunsInline(t *testing.T) {
	p := task.New(1)
	var ran atomic.Bool
	h := p.Spawn(func() (node.Edge, error) {
		ran.Store(true)
		return 1, nil
	})
	// Inline execution means the job has already run by the time Spawn
	// returns, before Sync is ever called.
	require.True(t, ran.Load())
	edge, err := h.Sync()
	require.NoError(t, err)
	require.Equal(t, node.Edge(1), edge)
}

func TestRunComputesBothBranches(t *testing.T) {
	p := task.New(4)
	a, b, err := p.Run(
		func() (node.Edge, error) { return 10, nil },
		func() (node.Edge, error) { return 20, nil },
	)
	require.NoError(t, err)
	require.Equal(t, node.Edge(10), a)
	require.Equal(t, node.Edge(20), b)
}

func TestDeepRecursionDoesNotDeadlock(t *testing.T) {
	p := task.New(2)

	var recur func(depth int) (node.Edge, error)
	recur = func(depth int) (node.Edge, error) {
		if depth == 0 {
			return 1, nil
		}
		a, b, err := p.Run(
			func() (node.Edge, error) { return recur(depth - 1) },
			func() (node.Edge, error) { return recur(depth - 1) },
		)
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}

	edge, err := recur(20)
	require.NoError(t, err)
	require.Equal(t, node.Edge(1<<20), edge)
}

func TestSyncIsIdempotent(t *testing.T) {
	p := task.New(4)
	h := p.Spawn(func() (node.Edge, error) { return 7, nil })
	e1, err1 := h.Sync()
	e2, err2 := h.Sync()
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, e1, e2)
}
