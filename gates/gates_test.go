package gates_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/evbdd"
	"github.com/evbdd/qsim/gates"
)

func newEngine(t *testing.T) *evbdd.Engine {
	t.Helper()
	return evbdd.New()
}

func TestApply1HadamardOnZeroIsUniform(t *testing.T) {
	e := newEngine(t)
	zero, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)

	h, ok := gates.MatrixFor(gates.H)
	require.True(t, ok)

	out, err := gates.Apply1(e, zero, 1, 0, h)
	require.NoError(t, err)

	v0, err := e.GetValue(out, []int{0})
	require.NoError(t, err)
	v1, err := e.GetValue(out, []int{1})
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	require.InDelta(t, inv, v0.Re, 1e-9)
	require.InDelta(t, inv, v1.Re, 1e-9)
}

func TestApplyControlledCXBuildsBellState(t *testing.T) {
	e := newEngine(t)
	state, err := e.MakeBasisState([]int{0, 0})
	require.NoError(t, err)

	hMat, ok := gates.MatrixFor(gates.H)
	require.True(t, ok)

	state, err = gates.Apply1(e, state, 2, 0, hMat)
	require.NoError(t, err)

	xMat, ok := gates.MatrixFor(gates.X)
	require.True(t, ok)
	state, err = gates.ApplyControlled(e, state, 2, 0, 1, xMat)
	require.NoError(t, err)

	v00, err := e.GetValue(state, []int{0, 0})
	require.NoError(t, err)
	v11, err := e.GetValue(state, []int{1, 1})
	require.NoError(t, err)
	v01, err := e.GetValue(state, []int{0, 1})
	require.NoError(t, err)
	v10, err := e.GetValue(state, []int{1, 0})
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	require.InDelta(t, inv, v00.Re, 1e-9)
	require.InDelta(t, inv, v11.Re, 1e-9)
	require.InDelta(t, 0, v01.Re, 1e-9)
	require.InDelta(t, 0, v10.Re, 1e-9)

	n, err := e.CountNodes(state)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestApplySwapExchangesBasisLabel(t *testing.T) {
	e := newEngine(t)
	state, err := e.MakeBasisState([]int{1, 0})
	require.NoError(t, err)

	state, err = gates.ApplySwap(e, state, 2, 0, 1)
	require.NoError(t, err)

	v01, err := e.GetValue(state, []int{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 1, v01.Re, 1e-9)
	require.InDelta(t, 0, v01.Im, 1e-9)
}

func TestApplySequenceBuildsGHZ(t *testing.T) {
	e := newEngine(t)
	state, err := e.MakeBasisState([]int{0, 0, 0})
	require.NoError(t, err)

	steps := []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.CX, Qubits: []int{0, 1}},
		{Gate: gates.CX, Qubits: []int{1, 2}},
	}
	state, err = gates.ApplySequence(e, state, 3, steps)
	require.NoError(t, err)

	v000, err := e.GetValue(state, []int{0, 0, 0})
	require.NoError(t, err)
	v111, err := e.GetValue(state, []int{1, 1, 1})
	require.NoError(t, err)
	v100, err := e.GetValue(state, []int{1, 0, 0})
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	require.InDelta(t, inv, v000.Re, 1e-9)
	require.InDelta(t, inv, v111.Re, 1e-9)
	require.InDelta(t, 0, v100.Re, 1e-9)

	sum, err := e.ProbSum(state, 0, 3)
	require.NoError(t, err)
	require.InDelta(t, 1, sum, 1e-9)
}

func TestApplySequenceUnknownGateErrors(t *testing.T) {
	e := newEngine(t)
	state, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)

	_, err = gates.ApplySequence(e, state, 1, []gates.Step{{Gate: gates.Name("bogus"), Qubits: []int{0}}})
	require.ErrorIs(t, err, gates.ErrUnknownGate)
}

func TestRegistryGetAndApply1(t *testing.T) {
	e := newEngine(t)
	reg, err := gates.NewRegistry(e)
	require.NoError(t, err)

	edge, ok := reg.Get(gates.H)
	require.True(t, ok)
	require.NotZero(t, edge)

	zero, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	out, err := reg.Apply1(zero, 1, 0, gates.H)
	require.NoError(t, err)

	v0, err := e.GetValue(out, []int{0})
	require.NoError(t, err)
	require.InDelta(t, 1/math.Sqrt2, v0.Re, 1e-9)
}

func TestRegistrySurvivesGC(t *testing.T) {
	e := evbdd.New(evbdd.WithAutoGC(false))
	reg, err := gates.NewRegistry(e)
	require.NoError(t, err)

	before, ok := reg.Get(gates.X)
	require.True(t, ok)

	require.NoError(t, e.GCNow())

	after, ok := reg.Get(gates.X)
	require.True(t, ok)
	require.NotZero(t, after)

	zero, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	out, err := reg.Apply1(zero, 1, 0, gates.X)
	require.NoError(t, err)
	v1, err := e.GetValue(out, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 1, v1.Re, 1e-9)

	_ = before
}

func TestRegistryUnknownGateErrors(t *testing.T) {
	e := newEngine(t)
	reg, err := gates.NewRegistry(e)
	require.NoError(t, err)

	_, ok := reg.Get(gates.Name("bogus"))
	require.False(t, ok)

	zero, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	_, err = reg.Apply1(zero, 1, 0, gates.Name("bogus"))
	require.ErrorIs(t, err, gates.ErrUnknownGate)
}
