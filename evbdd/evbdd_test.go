package evbdd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/evbdd"
	"github.com/evbdd/qsim/gates"
	"github.com/evbdd/qsim/node"
	"github.com/evbdd/qsim/normalize"
	"github.com/evbdd/qsim/weight"
)

func bellState(t *testing.T, e *evbdd.Engine) node.Edge {
	t.Helper()
	state, err := e.MakeBasisState([]int{0, 0})
	require.NoError(t, err)
	steps := []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.CX, Qubits: []int{0, 1}},
	}
	state, err = gates.ApplySequence(e, state, 2, steps)
	require.NoError(t, err)
	return state
}

func TestBellStateAmplitudesAndInvariants(t *testing.T) {
	e := evbdd.New()
	state := bellState(t, e)

	inv := 1 / math.Sqrt2
	v00, err := e.GetValue(state, []int{0, 0})
	require.NoError(t, err)
	v11, err := e.GetValue(state, []int{1, 1})
	require.NoError(t, err)
	v01, err := e.GetValue(state, []int{0, 1})
	require.NoError(t, err)

	require.InDelta(t, inv, v00.Re, 1e-9)
	require.InDelta(t, inv, v11.Re, 1e-9)
	require.InDelta(t, 0, v01.Re, 1e-9)

	sum, err := e.ProbSum(state, 0, 2)
	require.NoError(t, err)
	require.InDelta(t, 1, sum, 1e-9)

	require.NoError(t, e.CheckInvariants(state))

	n, err := e.CountNodes(state)
	require.NoError(t, err)
	require.Greater(t, n, 0)
}

func TestBellStateInvariantsUnderEveryNormalization(t *testing.T) {
	for _, kind := range []normalize.Kind{normalize.LOW, normalize.MAX, normalize.MIN, normalize.L2} {
		t.Run(kind.String(), func(t *testing.T) {
			e := evbdd.New(evbdd.WithNormalization(kind))
			state := bellState(t, e)
			require.NoError(t, e.CheckInvariants(state))

			v00, err := e.GetValue(state, []int{0, 0})
			require.NoError(t, err)
			require.InDelta(t, 1/math.Sqrt2, v00.Re, 1e-9)
		})
	}
}

func TestGHZ3AmplitudesAndInvariants(t *testing.T) {
	e := evbdd.New()
	state, err := e.MakeBasisState([]int{0, 0, 0})
	require.NoError(t, err)

	steps := []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.CX, Qubits: []int{0, 1}},
		{Gate: gates.CX, Qubits: []int{1, 2}},
	}
	state, err = gates.ApplySequence(e, state, 3, steps)
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	v000, err := e.GetValue(state, []int{0, 0, 0})
	require.NoError(t, err)
	v111, err := e.GetValue(state, []int{1, 1, 1})
	require.NoError(t, err)
	v010, err := e.GetValue(state, []int{0, 1, 0})
	require.NoError(t, err)

	require.InDelta(t, inv, v000.Re, 1e-9)
	require.InDelta(t, inv, v111.Re, 1e-9)
	require.InDelta(t, 0, v010.Re, 1e-9)

	require.NoError(t, e.CheckInvariants(state))
}

func TestPauliIdentitiesViaApplySequence(t *testing.T) {
	e := evbdd.New()

	state, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.X, Qubits: []int{0}},
		{Gate: gates.X, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v0, err := e.GetValue(state, []int{0})
	require.NoError(t, err)
	require.InDelta(t, 1, v0.Re, 1e-9)

	state, err = e.MakeBasisState([]int{0})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.H, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v0, err = e.GetValue(state, []int{0})
	require.NoError(t, err)
	require.InDelta(t, 1, v0.Re, 1e-9)

	state, err = e.MakeBasisState([]int{1})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.S, Qubits: []int{0}},
		{Gate: gates.S, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v1, err := e.GetValue(state, []int{1})
	require.NoError(t, err)
	require.InDelta(t, -1, v1.Re, 1e-9)
	require.InDelta(t, 0, v1.Im, 1e-9)

	state, err = e.MakeBasisState([]int{1})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.T, Qubits: []int{0}},
		{Gate: gates.T, Qubits: []int{0}},
		{Gate: gates.T, Qubits: []int{0}},
		{Gate: gates.T, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v1, err = e.GetValue(state, []int{1})
	require.NoError(t, err)
	require.InDelta(t, -1, v1.Re, 1e-9)
}

func TestInterferenceHZH(t *testing.T) {
	e := evbdd.New()

	state, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.H, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v0, err := e.GetValue(state, []int{0})
	require.NoError(t, err)
	v1, err := e.GetValue(state, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 1, v0.Re, 1e-9)
	require.InDelta(t, 0, v1.Re, 1e-9)

	state, err = e.MakeBasisState([]int{0})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.Z, Qubits: []int{0}},
		{Gate: gates.H, Qubits: []int{0}},
	})
	require.NoError(t, err)
	v0, err = e.GetValue(state, []int{0})
	require.NoError(t, err)
	v1, err = e.GetValue(state, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 0, v0.Re, 1e-9)
	require.InDelta(t, 1, v1.Re, 1e-9)
}

func TestMeasurementOnBellState(t *testing.T) {
	e := evbdd.New()
	state := bellState(t, e)

	p0, err := e.ProbQubit0(state, 0, 2)
	require.NoError(t, err)
	require.InDelta(t, 0.5, p0, 1e-9)

	projected, err := e.ProjectAndNormalize(state, 0, 0, p0, 2)
	require.NoError(t, err)

	v00, err := e.GetValue(projected, []int{0, 0})
	require.NoError(t, err)
	v11, err := e.GetValue(projected, []int{1, 1})
	require.NoError(t, err)
	require.InDelta(t, 1, v00.Re, 1e-9)
	require.InDelta(t, 0, v11.Re, 1e-9)

	require.NoError(t, e.CheckInvariants(projected))
}

func TestProjectAndNormalizeRejectsZeroProbability(t *testing.T) {
	e := evbdd.New()
	state := bellState(t, e)
	_, err := e.ProjectAndNormalize(state, 0, 0, 0, 2)
	require.ErrorIs(t, err, evbdd.ErrVariableMismatch)
}

func TestRemoveGlobalPhase(t *testing.T) {
	e := evbdd.New()
	state, err := e.MakeBasisState([]int{0})
	require.NoError(t, err)
	state, err = gates.ApplySequence(e, state, 1, []gates.Step{
		{Gate: gates.S, Qubits: []int{0}},
	})
	require.NoError(t, err)

	cleaned, err := e.RemoveGlobalPhase(state)
	require.NoError(t, err)

	v0, err := e.GetValue(cleaned, []int{0})
	require.NoError(t, err)
	require.InDelta(t, 1, v0.Re, 1e-9)
	require.InDelta(t, 0, v0.Im, 1e-9)
}

func TestPlusIsCommutativeStructurally(t *testing.T) {
	e := evbdd.New()
	a := bellState(t, e)
	b, err := e.MakeBasisState([]int{0, 1})
	require.NoError(t, err)

	ab, err := e.Plus(a, b)
	require.NoError(t, err)
	ba, err := e.Plus(b, a)
	require.NoError(t, err)
	require.Equal(t, ab, ba)
}

func TestMatVecIdentityIsNoop(t *testing.T) {
	e := evbdd.New()
	state := bellState(t, e)

	one := weight.Complex{Re: 1}
	zero := weight.Complex{}
	block, err := e.MakeOperator(one, zero, zero, one)
	require.NoError(t, err)

	identity := e.Layout().MakeEdge(node.Terminal, evbdd.WOne)
	for i := 0; i < 2; i++ {
		identity, err = e.Tensor(identity, block, 2*i)
		require.NoError(t, err)
	}

	out, err := e.MatVec(identity, state, 2)
	require.NoError(t, err)

	ok, err := e.Equivalent(out, state, 2, true)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMatMatIsAssociative(t *testing.T) {
	e := evbdd.New()

	xMat, ok := gates.MatrixFor(gates.X)
	require.True(t, ok)
	hMat, ok := gates.MatrixFor(gates.H)
	require.True(t, ok)
	zMat, ok := gates.MatrixFor(gates.Z)
	require.True(t, ok)

	x, err := e.MakeOperator(xMat.U00, xMat.U01, xMat.U10, xMat.U11)
	require.NoError(t, err)
	h, err := e.MakeOperator(hMat.U00, hMat.U01, hMat.U10, hMat.U11)
	require.NoError(t, err)
	z, err := e.MakeOperator(zMat.U00, zMat.U01, zMat.U10, zMat.U11)
	require.NoError(t, err)

	xhThenZ, err := e.MatMat(x, h, 1)
	require.NoError(t, err)
	xhThenZ, err = e.MatMat(xhThenZ, z, 1)
	require.NoError(t, err)

	hzFirst, err := e.MatMat(h, z, 1)
	require.NoError(t, err)
	xThenHz, err := e.MatMat(x, hzFirst, 1)
	require.NoError(t, err)

	ok, err = e.Equivalent(xhThenZ, xThenHz, 1, true)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInnerProductOfStateWithItselfIsProbSum(t *testing.T) {
	e := evbdd.New()
	state := bellState(t, e)

	innerEdge, err := e.Inner(state, state, 2)
	require.NoError(t, err)
	innerVal, err := e.GetValue(innerEdge, nil)
	require.NoError(t, err)

	sum, err := e.ProbSum(state, 0, 2)
	require.NoError(t, err)

	require.InDelta(t, sum, innerVal.Re, 1e-9)
	require.InDelta(t, 0, innerVal.Im, 1e-9)
}

func TestParallelMatchesSequentialExecution(t *testing.T) {
	sequential := evbdd.New(evbdd.WithWorkers(1))
	parallel := evbdd.New(evbdd.WithWorkers(4))

	steps := []gates.Step{
		{Gate: gates.H, Qubits: []int{0}},
		{Gate: gates.CX, Qubits: []int{0, 1}},
		{Gate: gates.H, Qubits: []int{2}},
		{Gate: gates.CX, Qubits: []int{1, 2}},
	}

	seqState, err := sequential.MakeBasisState([]int{0, 0, 0})
	require.NoError(t, err)
	seqState, err = gates.ApplySequence(sequential, seqState, 3, steps)
	require.NoError(t, err)

	parState, err := parallel.MakeBasisState([]int{0, 0, 0})
	require.NoError(t, err)
	parState, err = gates.ApplySequence(parallel, parState, 3, steps)
	require.NoError(t, err)

	ok, err := sequential.Equivalent(seqState, seqState, 3, true)
	require.NoError(t, err)
	require.True(t, ok)

	for _, bits := range [][]int{{0, 0, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1}} {
		sv, err := sequential.GetValue(seqState, bits)
		require.NoError(t, err)
		pv, err := parallel.GetValue(parState, bits)
		require.NoError(t, err)
		require.InDelta(t, sv.Re, pv.Re, 1e-9)
		require.InDelta(t, sv.Im, pv.Im, 1e-9)
	}
}

func TestRunRandomCircuitSoakIsReproducible(t *testing.T) {
	e1 := evbdd.New(evbdd.WithAutoGC(false))
	e2 := evbdd.New(evbdd.WithAutoGC(false))

	const seed, nQubits, nGates = uint64(42), 4, 200

	r1, err := e1.RunRandomCircuit(seed, nQubits, nGates, 0, nil)
	require.NoError(t, err)
	r2, err := e2.RunRandomCircuit(seed, nQubits, nGates, 0, nil)
	require.NoError(t, err)

	for _, bits := range [][]int{{0, 0, 0, 0}, {1, 0, 1, 0}, {1, 1, 1, 1}} {
		v1, err := e1.GetValue(r1.State, bits)
		require.NoError(t, err)
		v2, err := e2.GetValue(r2.State, bits)
		require.NoError(t, err)
		require.InDelta(t, v1.Re, v2.Re, 1e-9)
		require.InDelta(t, v1.Im, v2.Im, 1e-9)
	}
}

func TestRunRandomCircuitGCSoakHoldsInvariants(t *testing.T) {
	e := evbdd.New(
		evbdd.WithWeightTableSize(1<<6, 1<<16),
		evbdd.WithNodeTableSize(1<<6, 1<<16),
		evbdd.WithGCThreshold(0.2),
	)

	checkEvery := 50
	check := func(a node.Edge) error {
		if err := e.CheckInvariants(a); err != nil {
			return err
		}
		sum, err := e.ProbSum(a, 0, 5)
		if err != nil {
			return err
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Fatalf("ProbSum drifted to %v", sum)
		}
		return nil
	}

	result, err := e.RunRandomCircuit(7, 5, 400, checkEvery, check)
	require.NoError(t, err)
	require.NoError(t, e.CheckInvariants(result.State))
}
