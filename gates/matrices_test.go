package gates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/weight"
)

func approxComplex(t *testing.T, want, got weight.Complex) {
	t.Helper()
	require.True(t, weight.ApproxEq(want, got, 1e-9), "want %v, got %v", want, got)
}

func TestMatrixForKnownGates(t *testing.T) {
	m, ok := matrixFor(X)
	require.True(t, ok)
	approxComplex(t, weight.Complex{}, m.U00)
	approxComplex(t, weight.Complex{Re: 1}, m.U01)
	approxComplex(t, weight.Complex{Re: 1}, m.U10)
	approxComplex(t, weight.Complex{}, m.U11)

	hm, ok := matrixFor(H)
	require.True(t, ok)
	inv := 1 / math.Sqrt2
	approxComplex(t, weight.Complex{Re: inv}, hm.U00)
	approxComplex(t, weight.Complex{Re: inv}, hm.U01)
	approxComplex(t, weight.Complex{Re: inv}, hm.U10)
	approxComplex(t, weight.Complex{Re: -inv}, hm.U11)

	_, ok = matrixFor(Name("bogus"))
	require.False(t, ok)
}

func TestPauliIdentitiesOnMatrices(t *testing.T) {
	x, _ := matrixFor(X)
	sq := Matrix2{
		weight.Add(weight.Mul(x.U00, x.U00), weight.Mul(x.U01, x.U10)),
		weight.Add(weight.Mul(x.U00, x.U01), weight.Mul(x.U01, x.U11)),
		weight.Add(weight.Mul(x.U10, x.U00), weight.Mul(x.U11, x.U10)),
		weight.Add(weight.Mul(x.U10, x.U01), weight.Mul(x.U11, x.U11)),
	}
	identity, _ := matrixFor(I)
	approxComplex(t, identity.U00, sq.U00)
	approxComplex(t, identity.U01, sq.U01)
	approxComplex(t, identity.U10, sq.U10)
	approxComplex(t, identity.U11, sq.U11)
}

func TestRkMatchesSAndT(t *testing.T) {
	s, _ := matrixFor(S)
	rk2 := Rk(2)
	approxComplex(t, s.U11, rk2.U11)

	tGate, _ := matrixFor(T)
	rk3 := Rk(3)
	approxComplex(t, tGate.U11, rk3.U11)
}

func TestRzAtZeroIsIdentityUpToPhase(t *testing.T) {
	rz := Rz(0)
	approxComplex(t, weight.Complex{Re: 1}, rz.U00)
	approxComplex(t, weight.Complex{Re: 1}, rz.U11)
	approxComplex(t, weight.Complex{}, rz.U01)
	approxComplex(t, weight.Complex{}, rz.U10)
}

func TestRxPiFlipsBasis(t *testing.T) {
	rx := Rx(math.Pi)
	approxComplex(t, weight.Complex{}, rx.U00)
	approxComplex(t, weight.Complex{Im: -1}, rx.U01)
}
