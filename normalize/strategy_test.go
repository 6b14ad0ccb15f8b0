package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evbdd/qsim/normalize"
	"github.com/evbdd/qsim/weight"
)

const eps = 1e-9

func reconstruct(t *testing.T, common, out weight.Complex) weight.Complex {
	t.Helper()
	return weight.Mul(common, out)
}

func TestAllStrategiesPreserveOriginalPair(t *testing.T) {
	pairs := [][2]weight.Complex{
		{{Re: 0.6, Im: 0.2}, {Re: 0.3, Im: -0.5}},
		{{Re: 0, Im: 0}, {Re: 0.8, Im: 0.1}},
		{{Re: 0.8, Im: 0.1}, {Re: 0, Im: 0}},
		{{Re: 1, Im: 0}, {Re: 1, Im: 0}},
	}
	for _, kind := range []normalize.Kind{normalize.LOW, normalize.MAX, normalize.MIN, normalize.L2} {
		strat := normalize.For(kind)
		for _, p := range pairs {
			lowOut, highOut, common := strat.Normalize(p[0], p[1], eps)
			gotLow := reconstruct(t, common, lowOut)
			gotHigh := reconstruct(t, common, highOut)
			require.InDeltaf(t, p[0].Re, gotLow.Re, 1e-7, "%s low.Re", kind)
			require.InDeltaf(t, p[0].Im, gotLow.Im, 1e-7, "%s low.Im", kind)
			require.InDeltaf(t, p[1].Re, gotHigh.Re, 1e-7, "%s high.Re", kind)
			require.InDeltaf(t, p[1].Im, gotHigh.Im, 1e-7, "%s high.Im", kind)
		}
	}
}

func TestAllStrategiesIdempotent(t *testing.T) {
	p := [2]weight.Complex{{Re: 0.6, Im: 0.2}, {Re: 0.3, Im: -0.5}}
	for _, kind := range []normalize.Kind{normalize.LOW, normalize.MAX, normalize.MIN, normalize.L2} {
		strat := normalize.For(kind)
		lowOut, highOut, _ := strat.Normalize(p[0], p[1], eps)
		lowOut2, highOut2, common2 := strat.Normalize(lowOut, highOut, eps)

		require.InDeltaf(t, 1, common2.Re, 1e-9, "%s idempotent common.Re", kind)
		require.InDeltaf(t, 0, common2.Im, 1e-9, "%s idempotent common.Im", kind)
		require.InDeltaf(t, lowOut.Re, lowOut2.Re, 1e-9, "%s idempotent low", kind)
		require.InDeltaf(t, highOut.Re, highOut2.Re, 1e-9, "%s idempotent high", kind)
	}
}

func TestLowStrategyZeroLow(t *testing.T) {
	lowOut, highOut, common := normalize.For(normalize.LOW).Normalize(
		weight.Complex{Re: 0, Im: 0}, weight.Complex{Re: 2, Im: 0}, eps)
	require.True(t, lowOut.IsZero())
	require.Equal(t, weight.Complex{Re: 1, Im: 0}, highOut)
	require.Equal(t, weight.Complex{Re: 2, Im: 0}, common)
}

func TestMinTieBreakPrefersLow(t *testing.T) {
	low := weight.Complex{Re: 0.5, Im: 0}
	high := weight.Complex{Re: 0.5 + 1e-12, Im: 0}
	_, _, common := normalize.For(normalize.MIN).Normalize(low, high, eps)
	require.Equal(t, low, common, "within-epsilon tie must divide by low")
}

func TestL2LowFromHigh(t *testing.T) {
	low := weight.Complex{Re: 0.6, Im: 0.3}
	high := weight.Complex{Re: 0.2, Im: -0.1}
	_, highOut, _ := normalize.For(normalize.L2).Normalize(low, high, eps)

	lowOut := normalize.LowFromHigh(highOut)
	require.GreaterOrEqual(t, lowOut.Re, 0.0)
	require.Equal(t, 0.0, lowOut.Im)

	sum := weight.Sqr(lowOut) + weight.Sqr(highOut)
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestL2BothZero(t *testing.T) {
	lowOut, highOut, common := normalize.For(normalize.L2).Normalize(
		weight.Complex{}, weight.Complex{}, eps)
	require.True(t, lowOut.IsZero())
	require.True(t, highOut.IsZero())
	require.True(t, common.IsZero())
}

func TestMaxEqualChildren(t *testing.T) {
	v := weight.Complex{Re: 0.3, Im: 0.4}
	lowOut, highOut, common := normalize.For(normalize.MAX).Normalize(v, v, eps)
	require.Equal(t, weight.Complex{Re: 1, Im: 0}, lowOut)
	require.Equal(t, weight.Complex{Re: 1, Im: 0}, highOut)
	require.Equal(t, v, common)
}
