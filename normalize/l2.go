package normalize

import (
	"math"

	"github.com/evbdd/qsim/weight"
)

// l2Strategy implements the L2 normalization policy: the pair is scaled
// to unit 2-norm and then rotated by a global phase that makes the low
// weight real and non-negative (spec §4.5 L2). node.MakeNode stores both
// returned weights; LowFromHigh recomputes the low weight from the high
// one using the invariant |low|^2 + |high|^2 = 1.
type l2Strategy struct{}

func (l2Strategy) Kind() Kind { return L2 }

func (l2Strategy) Normalize(low, high weight.Complex, eps float64) (lowOut, highOut, common weight.Complex) {
	n := math.Sqrt(weight.Sqr(low) + weight.Sqr(high))
	if n < eps {
		return czero, czero, czero
	}

	nC := weight.Complex{Re: n, Im: 0}
	lowN := weight.Div(low, nC)
	highN := weight.Div(high, nC)

	phase := cone
	if magLowN := weight.Abs(lowN); magLowN >= eps {
		phase = weight.Div(lowN, weight.Complex{Re: magLowN, Im: 0})
	}
	phaseConj := weight.Conj(phase)

	lowOut = weight.Mul(lowN, phaseConj)
	highOut = weight.Mul(highN, phaseConj)
	common = weight.Mul(nC, phase)

	// Guard against residual imaginary jitter on the reconstructed real
	// axis: lowOut is defined to be real non-negative by construction.
	lowOut.Im = 0
	if lowOut.Re < 0 {
		lowOut.Re = 0
	}
	return lowOut, highOut, common
}

// LowFromHigh reconstructs the (real, non-negative) low weight of an
// L2-normalized node from its stored high weight, using
// |low|^2 + |high|^2 = 1. Callers must only invoke this on weights
// produced by l2Strategy.Normalize, which guarantees |high| <= 1.
func LowFromHigh(high weight.Complex) weight.Complex {
	v := 1 - weight.Sqr(high)
	if v < 0 {
		v = 0
	}
	return weight.Complex{Re: math.Sqrt(v), Im: 0}
}
