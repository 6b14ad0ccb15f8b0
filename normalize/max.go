package normalize

import "github.com/evbdd/qsim/weight"

// maxStrategy implements the MAX normalization policy: both children are
// divided by whichever has the larger magnitude (spec §4.5 MAX).
type maxStrategy struct{}

func (maxStrategy) Kind() Kind { return MAX }

func (maxStrategy) Normalize(low, high weight.Complex, eps float64) (lowOut, highOut, common weight.Complex) {
	if weight.ExactEq(low, high) {
		return cone, cone, low
	}
	if isApproxZero(low, eps) && isApproxZero(high, eps) {
		return czero, czero, czero
	}

	var divisor weight.Complex
	if weight.Abs(high) >= weight.Abs(low) {
		divisor = high
	} else {
		divisor = low
	}
	return weight.Div(low, divisor), weight.Div(high, divisor), divisor
}
