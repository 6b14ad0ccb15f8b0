package normalize

import "github.com/evbdd/qsim/weight"

// lowStrategy implements the LOW normalization policy: the low edge's
// weight is factored out whenever it is nonzero, otherwise the high
// edge's weight is (spec §4.5 LOW).
type lowStrategy struct{}

func (lowStrategy) Kind() Kind { return LOW }

func (lowStrategy) Normalize(low, high weight.Complex, eps float64) (lowOut, highOut, common weight.Complex) {
	if !isApproxZero(low, eps) {
		return cone, weight.Div(high, low), low
	}
	return czero, cone, high
}

func isApproxZero(c weight.Complex, eps float64) bool {
	return weight.ApproxEq(c, czero, eps)
}
