package normalize

import "github.com/evbdd/qsim/weight"

// minStrategy implements the MIN normalization policy: like MAX, but
// divides by whichever nonzero child has the smaller magnitude. When the
// two magnitudes are within eps of each other the divisor is always the
// low child — this is spec §9's prescribed deterministic tie-break,
// without it the table would see two different node records for what
// should be one canonical diagram under floating-point jitter.
type minStrategy struct{}

func (minStrategy) Kind() Kind { return MIN }

func (minStrategy) Normalize(low, high weight.Complex, eps float64) (lowOut, highOut, common weight.Complex) {
	lowZero := isApproxZero(low, eps)
	highZero := isApproxZero(high, eps)

	switch {
	case lowZero && highZero:
		return czero, czero, czero
	case lowZero:
		return czero, cone, high
	case highZero:
		return cone, czero, low
	}

	magLow := weight.Abs(low)
	magHigh := weight.Abs(high)

	var divisor weight.Complex
	if absDiff(magLow, magHigh) < eps {
		divisor = low // deterministic tie-break: prefer low
	} else if magLow < magHigh {
		divisor = low
	} else {
		divisor = high
	}
	return weight.Div(low, divisor), weight.Div(high, divisor), divisor
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
