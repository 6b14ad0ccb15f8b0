package normalize

import "github.com/evbdd/qsim/weight"

// Kind names one of the four normalization policies spec §4.5 defines.
type Kind int

const (
	LOW Kind = iota
	MAX
	MIN
	L2
)

// String renders the Kind's name, useful in panics/diagnostics.
func (k Kind) String() string {
	switch k {
	case LOW:
		return "LOW"
	case MAX:
		return "MAX"
	case MIN:
		return "MIN"
	case L2:
		return "L2"
	default:
		return "UNKNOWN"
	}
}

// Strategy normalizes a pair of child edge weights, returning the
// normalized pair and the common factor that the caller installs as the
// node's outer edge weight. Every Strategy implementation must satisfy,
// for all inputs:
//
//	low  == Mul(common, lowOut)
//	high == Mul(common, highOut)
//
// and must be idempotent: Normalize(lowOut, highOut, eps) returns
// (lowOut, highOut, weight.Complex{Re: 1}).
type Strategy interface {
	Kind() Kind
	Normalize(low, high weight.Complex, eps float64) (lowOut, highOut, common weight.Complex)
}

// For returns the Strategy implementation for k.
func For(k Kind) Strategy {
	switch k {
	case LOW:
		return lowStrategy{}
	case MAX:
		return maxStrategy{}
	case MIN:
		return minStrategy{}
	case L2:
		return l2Strategy{}
	default:
		panic("normalize: unknown strategy kind " + k.String())
	}
}

var (
	czero     = weight.Complex{Re: 0, Im: 0}
	cone      = weight.Complex{Re: 1, Im: 0}
	cminusone = weight.Complex{Re: -1, Im: 0}
)
