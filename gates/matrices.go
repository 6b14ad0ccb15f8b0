package gates

import (
	"math"

	"github.com/evbdd/qsim/weight"
)

// Name identifies a catalogued gate or a dispatch tag for a two-qubit
// builder (CX, CZ, Swap) inside ApplySequence.
type Name string

// The fixed single-qubit catalogue (spec.md's Design Notes: "Gate weights
// ... are process-wide"), grounded on qsylvan_gates.c/.h.
const (
	I   Name = "I"
	X   Name = "X"
	Y   Name = "Y"
	Z   Name = "Z"
	H   Name = "H"
	S   Name = "S"
	Sdg Name = "Sdg"
	T   Name = "T"
	Tdg Name = "Tdg"
	SX  Name = "SX"
	SXdg Name = "SXdg"

	// CX, CZ and Swap are not single-qubit matrices; ApplySequence
	// dispatches on these tags to ApplyControlled/ApplySwap instead of
	// looking up a Matrix2 in the catalogue.
	CX   Name = "CX"
	CZ   Name = "CZ"
	Swap Name = "Swap"
)

// catalogue lists every single-qubit Name with a plain Matrix2 entry,
// used by both Registry.Reinit and matrixFor.
var catalogue = []Name{I, X, Y, Z, H, S, Sdg, T, Tdg, SX, SXdg}

// Matrix2 is a dense 2×2 complex matrix: the engine's only vocabulary for
// a gate (spec.md §1 — "constructed as 2×2 matrices whose four complex
// entries are looked up in the weight table; the engine does not
// interpret them").
type Matrix2 struct {
	U00, U01, U10, U11 weight.Complex
}

var (
	c0    = weight.Complex{}
	c1    = weight.Complex{Re: 1}
	cNeg1 = weight.Complex{Re: -1}
	cI    = weight.Complex{Im: 1}
	cNegI = weight.Complex{Im: -1}
)

// MatrixFor returns the Matrix2 recipe for a catalogued single-qubit gate
// name, and whether name is in the catalogue.
func MatrixFor(name Name) (Matrix2, bool) {
	return matrixFor(name)
}

func matrixFor(name Name) (Matrix2, bool) {
	switch name {
	case I:
		return Matrix2{c1, c0, c0, c1}, true
	case X:
		return Matrix2{c0, c1, c1, c0}, true
	case Y:
		return Matrix2{c0, cNegI, cI, c0}, true
	case Z:
		return Matrix2{c1, c0, c0, cNeg1}, true
	case H:
		h := weight.Complex{Re: 1 / math.Sqrt2}
		negH := weight.Complex{Re: -1 / math.Sqrt2}
		return Matrix2{h, h, h, negH}, true
	case S:
		return Matrix2{c1, c0, c0, cI}, true
	case Sdg:
		return Matrix2{c1, c0, c0, cNegI}, true
	case T:
		return Matrix2{c1, c0, c0, weight.Complex{Re: math.Cos(math.Pi / 4), Im: math.Sin(math.Pi / 4)}}, true
	case Tdg:
		return Matrix2{c1, c0, c0, weight.Complex{Re: math.Cos(math.Pi / 4), Im: -math.Sin(math.Pi / 4)}}, true
	case SX:
		a := weight.Complex{Re: 0.5, Im: 0.5}
		b := weight.Complex{Re: 0.5, Im: -0.5}
		return Matrix2{a, b, b, a}, true
	case SXdg:
		a := weight.Complex{Re: 0.5, Im: -0.5}
		b := weight.Complex{Re: 0.5, Im: 0.5}
		return Matrix2{a, b, b, a}, true
	default:
		return Matrix2{}, false
	}
}

// Rk returns the parameterized phase gate diag(1, e^{2πi/2^k}) (spec.md
// Design Notes' "parameterized R_k"), grounded on qsylvan_gates.c's Rk
// construction.
func Rk(k int) Matrix2 {
	theta := 2 * math.Pi / math.Pow(2, float64(k))
	return Matrix2{c1, c0, c0, weight.Complex{Re: math.Cos(theta), Im: math.Sin(theta)}}
}

// Rz returns the Z-axis rotation diag(e^{-iθ/2}, e^{iθ/2}).
func Rz(theta float64) Matrix2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix2{weight.Complex{Re: c, Im: -s}, c0, c0, weight.Complex{Re: c, Im: s}}
}

// Rx returns the X-axis rotation [[cos(θ/2), -i sin(θ/2)], [-i sin(θ/2), cos(θ/2)]].
func Rx(theta float64) Matrix2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	diag := weight.Complex{Re: c}
	off := weight.Complex{Im: -s}
	return Matrix2{diag, off, off, diag}
}

// Ry returns the Y-axis rotation [[cos(θ/2), -sin(θ/2)], [sin(θ/2), cos(θ/2)]].
func Ry(theta float64) Matrix2 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix2{weight.Complex{Re: c}, weight.Complex{Re: -s}, weight.Complex{Re: s}, weight.Complex{Re: c}}
}

func scale(m Matrix2, factor weight.Complex) Matrix2 {
	return Matrix2{
		weight.Mul(m.U00, factor), weight.Mul(m.U01, factor),
		weight.Mul(m.U10, factor), weight.Mul(m.U11, factor),
	}
}

func projector0() Matrix2 { return Matrix2{c1, c0, c0, c0} }
func projector1() Matrix2 { return Matrix2{c0, c0, c0, c1} }
func identity2() Matrix2  { return Matrix2{c1, c0, c0, c1} }
