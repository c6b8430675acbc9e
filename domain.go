package expression

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// Number is the set of numeric domains an expression tree can be built over.
type Number interface {
	float64 | complex128
}

// Tolerance is the distance below which a value counts as zero, and the
// distance from one below which it counts as one.
const Tolerance = 1e-6

// Domain supplies the operations of T that the native arithmetic operators
// do not cover.
type Domain[T Number] interface {
	Name() string
	Pow(a, b T) T
	Apply(f FuncKind, v T) T
	IsZero(v T) bool
	IsOne(v T) bool
	Format(v T) string
	LaTeX(v T) string
	// FromParts builds a value from real and imaginary parts. It reports
	// false when the domain cannot hold the imaginary part.
	FromParts(re, im float64) (T, bool)
	Parts(v T) (re, im float64)
	IsComplex() bool
}

// DomainOf returns the Domain implementation for T.
func DomainOf[T Number]() Domain[T] {
	var zero T
	switch any(zero).(type) {
	case complex128:
		return any(complexDomain{}).(Domain[T])
	default:
		return any(realDomain{}).(Domain[T])
	}
}

// formatReal renders with at most 15 significant digits, trailing zeros
// dropped.
func formatReal(v float64) string { return strconv.FormatFloat(v, 'g', 15, 64) }

func isZeroReal(v float64) bool { return math.Abs(v) < Tolerance }
func isOneReal(v float64) bool  { return math.Abs(v-1) < Tolerance }

// ============================================================
// Real: float64
// ============================================================

type realDomain struct{}

func (realDomain) Name() string             { return "real" }
func (realDomain) Pow(a, b float64) float64 { return math.Pow(a, b) }
func (realDomain) IsZero(v float64) bool    { return isZeroReal(v) }
func (realDomain) IsOne(v float64) bool     { return isOneReal(v) }
func (realDomain) Format(v float64) string  { return formatReal(v) }
func (realDomain) LaTeX(v float64) string   { return formatReal(v) }
func (realDomain) IsComplex() bool          { return false }

func (realDomain) Parts(v float64) (float64, float64) { return v, 0 }

func (realDomain) FromParts(re, im float64) (float64, bool) {
	return re, im == 0
}

func (realDomain) Apply(f FuncKind, v float64) float64 {
	switch f {
	case FuncSin:
		return math.Sin(v)
	case FuncCos:
		return math.Cos(v)
	case FuncLn:
		return math.Log(v)
	case FuncExp:
		return math.Exp(v)
	}
	return math.NaN()
}

// ============================================================
// Complex: complex128
// ============================================================

type complexDomain struct{}

func (complexDomain) Name() string                   { return "complex" }
func (complexDomain) Pow(a, b complex128) complex128 { return cmplx.Pow(a, b) }
func (complexDomain) IsZero(v complex128) bool       { return cmplx.Abs(v) < Tolerance }
func (complexDomain) IsComplex() bool                { return true }

func (complexDomain) IsOne(v complex128) bool {
	return isOneReal(real(v)) && isZeroReal(imag(v))
}

func (complexDomain) Parts(v complex128) (float64, float64) { return real(v), imag(v) }

func (complexDomain) FromParts(re, im float64) (complex128, bool) {
	return complex(re, im), true
}

func (complexDomain) Format(v complex128) string {
	switch {
	case isZeroReal(imag(v)):
		return formatReal(real(v))
	case isZeroReal(real(v)):
		return formatReal(imag(v)) + "i"
	}
	return fmt.Sprintf("(%s + %si)", formatReal(real(v)), formatReal(imag(v)))
}

func (complexDomain) LaTeX(v complex128) string {
	switch {
	case isZeroReal(imag(v)):
		return formatReal(real(v))
	case isZeroReal(real(v)):
		return formatReal(imag(v)) + "i"
	}
	return fmt.Sprintf("\\left(%s + %si\\right)", formatReal(real(v)), formatReal(imag(v)))
}

func (complexDomain) Apply(f FuncKind, v complex128) complex128 {
	switch f {
	case FuncSin:
		return cmplx.Sin(v)
	case FuncCos:
		return cmplx.Cos(v)
	case FuncLn:
		return cmplx.Log(v)
	case FuncExp:
		return cmplx.Exp(v)
	}
	return cmplx.NaN()
}
