// Package coeff implements the two coefficient flavors of spec §3.2: a
// plain numeric scalar (Numeric, Complex) and a path-properties decorator
// (Path) that tracks how many sin/cos factors a term's coefficient has
// accumulated along its propagation path. Arithmetic style follows
// hwy/ops_base.go: one small value-receiver method per operation, no
// hidden mutation.
package coeff

import (
	"math"
	"math/cmplx"
)

// Coefficient is the minimal contract every coefficient flavor satisfies:
// addition (for merge) and scaling by a real factor (for mult_by_scalar and
// diagonal gate kernels), plus a magnitude used by truncation.
type Coefficient[C any] interface {
	Add(C) C
	Scale(factor float64) C
	Abs() float64
}

// Rotatable coefficients additionally know how to absorb a cos/sin factor
// from a Pauli-rotation split (§4.4); Numeric and Complex just scale, Path
// also advances its sin/cos/freq counters.
type Rotatable[C any] interface {
	Coefficient[C]
	MulCos(cosTheta float64) C
	MulSin(sinThetaSigned float64) C
}

// Numeric is a real scalar coefficient — the common case, since a
// Heisenberg-evolved Hermitian observable's coefficients stay real.
type Numeric float64

func (n Numeric) Add(o Numeric) Numeric        { return n + o }
func (n Numeric) Scale(factor float64) Numeric { return Numeric(float64(n) * factor) }
func (n Numeric) Abs() float64                 { return math.Abs(float64(n)) }
func (n Numeric) MulCos(cosTheta float64) Numeric { return n.Scale(cosTheta) }
func (n Numeric) MulSin(sinThetaSigned float64) Numeric { return n.Scale(sinThetaSigned) }

// Complex is a complex scalar coefficient, for callers who need to track
// global phase explicitly rather than folding it into the Pauli string sign.
type Complex complex128

func (c Complex) Add(o Complex) Complex        { return c + o }
func (c Complex) Scale(factor float64) Complex { return Complex(complex128(c) * complex(factor, 0)) }
func (c Complex) Abs() float64                 { return cmplx.Abs(complex128(c)) }
func (c Complex) MulCos(cosTheta float64) Complex { return c.Scale(cosTheta) }
func (c Complex) MulSin(sinThetaSigned float64) Complex { return c.Scale(sinThetaSigned) }

// Path decorates a real value with the path-properties record of §3.2:
// n_sins and n_cos count sine/cosine factors accumulated by Pauli-rotation
// splits along this term's propagation path, and Freq is maintained
// explicitly as their sum (not recomputed), per spec, so that Add's
// elementwise-minimum merge semantics apply to it directly too.
type Path struct {
	Value float64
	NSins int
	NCos  int
	Freq  int
}

// PathProperties is implemented by coefficient types that track a
// propagation-path history. Truncation predicates that need sin/frequency
// counts (MaxSins, MaxFreq) type-assert a coefficient against this rather
// than requiring every Coefficient to carry unused counters.
type PathProperties interface {
	PathCounts() (nSins, nCos, freq int)
}

// PathCounts implements coeff.PathProperties.
func (p Path) PathCounts() (int, int, int) { return p.NSins, p.NCos, p.Freq }

// Valued coefficients expose their signed numeric component. Abs() only
// ever returns a magnitude, but overlap operations (§4.6) need the sign, so
// they type-assert against this rather than widening Coefficient itself.
type Valued interface {
	NumericValue() float64
}

func (n Numeric) NumericValue() float64 { return float64(n) }
func (c Complex) NumericValue() float64 { return real(complex128(c)) }
func (p Path) NumericValue() float64    { return p.Value }

// WrapPath lifts a Numeric into a zero-history Path coefficient.
func WrapPath(n Numeric) Path {
	return Path{Value: float64(n)}
}

// Unwrap drops the path history, returning the plain numeric value.
func (p Path) Unwrap() Numeric { return Numeric(p.Value) }

// Add sums values and takes the elementwise minimum of the path counters:
// a merged path inherits the most permissive history, because either
// parent path is still reachable (spec §3.2).
func (p Path) Add(o Path) Path {
	return Path{
		Value: p.Value + o.Value,
		NSins: min(p.NSins, o.NSins),
		NCos:  min(p.NCos, o.NCos),
		Freq:  min(p.Freq, o.Freq),
	}
}

func (p Path) Scale(factor float64) Path {
	return Path{Value: p.Value * factor, NSins: p.NSins, NCos: p.NCos, Freq: p.Freq}
}

func (p Path) Abs() float64 { return math.Abs(p.Value) }

// MulCos absorbs one cosine factor: scales the value and advances NCos and
// Freq.
func (p Path) MulCos(cosTheta float64) Path {
	return Path{Value: p.Value * cosTheta, NSins: p.NSins, NCos: p.NCos + 1, Freq: p.Freq + 1}
}

// MulSin absorbs one sine factor (already signed by the product sign s).
func (p Path) MulSin(sinThetaSigned float64) Path {
	return Path{Value: p.Value * sinThetaSigned, NSins: p.NSins + 1, NCos: p.NCos, Freq: p.Freq + 1}
}
