// Package overlap implements the overlap and algebra surface of spec §4.6:
// inner products of a Pauli sum with stock reference states, scalar
// products between sums, and trace.
package overlap

import (
	"math"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
	"github.com/pauliprop/pauliprop/sum"
)

func numericValue[C coeff.Coefficient[C]](c C) (float64, error) {
	v, ok := any(c).(coeff.Valued)
	if !ok {
		return 0, perr.Wrap("overlap", perr.ErrIncompatibleCoefficient,
			"overlap requires a coefficient implementing coeff.Valued")
	}
	return v.NumericValue(), nil
}

// ByOrthogonality sums the numeric value of every term whose string is NOT
// orthogonal to a reference state per orthogonal (§4.6's general form; true
// means orthogonal, contributing 0).
func ByOrthogonality[W pauli.Word, C coeff.Coefficient[C]](s sum.Sum[W, C], orthogonal func(W) bool) (float64, error) {
	total := 0.0
	var firstErr error
	s.Each(func(str W, c C) bool {
		if orthogonal(str) {
			return true
		}
		v, err := numericValue(c)
		if err != nil {
			firstErr = err
			return false
		}
		total += v
		return true
	})
	return total, firstErr
}

// WithZero is the overlap with |0...0>: a string is orthogonal to it iff it
// carries an X or Y anywhere.
func WithZero[W pauli.Word, C coeff.Coefficient[C]](s sum.Sum[W, C]) (float64, error) {
	return ByOrthogonality[W, C](s, func(str W) bool {
		return pauli.CountXorY(str) > 0
	})
}

// WithPlus is the overlap with |+...+>: a string is orthogonal to it iff it
// carries a Y or Z anywhere.
func WithPlus[W pauli.Word, C coeff.Coefficient[C]](s sum.Sum[W, C]) (float64, error) {
	return ByOrthogonality[W, C](s, func(str W) bool {
		return pauli.CountYorZ(str) > 0
	})
}

// WithComputational is the overlap with the computational basis state that
// has a 1 at every site in oneSites and 0 elsewhere. A string carrying any
// X or Y is orthogonal to every computational basis state and contributes
// 0; otherwise its sign flips once for every Z it carries at a site in
// oneSites.
func WithComputational[W pauli.Word, C coeff.Coefficient[C]](s sum.Sum[W, C], oneSites []int) (float64, error) {
	total := 0.0
	var firstErr error
	s.Each(func(str W, c C) bool {
		if pauli.CountXorY(str) > 0 {
			return true
		}
		v, err := numericValue(c)
		if err != nil {
			firstErr = err
			return false
		}
		sign := 1.0
		for _, q := range oneSites {
			sym, getErr := pauli.Get(str, q)
			if getErr != nil {
				firstErr = getErr
				return false
			}
			if sym == pauli.Z {
				sign = -sign
			}
		}
		total += sign * v
		return true
	})
	return total, firstErr
}

// ScalarProduct re-exposes sum.ScalarProduct (§4.6) from the overlap
// surface, supplying the coeff.Valued-based numeric extractor so callers
// need not write their own.
func ScalarProduct[W pauli.Word, C coeff.Coefficient[C]](a, b sum.Sum[W, C]) (float64, error) {
	var firstErr error
	value := func(c C) float64 {
		v, err := numericValue(c)
		if err != nil {
			firstErr = err
			return 0
		}
		return v
	}
	result := sum.ScalarProduct[W, C](a, b, value)
	if firstErr != nil {
		return 0, firstErr
	}
	return result, nil
}

// Trace returns 2^N times the coefficient of the all-identity string (0 if
// the term is absent, since Sum.Coeff returns the zero value of C then).
func Trace[W pauli.Word, C coeff.Coefficient[C]](s sum.Sum[W, C]) (float64, error) {
	var identity W
	v, err := numericValue(s.Coeff(identity))
	if err != nil {
		return 0, err
	}
	return v * math.Pow(2, float64(s.NSites())), nil
}
