// Package sum implements the term-sum container of spec §3.3/§4.2: an
// abstract mapping from Pauli string to coefficient, with two concrete
// shapes — Keyed (a hash map, §4.2.1) and Dense (parallel arrays plus
// scratch buffers, §4.2.2). Both satisfy the Sum interface so the pipeline
// driver in package propagate is written once against either shape.
package sum

import (
	"math"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
)

// Sum is the uniform contract of §4.2: nsites/length, coeff lookup, in-place
// add/set/scale, an empty sibling of the same shape, an L-norm, and
// unordered iteration. Iteration order is unspecified (§9, "Iterator
// contract") and callers must not rely on it.
type Sum[W pauli.Word, C coeff.Coefficient[C]] interface {
	NSites() int
	Length() int
	Coeff(s W) C
	Add(s W, c C)
	Set(s W, c C)
	MultBy(factor float64)
	Similar() Sum[W, C]
	Clone() Sum[W, C]
	Norm(l float64) float64
	Each(fn func(s W, c C) bool)
}

// AddSymbol is the §6.1 single-site add-in-place convenience: builds a
// string with symbol at site (1-indexed, otherwise identity) and adds it to
// s with coefficient c.
func AddSymbol[W pauli.Word, C coeff.Coefficient[C]](s Sum[W, C], symbol pauli.Symbol, site int, c C) error {
	var str W
	str, err := pauli.Set(str, site, symbol)
	if err != nil {
		return err
	}
	s.Add(str, c)
	return nil
}

// AddSymbols is the §6.1 multi-site add-in-place convenience: builds a
// string with symbols placed at the corresponding qinds (1-indexed,
// otherwise identity) and adds it to s with coefficient c.
func AddSymbols[W pauli.Word, C coeff.Coefficient[C]](s Sum[W, C], symbols []pauli.Symbol, qinds []int, c C) error {
	str, err := pauli.FromSymbolsAt[W](symbols, qinds)
	if err != nil {
		return err
	}
	s.Add(str, c)
	return nil
}

// Norm computes the L-norm over Abs() of every coefficient in a Sum. Both
// Keyed and Dense delegate their Norm method to this shared helper.
func Norm[W pauli.Word, C coeff.Coefficient[C]](s Sum[W, C], l float64) float64 {
	if l <= 0 {
		l = 2
	}
	total := 0.0
	s.Each(func(_ W, c C) bool {
		total += math.Pow(c.Abs(), l)
		return true
	})
	return math.Pow(total, 1/l)
}

// Equal reports whether two sums have the same N and the same key->value
// mapping, coefficients compared by Abs-difference within eps (§3.3
// equality, §7 "floating-point non-associativity ... acceptable").
func Equal[W pauli.Word, C coeff.Coefficient[C]](a, b Sum[W, C], eps float64) bool {
	if a.NSites() != b.NSites() || a.Length() != b.Length() {
		return false
	}
	equal := true
	a.Each(func(s W, c C) bool {
		bc := b.Coeff(s)
		diff := c.Add(negate(bc))
		if diff.Abs() > eps {
			equal = false
			return false
		}
		return true
	})
	return equal
}

func negate[C coeff.Coefficient[C]](c C) C {
	return c.Scale(-1)
}

// ScalarProduct sums, over the intersection of keys, the numeric products
// of coefficients (spec §4.6). Coefficients are reduced to their Abs-free
// numeric value via the supplied extractor, since Coefficient only exposes
// Abs for magnitude, not the signed value needed for a product.
func ScalarProduct[W pauli.Word, C coeff.Coefficient[C]](a, b Sum[W, C], value func(C) float64) float64 {
	total := 0.0
	// Iterate the smaller sum for the intersection scan.
	small, large := a, b
	if b.Length() < a.Length() {
		small, large = b, a
	}
	small.Each(func(s W, c C) bool {
		lc := large.Coeff(s)
		total += value(c) * value(lc)
		return true
	})
	return total
}
