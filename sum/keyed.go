package sum

import (
	"maps"

	"github.com/samber/lo"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
)

// Keyed is the hash-map realization of §4.2.1: ideal for sparse,
// unpredictable branching, amortized O(1) add/set, and real deletion
// (used by truncation).
type Keyed[W pauli.Word, C coeff.Coefficient[C]] struct {
	n     int
	terms map[W]C
}

// NewKeyed returns an empty Keyed sum over n sites.
func NewKeyed[W pauli.Word, C coeff.Coefficient[C]](n int) *Keyed[W, C] {
	return &Keyed[W, C]{n: n, terms: make(map[W]C)}
}

// NewKeyedFromTerm seeds a Keyed sum with a single (string, coefficient)
// entry (§3.3 lifecycle).
func NewKeyedFromTerm[W pauli.Word, C coeff.Coefficient[C]](n int, s W, c C) *Keyed[W, C] {
	k := NewKeyed[W, C](n)
	k.terms[s] = c
	return k
}

func (k *Keyed[W, C]) NSites() int  { return k.n }
func (k *Keyed[W, C]) Length() int  { return len(k.terms) }

func (k *Keyed[W, C]) Coeff(s W) C {
	return k.terms[s] // zero value of C if absent
}

func (k *Keyed[W, C]) Add(s W, c C) {
	if existing, ok := k.terms[s]; ok {
		k.terms[s] = existing.Add(c)
		return
	}
	k.terms[s] = c
}

func (k *Keyed[W, C]) Set(s W, c C) {
	k.terms[s] = c
}

// Delete removes a key entirely, used by truncate.
func (k *Keyed[W, C]) Delete(s W) {
	delete(k.terms, s)
}

func (k *Keyed[W, C]) MultBy(factor float64) {
	for s, c := range k.terms {
		k.terms[s] = c.Scale(factor)
	}
}

func (k *Keyed[W, C]) Similar() Sum[W, C] {
	return NewKeyed[W, C](k.n)
}

func (k *Keyed[W, C]) Clone() Sum[W, C] {
	clone := NewKeyed[W, C](k.n)
	clone.terms = maps.Clone(k.terms)
	return clone
}

func (k *Keyed[W, C]) Norm(l float64) float64 { return Norm[W, C](k, l) }

func (k *Keyed[W, C]) Each(fn func(s W, c C) bool) {
	for s, c := range k.terms {
		if !fn(s, c) {
			return
		}
	}
}

// Keys returns the term strings present, order unspecified. Built on
// samber/lo's generic map-keys helper, matching the teacher's declared (if
// previously unused) dependency on samber/lo for generic collection
// utilities.
func (k *Keyed[W, C]) Keys() []W {
	return lo.Keys(k.terms)
}

// MergeInto unions src into dst with coefficient addition, emptying src —
// the keyed-form merge step of §4.5. If dst is smaller than src, the
// driver should call this with the larger map as dst to minimize work, as
// the spec recommends ("If main is smaller than aux, swap roles first").
func MergeInto[W pauli.Word, C coeff.Coefficient[C]](dst, src *Keyed[W, C]) {
	for s, c := range src.terms {
		if existing, ok := dst.terms[s]; ok {
			dst.terms[s] = existing.Add(c)
		} else {
			dst.terms[s] = c
		}
	}
	clear(src.terms)
}
