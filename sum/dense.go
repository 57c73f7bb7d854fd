package sum

import (
	"fmt"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
)

// Dense is the parallel-array realization of §4.2.2: terms and coeffs are
// kept in lockstep, activeSize marks the live prefix [0, activeSize) within
// a capacity that may exceed it, and flags/idx are scratch buffers shared
// by the data-parallel kernels in package kernel (flag a predicate per
// term, prefix-sum the flags into destination offsets, write). The shape
// admits transient duplicate keys immediately after a branching gate;
// merge (package kernel) restores uniqueness.
type Dense[W pauli.Word, C coeff.Coefficient[C]] struct {
	n          int
	terms      []W
	coeffs     []C
	activeSize int
	flags      []bool
	idx        []int
}

// NewDense returns an empty Dense sum over n sites with the given initial
// capacity (0 is fine; the first write grows it).
func NewDense[W pauli.Word, C coeff.Coefficient[C]](n, capacity int) *Dense[W, C] {
	d := &Dense[W, C]{n: n}
	if capacity > 0 {
		d.terms = make([]W, capacity)
		d.coeffs = make([]C, capacity)
		d.flags = make([]bool, capacity)
		d.idx = make([]int, capacity)
	}
	return d
}

// NewDenseFromTerm seeds a Dense sum with a single (string, coefficient)
// entry.
func NewDenseFromTerm[W pauli.Word, C coeff.Coefficient[C]](n int, s W, c C) *Dense[W, C] {
	d := NewDense[W, C](n, 1)
	d.terms[0] = s
	d.coeffs[0] = c
	d.activeSize = 1
	return d
}

func (d *Dense[W, C]) NSites() int     { return d.n }
func (d *Dense[W, C]) Length() int     { return d.activeSize }
func (d *Dense[W, C]) ActiveSize() int { return d.activeSize }
func (d *Dense[W, C]) Capacity() int   { return len(d.terms) }
func (d *Dense[W, C]) IsEmpty() bool   { return d.activeSize == 0 }

// Terms returns the backing term slice; only indices [0, ActiveSize) are
// live. Kernels read it by index directly; writing beyond ActiveSize
// requires EnsureCapacity first.
func (d *Dense[W, C]) Terms() []W { return d.terms }

// Coeffs returns the backing coefficient slice, paired index-for-index
// with Terms.
func (d *Dense[W, C]) Coeffs() []C { return d.coeffs }

// Flags returns the scratch boolean buffer used by data-parallel kernels to
// mark a per-term predicate ahead of a prefix-sum pass.
func (d *Dense[W, C]) Flags() []bool { return d.flags }

// Idx returns the scratch destination-offset buffer, populated by a
// prefix-sum over Flags.
func (d *Dense[W, C]) Idx() []int { return d.idx }

// SetActiveSize adjusts the live-prefix cursor. Callers must ensure
// newSize <= Capacity().
func (d *Dense[W, C]) SetActiveSize(newSize int) {
	d.activeSize = newSize
}

// Reset empties the active prefix without releasing the backing arrays —
// the dense-form convention for an aux buffer the next gate will refill
// (§4.3).
func (d *Dense[W, C]) Reset() {
	d.activeSize = 0
}

// EnsureCapacity grows the backing arrays (terms, coeffs, flags, idx) in
// lockstep to at least min, doubling the current capacity (starting from 1
// when empty) until it reaches min. The new capacity is the first such
// doubling that is >= min, not 2x min. Only the live prefix of terms and
// coeffs is copied over; flags and idx come back zeroed.
func (d *Dense[W, C]) EnsureCapacity(min int) error {
	if min < 0 {
		return perr.Wrap("sum.Dense.EnsureCapacity", perr.ErrCapacityExhausted,
			fmt.Sprintf("negative capacity request %d", min))
	}
	if len(d.terms) >= min {
		return nil
	}
	newCap := len(d.terms)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < min {
		newCap *= 2
	}
	newTerms := make([]W, newCap)
	newCoeffs := make([]C, newCap)
	newFlags := make([]bool, newCap)
	newIdx := make([]int, newCap)
	copy(newTerms, d.terms[:d.activeSize])
	copy(newCoeffs, d.coeffs[:d.activeSize])
	d.terms, d.coeffs, d.flags, d.idx = newTerms, newCoeffs, newFlags, newIdx
	return nil
}

// WriteAt writes a (string, coefficient) pair directly into slot i,
// bypassing deduplication. It is the fast path the data-parallel kernels
// use: the branching kernel writes every successor of every term, the
// cosine branch of a rotation included, into aux at prefix-summed offsets,
// and does not write cosine branches in place within main. The caller is
// responsible for calling EnsureCapacity and SetActiveSize appropriately
// around a batch of these.
func (d *Dense[W, C]) WriteAt(i int, s W, c C) {
	d.terms[i] = s
	d.coeffs[i] = c
}

// Coeff performs the O(active_size) linear scan required to answer a point
// lookup on the dense form (§4.2.2). Hot paths should avoid this and work
// with Terms/Coeffs directly.
func (d *Dense[W, C]) Coeff(s W) C {
	for i := 0; i < d.activeSize; i++ {
		if d.terms[i] == s {
			return d.coeffs[i]
		}
	}
	var zero C
	return zero
}

// Add performs the O(active_size) deduplicating insert described in
// §4.2.2: hot paths should prefer Set-into-aux plus a bulk merge instead.
func (d *Dense[W, C]) Add(s W, c C) {
	for i := 0; i < d.activeSize; i++ {
		if d.terms[i] == s {
			d.coeffs[i] = d.coeffs[i].Add(c)
			return
		}
	}
	d.appendTerm(s, c)
}

// Set overwrites an existing key's coefficient or inserts, via the same
// linear scan as Add.
func (d *Dense[W, C]) Set(s W, c C) {
	for i := 0; i < d.activeSize; i++ {
		if d.terms[i] == s {
			d.coeffs[i] = c
			return
		}
	}
	d.appendTerm(s, c)
}

func (d *Dense[W, C]) appendTerm(s W, c C) {
	if d.activeSize >= len(d.terms) {
		_ = d.EnsureCapacity(d.activeSize + 1)
	}
	d.terms[d.activeSize] = s
	d.coeffs[d.activeSize] = c
	d.activeSize++
}

func (d *Dense[W, C]) MultBy(factor float64) {
	for i := 0; i < d.activeSize; i++ {
		d.coeffs[i] = d.coeffs[i].Scale(factor)
	}
}

func (d *Dense[W, C]) Similar() Sum[W, C] {
	return NewDense[W, C](d.n, 0)
}

func (d *Dense[W, C]) Clone() Sum[W, C] {
	clone := NewDense[W, C](d.n, d.activeSize)
	copy(clone.terms, d.terms[:d.activeSize])
	copy(clone.coeffs, d.coeffs[:d.activeSize])
	clone.activeSize = d.activeSize
	return clone
}

func (d *Dense[W, C]) Norm(l float64) float64 { return Norm[W, C](d, l) }

func (d *Dense[W, C]) Each(fn func(s W, c C) bool) {
	for i := 0; i < d.activeSize; i++ {
		if !fn(d.terms[i], d.coeffs[i]) {
			return
		}
	}
}
