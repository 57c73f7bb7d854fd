// Package cache implements the propagation cache of spec §4.3: a dual-sum
// scratch object the pipeline driver mutates gate by gate. After each gate,
// only Main is considered live; Aux is either empty (keyed convention) or
// freshly refilled by the kernel (dense convention), then Swap promotes it.
package cache

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/sum"
)

// Cache wraps any two same-shape Sum implementations as main/aux. It is the
// shape-agnostic cache used by keyed-form kernels, which need only the Sum
// interface.
type Cache[W pauli.Word, C coeff.Coefficient[C]] struct {
	Main sum.Sum[W, C]
	Aux  sum.Sum[W, C]
}

// New builds a cache whose Aux starts as an empty sibling of seed.
func New[W pauli.Word, C coeff.Coefficient[C]](seed sum.Sum[W, C]) *Cache[W, C] {
	return &Cache[W, C]{Main: seed, Aux: seed.Similar()}
}

// Swap exchanges Main and Aux in O(1).
func (c *Cache[W, C]) Swap() { c.Main, c.Aux = c.Aux, c.Main }

// IsEmpty reports whether Main holds no terms.
func (c *Cache[W, C]) IsEmpty() bool { return c.Main.Length() == 0 }

// DenseCache is the dense-form-specific cache: it exposes concrete
// *sum.Dense pointers (rather than the Sum interface) so data-parallel
// kernels can reach the flag/idx scratch buffers and grow both buffers in
// lockstep (§4.3 "resize(cap) grows all internal buffers in lockstep").
type DenseCache[W pauli.Word, C coeff.Coefficient[C]] struct {
	Main *sum.Dense[W, C]
	Aux  *sum.Dense[W, C]
}

// NewDenseCache allocates a dense cache with the given initial capacity for
// both buffers.
func NewDenseCache[W pauli.Word, C coeff.Coefficient[C]](n, capacity int) *DenseCache[W, C] {
	return &DenseCache[W, C]{
		Main: sum.NewDense[W, C](n, capacity),
		Aux:  sum.NewDense[W, C](n, capacity),
	}
}

// Swap exchanges Main and Aux in O(1).
func (c *DenseCache[W, C]) Swap() { c.Main, c.Aux = c.Aux, c.Main }

// IsEmpty reports whether Main's active prefix is empty.
func (c *DenseCache[W, C]) IsEmpty() bool { return c.Main.IsEmpty() }

// Resize grows Main and Aux's backing arrays in lockstep to at least
// capacity.
func (c *DenseCache[W, C]) Resize(capacity int) error {
	if err := c.Main.EnsureCapacity(capacity); err != nil {
		return err
	}
	return c.Aux.EnsureCapacity(capacity)
}
