package pauli

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/pauliprop/pauliprop/perr"
)

// Wide is a packed Pauli string for site counts beyond what a uint64 (32
// sites) can hold — spec §3.1's "above 128 bits, an arbitrary-precision
// integer" case, extended down to cover the 64-to-128-bit band too since Go
// has no native uint128. Wide is immutable value-style, like Word: every
// method returns a new Wide rather than mutating the receiver in place,
// mirroring the Word free functions' pure-function contract.
type Wide struct {
	n    int
	bits *big.Int
}

// NewWide returns the all-identity Wide string over n sites.
func NewWide(n int) Wide {
	return Wide{n: n, bits: new(big.Int)}
}

// Sites returns the qubit count N this Wide string was constructed for.
func (w Wide) Sites() int { return w.n }

func (w Wide) checkSite(q int) error {
	if q < 1 || q > w.n {
		return perr.Wrap("pauli.Wide.checkSite", perr.ErrOutOfRangePauli,
			fmt.Sprintf("site %d out of range [1,%d]", q, w.n))
	}
	return nil
}

// Get returns the Pauli symbol at 1-indexed site q.
func (w Wide) Get(q int) (Symbol, error) {
	if err := w.checkSite(q); err != nil {
		return 0, err
	}
	shift := uint(2 * (q - 1))
	lo := w.bits.Bit(int(shift))
	hi := w.bits.Bit(int(shift) + 1)
	return Symbol(lo | hi<<1), nil
}

// Set returns a new Wide string with site q overwritten by v.
func (w Wide) Set(q int, v Symbol) (Wide, error) {
	if err := w.checkSite(q); err != nil {
		return w, err
	}
	if v > Z {
		return w, perr.Wrap("pauli.Wide.Set", perr.ErrOutOfRangePauli,
			fmt.Sprintf("value %d out of range [0,3]", v))
	}
	shift := 2 * (q - 1)
	out := new(big.Int).Set(w.bits)
	out.SetBit(out, shift, uint(v&1))
	out.SetBit(out, shift+1, uint((v>>1)&1))
	return Wide{n: w.n, bits: out}, nil
}

// FromSymbolsWide packs a full symbol vector into a Wide string.
func FromSymbolsWide(symbols []Symbol) (Wide, error) {
	w := NewWide(len(symbols))
	for i, s := range symbols {
		var err error
		w, err = w.Set(i+1, s)
		if err != nil {
			return Wide{}, err
		}
	}
	return w, nil
}

// ToSymbols unpacks all n sites of w into a symbol vector.
func (w Wide) ToSymbols() ([]Symbol, error) {
	out := make([]Symbol, w.n)
	for i := 0; i < w.n; i++ {
		s, err := w.Get(i + 1)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Product computes the sign and packed result of the site-wise product of
// two same-N Wide strings.
func (w Wide) Product(other Wide) (Phase, Wide, error) {
	if w.n != other.n {
		return 0, Wide{}, perr.Wrap("pauli.Wide.Product", perr.ErrShapeMismatch,
			fmt.Sprintf("%d vs %d sites", w.n, other.n))
	}
	c := new(big.Int).Xor(w.bits, other.bits)
	phase := PlusOne
	for q := 1; q <= w.n; q++ {
		sa, _ := w.Get(q)
		sb, _ := other.Get(q)
		if sa == I && sb == I {
			continue
		}
		sitePhase, _ := siteProduct(sa, sb)
		phase = phase.Mul(sitePhase)
	}
	return phase, Wide{n: w.n, bits: c}, nil
}

// Commutes reports whether w and other commute, via the same symplectic bit
// trick as Word.Commutes, computed over big.Int words.
func (w Wide) Commutes(other Wide) (bool, error) {
	if w.n != other.n {
		return false, perr.Wrap("pauli.Wide.Commutes", perr.ErrShapeMismatch,
			fmt.Sprintf("%d vs %d sites", w.n, other.n))
	}
	mask := oddBitsMaskBig(w.n)
	aR := new(big.Int).And(w.bits, mask)
	bR := new(big.Int).And(other.bits, mask)
	aL := new(big.Int).Rsh(w.bits, 1)
	aL.And(aL, mask)
	bL := new(big.Int).Rsh(other.bits, 1)
	bL.And(bL, mask)

	left := new(big.Int).And(aL, bR)
	right := new(big.Int).And(aR, bL)
	flags := new(big.Int).Xor(left, right)
	return popcountBig(flags)%2 == 0, nil
}

// Weight returns the number of non-identity sites.
func (w Wide) Weight() int {
	mask := oddBitsMaskBig(w.n)
	m1 := new(big.Int).And(w.bits, mask)
	m2 := new(big.Int).Rsh(w.bits, 1)
	m2.And(m2, mask)
	m1.Or(m1, m2)
	return popcountBig(m1)
}

// CountXorY returns the number of sites holding X or Y.
func (w Wide) CountXorY() int {
	mask := oddBitsMaskBig(w.n)
	aR := new(big.Int).And(w.bits, mask)
	aL := new(big.Int).Rsh(w.bits, 1)
	aL.And(aL, mask)
	aL.Xor(aL, aR)
	return popcountBig(aL)
}

// CountYorZ returns the number of sites holding Y or Z.
func (w Wide) CountYorZ() int {
	mask := oddBitsMaskBig(w.n)
	aL := new(big.Int).Rsh(w.bits, 1)
	aL.And(aL, mask)
	return popcountBig(aL)
}

func oddBitsMaskBig(n int) *big.Int {
	mask := new(big.Int)
	for i := 0; i < n; i++ {
		mask.SetBit(mask, 2*i, 1)
	}
	return mask
}

func popcountBig(v *big.Int) int {
	count := 0
	for _, word := range v.Bits() {
		count += bits.OnesCount(uint(word))
	}
	return count
}
