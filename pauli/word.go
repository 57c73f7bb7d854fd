package pauli

import (
	"fmt"
	"math/bits"

	"github.com/pauliprop/pauliprop/perr"
)

// Word is the set of fixed-width unsigned integer types a packed Pauli
// string may be stored in. Per spec §3.1, the narrowest width holding 2N
// bits is chosen: uint8 for N<=4, uint16 for N<=8, uint32 for N<=16, uint64
// for N<=32. Above 32 qubits (>64 bits), use Wide (pauli/wide.go) instead;
// Go generics are monomorphized at compile time so, unlike the source
// design's runtime width selection, callers pick the width that fits their
// N once, at the type-parameter site.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// oddBitsMask returns a mask with the low bit of every two-bit group set
// (…0101), sized to W's bit width.
func oddBitsMask[W Word]() W {
	var zero W
	bitWidth := bits.Len64(uint64(^zero))
	var mask uint64
	for i := 0; i < bitWidth; i += 2 {
		mask |= 1 << uint(i)
	}
	return W(mask)
}

// MaxSites returns the number of qubit sites a Word of type W can hold.
func MaxSites[W Word]() int {
	var zero W
	return bits.Len64(uint64(^zero)) / 2
}

func checkSite[W Word](q int) error {
	if q < 1 || q > MaxSites[W]() {
		return perr.Wrap("pauli.checkSite", perr.ErrOutOfRangePauli,
			fmt.Sprintf("site %d out of range [1,%d]", q, MaxSites[W]()))
	}
	return nil
}

// Get returns the Pauli symbol at 1-indexed site q.
func Get[W Word](p W, q int) (Symbol, error) {
	if err := checkSite[W](q); err != nil {
		return 0, err
	}
	shift := uint(2 * (q - 1))
	return Symbol((p >> shift) & 0b11), nil
}

// Set returns a new string with site q overwritten by v.
func Set[W Word](p W, q int, v Symbol) (W, error) {
	if err := checkSite[W](q); err != nil {
		return p, err
	}
	if v > Z {
		return p, perr.Wrap("pauli.Set", perr.ErrOutOfRangePauli,
			fmt.Sprintf("value %d out of range [0,3]", v))
	}
	shift := uint(2 * (q - 1))
	cleared := p &^ (W(0b11) << shift)
	return cleared | (W(v) << shift), nil
}

// GetSites unpacks the Pauli symbols at qinds (1-indexed), in the order
// given — the output order follows the caller's qinds, not site order, so
// unsorted qinds are explicitly supported.
func GetSites[W Word](p W, qinds []int) ([]Symbol, error) {
	out := make([]Symbol, len(qinds))
	for i, q := range qinds {
		s, err := Get(p, q)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// SetSites packs contiguous two-bit groups of maskValue onto qinds, group i
// (bits [2i, 2i+1] of maskValue) landing on qinds[i].
func SetSites[W Word](p W, maskValue W, qinds []int) (W, error) {
	for i, q := range qinds {
		v := Symbol((maskValue >> uint(2*i)) & 0b11)
		var err error
		p, err = Set(p, q, v)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// FromSymbols packs a full symbol vector (length must equal the number of
// sites implied by the caller's intended N) into a Word. The vector's
// length is the caller's N; it need not equal MaxSites[W], only be <= it.
func FromSymbols[W Word](symbols []Symbol) (W, error) {
	if len(symbols) > MaxSites[W]() {
		return 0, perr.Wrap("pauli.FromSymbols", perr.ErrShapeMismatch,
			fmt.Sprintf("%d sites exceed word capacity %d", len(symbols), MaxSites[W]()))
	}
	var p W
	for i, s := range symbols {
		var err error
		p, err = Set(p, i+1, s)
		if err != nil {
			return 0, err
		}
	}
	return p, nil
}

// FromSymbolsAt packs symbols onto the corresponding qinds (1-indexed,
// arbitrary order) of an otherwise-identity Word, for the §6.1 sum
// construction convenience that places a symbol vector at explicit sites
// rather than a contiguous run starting at site 1.
func FromSymbolsAt[W Word](symbols []Symbol, qinds []int) (W, error) {
	if len(symbols) != len(qinds) {
		return 0, perr.Wrap("pauli.FromSymbolsAt", perr.ErrShapeMismatch,
			"symbol count must match qubit index count")
	}
	var p W
	for i, q := range qinds {
		var err error
		p, err = Set(p, q, symbols[i])
		if err != nil {
			return 0, err
		}
	}
	return p, nil
}

// ToSymbols unpacks the first n sites of p into a symbol vector.
func ToSymbols[W Word](p W, n int) ([]Symbol, error) {
	if n > MaxSites[W]() {
		return nil, perr.Wrap("pauli.ToSymbols", perr.ErrShapeMismatch,
			fmt.Sprintf("%d sites exceed word capacity %d", n, MaxSites[W]()))
	}
	out := make([]Symbol, n)
	for i := 0; i < n; i++ {
		s, err := Get(p, i+1)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Product computes the sign and packed result of the site-wise product a*b,
// using the per-site Levi-Civita phase table and XOR for the resulting
// string (§4.1).
func Product[W Word](a, b W) (Phase, W) {
	c := a ^ b
	phase := PlusOne
	n := MaxSites[W]() // phase accumulation is the one per-site loop here; the i^k group has no popcount-style shortcut
	for q := 1; q <= n; q++ {
		shift := uint(2 * (q - 1))
		sa := Symbol((a >> shift) & 0b11)
		sb := Symbol((b >> shift) & 0b11)
		if sa == I && sb == I {
			continue
		}
		sitePhase, _ := siteProduct(sa, sb)
		phase = phase.Mul(sitePhase)
	}
	return phase, c
}

// Commutes reports whether a and b commute, via the symplectic-style bit
// trick of §4.1: let aL/bL be the high bit of each two-bit group shifted
// into the low-bit slot, aR/bR the low bit of each group; a site
// contributes a non-commuting flag iff (aL&bR)^(aR&bL) is set there, and a
// and b commute overall iff the popcount of those flags is even.
func Commutes[W Word](a, b W) bool {
	mask := oddBitsMask[W]()
	aR, bR := a&mask, b&mask
	aL, bL := (a>>1)&mask, (b>>1)&mask
	flags := (aL & bR) ^ (aR & bL)
	return bits.OnesCount64(uint64(flags))%2 == 0
}

// Weight returns the number of sites with a nonzero (non-identity) value.
func Weight[W Word](p W) int {
	mask := oddBitsMask[W]()
	m1 := p & mask
	m2 := (p & (mask << 1)) >> 1
	return bits.OnesCount64(uint64(m1 | m2))
}

// CountXorY returns the number of sites whose value is X or Y (the two bits
// of the site differ).
func CountXorY[W Word](p W) int {
	mask := oddBitsMask[W]()
	aR := p & mask
	aL := (p >> 1) & mask
	return bits.OnesCount64(uint64(aL ^ aR))
}

// CountYorZ returns the number of sites whose high bit is set (Y or Z).
func CountYorZ[W Word](p W) int {
	mask := oddBitsMask[W]()
	aL := (p >> 1) & mask
	return bits.OnesCount64(uint64(aL))
}
