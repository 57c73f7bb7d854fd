// Package pauli implements the bit-packed Pauli string encoding and its
// algebra (spec §3.1, §4.1): two bits per qubit site, I=0 X=1 Y=2 Z=3,
// site q (1-indexed) at bits [2(q-1), 2(q-1)+1]. Every operation here is
// pure and branch-free on the string value, in the style of
// hwy/ops_base.go's one-pure-function-per-operation generic numeric
// kernels — no per-site loops where a mask/popcount suffices.
package pauli

import "fmt"

// Symbol is a single-qubit Pauli label.
type Symbol byte

const (
	I Symbol = 0
	X Symbol = 1
	Y Symbol = 2
	Z Symbol = 3
)

func (s Symbol) String() string {
	switch s {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Symbol(%d)", byte(s))
	}
}

// ParseSymbol maps a single-character label to its Symbol.
func ParseSymbol(r byte) (Symbol, error) {
	switch r {
	case 'I', 'i':
		return I, nil
	case 'X', 'x':
		return X, nil
	case 'Y', 'y':
		return Y, nil
	case 'Z', 'z':
		return Z, nil
	default:
		return 0, fmt.Errorf("pauli: unrecognized symbol %q", r)
	}
}

// Phase is a fourth root of unity, i^k for k in [0,4), closed under
// multiplication by addition mod 4. It is the sign returned by Product.
type Phase uint8

const (
	PlusOne Phase = 0
	PlusI   Phase = 1
	MinusOne Phase = 2
	MinusI  Phase = 3
)

// Mul composes two phases: i^a * i^b = i^(a+b mod 4).
func (p Phase) Mul(q Phase) Phase {
	return (p + q) % 4
}

// Complex returns the phase as a complex128 unit.
func (p Phase) Complex() complex128 {
	switch p % 4 {
	case PlusOne:
		return complex(1, 0)
	case PlusI:
		return complex(0, 1)
	case MinusOne:
		return complex(-1, 0)
	default:
		return complex(0, -1)
	}
}

// Real returns the signed real value of a phase known to be PlusOne or
// MinusOne. Callers must only invoke this where realness is guaranteed by
// construction (e.g. the product of two anticommuting Hermitian Pauli
// strings, corrected by a factor of -i, is always real).
func (p Phase) Real() float64 {
	switch p % 4 {
	case PlusOne:
		return 1
	case MinusOne:
		return -1
	default:
		panic("pauli: Phase.Real called on a non-real phase")
	}
}

func (p Phase) String() string {
	switch p % 4 {
	case PlusOne:
		return "+1"
	case PlusI:
		return "+i"
	case MinusOne:
		return "-1"
	default:
		return "-i"
	}
}

// phaseTable[a][b] is the phase of the single-site product a*b, for
// a, b in {I,X,Y,Z} encoded as 0..3. Derived from sigma_a sigma_b =
// delta_ab I + i * epsilon_abc sigma_c.
var phaseTable = [4][4]Phase{
	//      I        X        Y        Z
	{PlusOne, PlusOne, PlusOne, PlusOne}, // I
	{PlusOne, PlusOne, PlusI, MinusI},    // X
	{PlusOne, MinusI, PlusOne, PlusI},    // Y
	{PlusOne, PlusI, MinusI, PlusOne},    // Z
}

// siteProduct returns the phase and resulting symbol of the product of two
// single-site Paulis. The resulting symbol is always a XOR b under this
// encoding.
func siteProduct(a, b Symbol) (Phase, Symbol) {
	return phaseTable[a][b], Symbol(byte(a) ^ byte(b))
}
