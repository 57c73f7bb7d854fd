package gate

import (
	"sync"

	"github.com/pauliprop/pauliprop/pauli"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]*CliffordTable{}
	transposes = map[string]*CliffordTable{}
)

func init() {
	seedClifford("H", oneQubit(
		generatorImage{pattern: uint8(pauli.Z), sign: pauli.PlusOne},
		generatorImage{pattern: uint8(pauli.X), sign: pauli.PlusOne},
	))
	seedClifford("X", oneQubit(
		generatorImage{pattern: uint8(pauli.X), sign: pauli.PlusOne},
		generatorImage{pattern: uint8(pauli.Z), sign: pauli.MinusOne},
	))
	seedClifford("Y", oneQubit(
		generatorImage{pattern: uint8(pauli.X), sign: pauli.MinusOne},
		generatorImage{pattern: uint8(pauli.Z), sign: pauli.MinusOne},
	))
	seedClifford("Z", oneQubit(
		generatorImage{pattern: uint8(pauli.X), sign: pauli.MinusOne},
		generatorImage{pattern: uint8(pauli.Z), sign: pauli.PlusOne},
	))
	// S, SX, SY are quarter-turn rotations (RZ/RX/RY(pi/2) up to global
	// phase); their generator images are derived the same way the
	// PauliRotation kernel computes a sin-branch image, specialized to
	// theta=pi/2 where the cosine branch vanishes.
	seedClifford("S", oneQubit(
		quarterTurnImage(uint8(pauli.Z), uint8(pauli.X)),
		generatorImage{pattern: uint8(pauli.Z), sign: pauli.PlusOne},
	))
	seedClifford("SX", oneQubit(
		generatorImage{pattern: uint8(pauli.X), sign: pauli.PlusOne},
		quarterTurnImage(uint8(pauli.X), uint8(pauli.Z)),
	))
	seedClifford("SY", oneQubit(
		quarterTurnImage(uint8(pauli.Y), uint8(pauli.X)),
		quarterTurnImage(uint8(pauli.Y), uint8(pauli.Z)),
	))

	cnot := &CliffordTable{NQubits: 2}
	cnot.X = []generatorImage{
		{pattern: packLocal(pauli.X, pauli.X), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.I, pauli.X), sign: pauli.PlusOne},
	}
	cnot.Z = []generatorImage{
		{pattern: packLocal(pauli.Z, pauli.I), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.Z, pauli.Z), sign: pauli.PlusOne},
	}
	seedClifford("CNOT", cnot)

	cz := &CliffordTable{NQubits: 2}
	cz.X = []generatorImage{
		{pattern: packLocal(pauli.X, pauli.Z), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.Z, pauli.X), sign: pauli.PlusOne},
	}
	cz.Z = []generatorImage{
		{pattern: packLocal(pauli.Z, pauli.I), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.I, pauli.Z), sign: pauli.PlusOne},
	}
	seedClifford("CZ", cz)

	swap := &CliffordTable{NQubits: 2}
	swap.X = []generatorImage{
		{pattern: packLocal(pauli.I, pauli.X), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.X, pauli.I), sign: pauli.PlusOne},
	}
	swap.Z = []generatorImage{
		{pattern: packLocal(pauli.I, pauli.Z), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.Z, pauli.I), sign: pauli.PlusOne},
	}
	seedClifford("SWAP", swap)

	// ZZ[pi/2] = exp(-i*(pi/4)*ZZ): a genuine two-qubit Clifford. Derived
	// from the same quarter-turn-of-a-rotation construction as S/SX/SY,
	// generalized to a two-qubit generator.
	zz := &CliffordTable{NQubits: 2}
	zzGen := packLocal(pauli.Z, pauli.Z)
	zz.X = []generatorImage{
		quarterTurnImage(zzGen, packLocal(pauli.X, pauli.I)),
		quarterTurnImage(zzGen, packLocal(pauli.I, pauli.X)),
	}
	zz.Z = []generatorImage{
		{pattern: packLocal(pauli.Z, pauli.I), sign: pauli.PlusOne},
		{pattern: packLocal(pauli.I, pauli.Z), sign: pauli.PlusOne},
	}
	seedClifford("ZZ", zz)
}

func oneQubit(xImage, zImage generatorImage) *CliffordTable {
	return &CliffordTable{NQubits: 1, X: []generatorImage{xImage}, Z: []generatorImage{zImage}}
}

func packLocal(a, b pauli.Symbol) uint8 {
	v, err := pauli.FromSymbols[uint8]([]pauli.Symbol{a, b})
	if err != nil {
		panic(err)
	}
	return v
}

// quarterTurnImage computes the image of generator "local" under
// conjugation U(.)U† by a rotation exp(-i*(pi/4)*gen), i.e. theta=pi/2:
// if gen and local commute, local passes through unchanged; otherwise the
// cosine branch vanishes and the image is the product gen*local corrected
// by a factor of -i, which PauliRotation.Apply computes identically for
// the general-angle sin branch. The product of two anticommuting
// Hermitian Pauli strings is always anti-Hermitian, so its phase is always
// +-i and the -i correction always yields a real +-1 sign.
func quarterTurnImage(gen, local uint8) generatorImage {
	if pauli.Commutes(gen, local) {
		return generatorImage{pattern: local, sign: pauli.PlusOne}
	}
	p, pat := pauli.Product[uint8](gen, local)
	return generatorImage{pattern: pat, sign: pauli.MinusI.Mul(p)}
}

func seedClifford(symbol string, table *CliffordTable) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[symbol] = table
}

// RegisterClifford adds or replaces a named Clifford gate in the
// process-wide registry, specified by the image of each affected qubit's X
// and Z generator (§3.4, §5 "registration is idempotent"). x and z must
// have the same length, which becomes the gate's qubit count.
func RegisterClifford(symbol string, x, z []GeneratorImage) {
	gx := make([]generatorImage, len(x))
	for i, g := range x {
		gx[i] = generatorImage{pattern: g.Pattern, sign: g.Sign}
	}
	gz := make([]generatorImage, len(z))
	for i, g := range z {
		gz[i] = generatorImage{pattern: g.Pattern, sign: g.Sign}
	}
	seedClifford(symbol, &CliffordTable{NQubits: len(x), X: gx, Z: gz})
}

func lookupClifford(symbol string) (*CliffordTable, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[symbol]
	return t, ok
}

// lookupCliffordTranspose returns the Schrödinger-mode transpose of a
// registered Clifford, building and caching it on first use.
func lookupCliffordTranspose(symbol string) (*CliffordTable, bool) {
	registryMu.RLock()
	t, ok := transposes[symbol]
	registryMu.RUnlock()
	if ok {
		return t, true
	}
	base, ok := lookupClifford(symbol)
	if !ok {
		return nil, false
	}
	inv := base.transpose()
	registryMu.Lock()
	transposes[symbol] = inv
	registryMu.Unlock()
	return inv, true
}
