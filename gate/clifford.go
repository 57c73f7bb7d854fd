package gate

import (
	"sync"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
)

// generatorImage is the image of one single-qubit generator (X_i or Z_i)
// under a Clifford's conjugation, as a local pattern over the gate's own
// qubit indices (qubit 0 at site 1, qubit 1 at site 2) plus a sign. Every
// Clifford in this package is specified only by the action on the X and Z
// generator of each affected qubit; CliffordTable.build derives the action
// on Y and on products of generators, since conjugation is an algebra
// homomorphism and Y_i = i * X_i * Z_i.
type generatorImage struct {
	pattern uint8
	sign    pauli.Phase
}

// GeneratorImage is the exported form of generatorImage, for
// RegisterClifford.
type GeneratorImage struct {
	Pattern uint8
	Sign    pauli.Phase
}

// CliffordTable is the permutation-with-sign map of §3.4 for one named
// Clifford gate over its own 1 or 2 affected qubits, built lazily from its
// X/Z generator images on first use.
type CliffordTable struct {
	NQubits int
	X       []generatorImage
	Z       []generatorImage

	once  sync.Once
	image []uint8
	sign  []pauli.Phase
}

func (t *CliffordTable) build() {
	size := 1
	for i := 0; i < t.NQubits; i++ {
		size *= 4
	}
	t.image = make([]uint8, size)
	t.sign = make([]pauli.Phase, size)
	for v := 0; v < size; v++ {
		symbols, err := pauli.ToSymbols[uint8](uint8(v), t.NQubits)
		if err != nil {
			panic(err) // v < 4^NQubits is always in range
		}
		img := uint8(0)
		total := pauli.PlusOne
		for i, s := range symbols {
			if s == pauli.I {
				continue
			}
			gi := t.imageOf(i, s)
			p, pat := pauli.Product[uint8](img, gi.pattern)
			img = pat
			total = total.Mul(p).Mul(gi.sign)
		}
		t.image[v] = img
		t.sign[v] = total
	}
}

func (t *CliffordTable) imageOf(qubit int, s pauli.Symbol) generatorImage {
	switch s {
	case pauli.X:
		return t.X[qubit]
	case pauli.Z:
		return t.Z[qubit]
	default: // Y = i * X * Z
		p, pat := pauli.Product[uint8](t.X[qubit].pattern, t.Z[qubit].pattern)
		return generatorImage{
			pattern: pat,
			sign:    pauli.PlusI.Mul(p).Mul(t.X[qubit].sign).Mul(t.Z[qubit].sign),
		}
	}
}

// Apply returns the image and sign of a local pattern v, packed over this
// table's own NQubits qubits.
func (t *CliffordTable) Apply(v uint8) (uint8, pauli.Phase) {
	t.once.Do(t.build)
	return t.image[v], t.sign[v]
}

func newBuiltTable(nqubits int, image []uint8, sign []pauli.Phase) *CliffordTable {
	t := &CliffordTable{NQubits: nqubits, image: image, sign: sign}
	t.once.Do(func() {})
	return t
}

// transpose returns the table whose conjugation is this table's inverse
// permutation, used for Schrödinger-mode propagation (§4.5): a Clifford
// table is a sign-permutation, so its transpose is the inverse permutation
// carrying the same signs.
func (t *CliffordTable) transpose() *CliffordTable {
	t.once.Do(t.build)
	inv := make([]uint8, len(t.image))
	invSign := make([]pauli.Phase, len(t.image))
	for v, img := range t.image {
		inv[img] = uint8(v)
		invSign[img] = t.sign[v]
	}
	return newBuiltTable(t.NQubits, inv, invSign)
}

// Clifford is the tagged variant of §3.4: a named permutation-with-sign
// map on Paulis at up to two qubits, selected from the package registry by
// symbol.
type Clifford[W pauli.Word, C coeff.Coefficient[C]] struct {
	Symbol string
	QInds  []int

	table *CliffordTable
}

// NewClifford looks up symbol in the registry immediately, so a bad symbol
// is reported at construction rather than at first Apply.
func NewClifford[W pauli.Word, C coeff.Coefficient[C]](symbol string, qinds []int) (*Clifford[W, C], error) {
	g := &Clifford[W, C]{Symbol: symbol, QInds: qinds}
	if _, err := g.resolve(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Clifford[W, C]) resolve() (*CliffordTable, error) {
	if g.table != nil {
		return g.table, nil
	}
	t, ok := lookupClifford(g.Symbol)
	if !ok {
		return nil, perr.Wrap("gate.Clifford", perr.ErrUnsupportedGate,
			"unregistered Clifford symbol "+g.Symbol)
	}
	if t.NQubits != len(g.QInds) {
		return nil, perr.Wrap("gate.Clifford", perr.ErrShapeMismatch,
			"Clifford "+g.Symbol+" expects a different qubit-index count")
	}
	g.table = t
	return t, nil
}

func (g *Clifford[W, C]) Apply(s W, c C, _ float64) ([]Term[W, C], error) {
	t, err := g.resolve()
	if err != nil {
		return nil, err
	}
	local, err := localSymbols(s, g.QInds)
	if err != nil {
		return nil, err
	}
	v, err := pauli.FromSymbols[uint8](local)
	if err != nil {
		return nil, err
	}
	imgV, sign := t.Apply(v)
	imgSymbols, err := pauli.ToSymbols[uint8](imgV, t.NQubits)
	if err != nil {
		return nil, err
	}
	out, err := writeLocalSymbols(s, g.QInds, imgSymbols)
	if err != nil {
		return nil, err
	}
	return []Term[W, C]{{String: out, Coeff: c.Scale(sign.Real())}}, nil
}

func (g *Clifford[W, C]) RequiresMerging() bool { return false }
func (g *Clifford[W, C]) IsParametrized() bool  { return false }

// Transpose returns a new Clifford gate over the same qubit indices whose
// table is this gate's Schrödinger-mode transpose, resolved and cached in
// the registry on first use.
func (g *Clifford[W, C]) Transpose() (*Clifford[W, C], error) {
	if _, err := g.resolve(); err != nil {
		return nil, err
	}
	inv, ok := lookupCliffordTranspose(g.Symbol)
	if !ok {
		return nil, perr.Wrap("gate.Clifford.Transpose", perr.ErrUnsupportedGate, g.Symbol)
	}
	return &Clifford[W, C]{Symbol: g.Symbol + "^T", QInds: g.QInds, table: inv}, nil
}
