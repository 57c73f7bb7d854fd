package gate

import (
	"math"
	"sync"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
)

// PauliRotation is exp(-i*theta/2*P) for a generator P = tensor of Symbols
// on QInds. Heisenberg conjugation of an input term either leaves it
// unchanged (P commutes with the term) or splits it into a cosine branch
// (the original string, coefficient scaled by cos theta) and a sine branch
// (the term multiplied through by P, coefficient scaled by sin theta * s),
// per §3.4/§4.4. s is derived from the phase of the Pauli product rather
// than hand-pinned per gate, so every rotation (including the Clifford
// quarter-turns in clifford_registry.go) shares one sign convention.
type PauliRotation[W pauli.Word, C coeff.Rotatable[C]] struct {
	Symbols []pauli.Symbol
	QInds   []int

	once      sync.Once
	generator W
	buildErr  error
}

func (g *PauliRotation[W, C]) resolveGenerator() (W, error) {
	g.once.Do(func() {
		g.generator, g.buildErr = buildLocalString[W](g.Symbols, g.QInds)
	})
	return g.generator, g.buildErr
}

func (g *PauliRotation[W, C]) Apply(s W, c C, theta float64) ([]Term[W, C], error) {
	p, err := g.resolveGenerator()
	if err != nil {
		return nil, err
	}
	if pauli.Commutes(p, s) {
		return []Term[W, C]{{String: s, Coeff: c}}, nil
	}
	ph, prod := pauli.Product(p, s)
	sign := pauli.MinusI.Mul(ph).Real()
	cosCoeff := c.MulCos(math.Cos(theta))
	sinCoeff := c.MulSin(sign * math.Sin(theta))
	return []Term[W, C]{
		{String: s, Coeff: cosCoeff},
		{String: prod, Coeff: sinCoeff},
	}, nil
}

func (g *PauliRotation[W, C]) RequiresMerging() bool { return true }
func (g *PauliRotation[W, C]) IsParametrized() bool  { return true }
