package gate

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
)

// FrozenGate is a parametrized gate with its angle bound at circuit
// construction time (§3.4): it behaves as a static gate at propagation
// time, substituting Parameter for whatever the driver would otherwise
// have popped off the parameter sequence.
type FrozenGate[W pauli.Word, C coeff.Coefficient[C]] struct {
	Inner     Applier[W, C]
	Parameter float64
}

func (g *FrozenGate[W, C]) Apply(s W, c C, _ float64) ([]Term[W, C], error) {
	return g.Inner.Apply(s, c, g.Parameter)
}

func (g *FrozenGate[W, C]) RequiresMerging() bool { return g.Inner.RequiresMerging() }
func (g *FrozenGate[W, C]) IsParametrized() bool  { return false }
