package gate

import (
	"math"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
)

// NoiseKind selects which single-qubit Paulis a PauliNoise channel damps.
type NoiseKind int

const (
	// Dephasing damps X and Y (randomizes phase, leaves Z populations alone).
	Dephasing NoiseKind = iota
	// BitFlip damps Y and Z (randomizes the computational-basis bit).
	BitFlip
	// Depolarizing damps X, Y, and Z uniformly.
	Depolarizing
)

func (k NoiseKind) damps(s pauli.Symbol) bool {
	switch k {
	case Dephasing:
		return s == pauli.X || s == pauli.Y
	case BitFlip:
		return s == pauli.Y || s == pauli.Z
	case Depolarizing:
		return s != pauli.I
	default:
		return false
	}
}

// PauliNoise is the diagonal channel of §3.4: scales the coefficient by
// (1-strength) when the site carries a Pauli this Kind damps; identity
// channels (site is I, or the site's symbol is not damped by Kind) leave
// the coefficient untouched.
type PauliNoise[W pauli.Word, C coeff.Coefficient[C]] struct {
	QInd     int
	Strength float64
	Kind     NoiseKind
}

func (g *PauliNoise[W, C]) Apply(s W, c C, _ float64) ([]Term[W, C], error) {
	sym, err := pauli.Get(s, g.QInd)
	if err != nil {
		return nil, err
	}
	if g.Kind.damps(sym) {
		c = c.Scale(1 - g.Strength)
	}
	return []Term[W, C]{{String: s, Coeff: c}}, nil
}

func (g *PauliNoise[W, C]) RequiresMerging() bool { return false }
func (g *PauliNoise[W, C]) IsParametrized() bool  { return false }

// AmplitudeDampingNoise is the T1-relaxation channel of §3.4: diagonal
// scale by sqrt(1-gamma) for X/Y at QInd, and a branch for Z into
// (Z, 1-gamma) + (I, gamma). The identity-bearing branch is written with
// add, not set, because the resulting all-I-at-this-site pattern may
// collide with an existing term.
type AmplitudeDampingNoise[W pauli.Word, C coeff.Coefficient[C]] struct {
	QInd  int
	Gamma float64
}

func (g *AmplitudeDampingNoise[W, C]) Apply(s W, c C, _ float64) ([]Term[W, C], error) {
	sym, err := pauli.Get(s, g.QInd)
	if err != nil {
		return nil, err
	}
	switch sym {
	case pauli.I:
		return []Term[W, C]{{String: s, Coeff: c}}, nil
	case pauli.X, pauli.Y:
		return []Term[W, C]{{String: s, Coeff: c.Scale(math.Sqrt(1 - g.Gamma))}}, nil
	case pauli.Z:
		identity, err := pauli.Set(s, g.QInd, pauli.I)
		if err != nil {
			return nil, err
		}
		return []Term[W, C]{
			{String: s, Coeff: c.Scale(1 - g.Gamma)},
			{String: identity, Coeff: c.Scale(g.Gamma)},
		}, nil
	default:
		return nil, perr.Wrap("gate.AmplitudeDampingNoise.Apply", perr.ErrOutOfRangePauli, "")
	}
}

func (g *AmplitudeDampingNoise[W, C]) RequiresMerging() bool { return true }
func (g *AmplitudeDampingNoise[W, C]) IsParametrized() bool  { return false }
