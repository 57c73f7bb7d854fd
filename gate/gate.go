// Package gate implements the tagged-union gate taxonomy of spec §3.4: a
// term-level apply contract every gate variant satisfies, plus the
// concrete Clifford, PauliRotation, FrozenGate, PauliNoise, and
// AmplitudeDampingNoise variants. The sum-level and driver-level layers
// (package kernel, package propagate) accept any Applier; they type-switch
// on the concrete kinds above to pick specialized paths and send every
// other Applier through a generic path.
package gate

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
)

// Term is one successor of a term-level gate application.
type Term[W pauli.Word, C coeff.Coefficient[C]] struct {
	String W
	Coeff  C
}

// Applier is the term-level contract of §4.4's "apply": given one
// (string, coefficient) pair and this gate's bound parameter (ignored by
// static gates), return its successor terms. This is the minimal surface a
// user-defined gate must satisfy to plug into the propagation pipeline;
// the default apply-to-all and apply-and-add layers in package kernel work
// for any Applier without further overrides.
type Applier[W pauli.Word, C coeff.Coefficient[C]] interface {
	Apply(s W, c C, param float64) ([]Term[W, C], error)

	// RequiresMerging reports whether apply-to-all may leave duplicate
	// keys a subsequent merge pass must resolve. Clifford and PauliNoise
	// gates never collide by construction and report false, letting the
	// driver skip an O(n) merge pass after them (§4.4).
	RequiresMerging() bool

	// IsParametrized reports whether this gate consumes one scalar from
	// the driver's parameter sequence.
	IsParametrized() bool
}

// buildLocalString packs symbols onto qinds (1-indexed, arbitrary order)
// of an otherwise-identity string, used to build a rotation generator or a
// noise-site mask.
func buildLocalString[W pauli.Word](symbols []pauli.Symbol, qinds []int) (W, error) {
	return pauli.FromSymbolsAt[W](symbols, qinds)
}

func localSymbols[W pauli.Word](s W, qinds []int) ([]pauli.Symbol, error) {
	return pauli.GetSites(s, qinds)
}

func writeLocalSymbols[W pauli.Word](s W, qinds []int, symbols []pauli.Symbol) (W, error) {
	for i, q := range qinds {
		var err error
		s, err = pauli.Set(s, q, symbols[i])
		if err != nil {
			return s, err
		}
	}
	return s, nil
}
