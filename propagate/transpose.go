package propagate

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
)

// schrodingerTranspose returns the conjugate-transpose of one gate, and the
// parameter value to pair with it, per §4.5: a Clifford looks its transpose
// up in the registry (lazily built and cached there); a Pauli rotation's
// transpose is itself with the angle sign-flipped; a frozen gate recurses
// into its inner gate and flips its own baked parameter if that inner gate
// is a rotation; anything else (Pauli noise, amplitude damping, a
// user-defined gate) has no declared transpose in §4.5 and is passed
// through unchanged.
func schrodingerTranspose[W pauli.Word, C coeff.Rotatable[C]](g gate.Applier[W, C], param float64) (gate.Applier[W, C], float64, error) {
	switch gt := g.(type) {
	case *gate.Clifford[W, C]:
		t, err := gt.Transpose()
		if err != nil {
			return nil, 0, err
		}
		return t, param, nil
	case *gate.PauliRotation[W, C]:
		return gt, -param, nil
	case *gate.FrozenGate[W, C]:
		innerT, _, err := schrodingerTranspose[W, C](gt.Inner, gt.Parameter)
		if err != nil {
			return nil, 0, err
		}
		if _, ok := innerT.(*gate.PauliRotation[W, C]); ok {
			return &gate.FrozenGate[W, C]{Inner: innerT, Parameter: -gt.Parameter}, param, nil
		}
		return &gate.FrozenGate[W, C]{Inner: innerT, Parameter: gt.Parameter}, param, nil
	default:
		return g, param, nil
	}
}

// processCircuitAndParams checks the §4.5 precondition (parametrized-gate
// count equals parameter count) and returns the circuit/parameter pair the
// driver should actually iterate: reversed (both circuit and parameters)
// for Heisenberg mode, or gate-by-gate transposed in original order for
// Schrödinger mode.
func processCircuitAndParams[W pauli.Word, C coeff.Rotatable[C]](circuit Circuit[W, C], params []float64, heisenberg bool) (Circuit[W, C], []float64, error) {
	nParametrized := 0
	for _, g := range circuit {
		if g.IsParametrized() {
			nParametrized++
		}
	}
	if nParametrized != len(params) {
		return nil, nil, perr.Wrap("propagate.processCircuitAndParams", perr.ErrShapeMismatch,
			fmt.Sprintf("%d parametrized gates but %d parameters supplied", nParametrized, len(params)))
	}

	if heisenberg {
		return Circuit[W, C](lo.Reverse([]gate.Applier[W, C](circuit))), lo.Reverse(params), nil
	}

	transposed := make(Circuit[W, C], len(circuit))
	newParams := make([]float64, 0, len(params))
	pi := 0
	for i, g := range circuit {
		param := 0.0
		if g.IsParametrized() {
			param = params[pi]
			pi++
		}
		tg, tp, err := schrodingerTranspose[W, C](g, param)
		if err != nil {
			return nil, nil, err
		}
		transposed[i] = tg
		if g.IsParametrized() {
			newParams = append(newParams, tp)
		}
	}
	return transposed, newParams, nil
}
