package propagate

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/kernel"
	"github.com/pauliprop/pauliprop/pauli"
)

// machineEpsilon is §6.2's default min_abs_coeff (2^-52, the standard
// double-precision machine epsilon; the standard library exposes no named
// constant for it).
const machineEpsilon = 2.220446049250313e-16

// Options bundles the threshold keyword set of §6.2. There is no
// functional-options API here, matching the teacher's plain-struct
// configuration style — but the zero value is NOT the spec default (in a
// bare Options{}, MaxWeight, MaxFreq and MaxSins are 0, a real bound rather
// than kernel.NoLimit, so every non-identity term is dropped and a
// surviving identity term with a numeric coefficient triggers
// ErrIncompatibleCoefficient; MinAbsCoeff 0 drops
// nothing; and it runs in Schrödinger order): callers should start from
// DefaultOptions and override only the fields they need.
type Options[W pauli.Word, C coeff.Coefficient[C]] struct {
	MinAbsCoeff    float64
	MaxWeight      int
	MaxFreq        int
	MaxSins        int
	CustomTruncate func(s W, c C) bool
	Heisenberg     bool
}

// DefaultOptions returns §6.2's documented defaults: machine-epsilon
// min_abs_coeff, no weight/freq/sins bound, no custom predicate, Heisenberg
// mode on.
func DefaultOptions[W pauli.Word, C coeff.Coefficient[C]]() Options[W, C] {
	return Options[W, C]{
		MinAbsCoeff: machineEpsilon,
		MaxWeight:   kernel.NoLimit,
		MaxFreq:     kernel.NoLimit,
		MaxSins:     kernel.NoLimit,
		Heisenberg:  true,
	}
}

func (o Options[W, C]) predicates() kernel.Predicates[W, C] {
	return kernel.Predicates[W, C]{
		MinAbsCoeff: o.MinAbsCoeff,
		MaxWeight:   o.MaxWeight,
		MaxFreq:     o.MaxFreq,
		MaxSins:     o.MaxSins,
		Custom:      o.CustomTruncate,
	}
}
