// Package kernel implements the per-gate apply-to-all, merge, and truncate
// logic of spec §4.4/§4.5 against the cache of package cache. It type-
// switches on the concrete gate kinds of package gate to pick a
// specialization matching §4.4's description of where each kind's output
// terms land (in place in main, or into aux); anything that doesn't match a
// known kind — a user-defined gate, or any FrozenGate, whatever it wraps —
// falls back to the generic apply-and-add path, which is always correct (if not
// maximally allocation-free) because it routes every successor term through
// Sum.Add.
package kernel

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/perr"
)

// NoLimit marks a Predicates integer threshold as unset.
const NoLimit = -1

// Predicates bundles the truncation thresholds of §6.2: a term is dropped
// if it fails any configured check. MaxWeight, MaxFreq, and MaxSins use
// NoLimit to mean "no bound"; MinAbsCoeff of 0 already means no bound since
// Abs() is never negative.
type Predicates[W pauli.Word, C coeff.Coefficient[C]] struct {
	MinAbsCoeff float64
	MaxWeight   int
	MaxFreq     int
	MaxSins     int
	Custom      func(s W, c C) bool
}

// shouldTruncate evaluates pr against one term, short-circuiting on the
// first failing check. MaxFreq/MaxSins require a coeff.PathProperties
// coefficient; requesting them against a plain Numeric/Complex coefficient
// is a caller error surfaced as ErrIncompatibleCoefficient rather than
// silently ignored.
func shouldTruncate[W pauli.Word, C coeff.Coefficient[C]](s W, c C, pr Predicates[W, C]) (bool, error) {
	if pr.MaxWeight != NoLimit && pauli.Weight(s) > pr.MaxWeight {
		return true, nil
	}
	if c.Abs() < pr.MinAbsCoeff {
		return true, nil
	}
	if pr.MaxSins != NoLimit || pr.MaxFreq != NoLimit {
		pp, ok := any(c).(coeff.PathProperties)
		if !ok {
			return false, perr.Wrap("kernel.Truncate", perr.ErrIncompatibleCoefficient,
				"MaxSins/MaxFreq require a path-properties coefficient")
		}
		nSins, _, freq := pp.PathCounts()
		if pr.MaxSins != NoLimit && nSins > pr.MaxSins {
			return true, nil
		}
		if pr.MaxFreq != NoLimit && freq > pr.MaxFreq {
			return true, nil
		}
	}
	if pr.Custom != nil && pr.Custom(s, c) {
		return true, nil
	}
	return false, nil
}
