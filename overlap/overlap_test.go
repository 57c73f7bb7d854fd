package overlap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/overlap"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/propagate"
	"github.com/pauliprop/pauliprop/sum"
)

func strOf(symbols ...pauli.Symbol) uint64 {
	w, err := pauli.FromSymbols[uint64](symbols)
	if err != nil {
		panic(err)
	}
	return w
}

func TestWithZeroIgnoresXAndY(t *testing.T) {
	s := sum.NewKeyed[uint64, coeff.Numeric](2)
	s.Add(strOf(pauli.I, pauli.I), coeff.Numeric(0.5))
	s.Add(strOf(pauli.Z, pauli.I), coeff.Numeric(0.25))
	s.Add(strOf(pauli.X, pauli.I), coeff.Numeric(10))

	got, err := overlap.WithZero[uint64, coeff.Numeric](s)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-12)
}

func TestWithPlusIgnoresYAndZ(t *testing.T) {
	s := sum.NewKeyed[uint64, coeff.Numeric](2)
	s.Add(strOf(pauli.I, pauli.I), coeff.Numeric(0.5))
	s.Add(strOf(pauli.X, pauli.I), coeff.Numeric(0.25))
	s.Add(strOf(pauli.Z, pauli.I), coeff.Numeric(10))

	got, err := overlap.WithPlus[uint64, coeff.Numeric](s)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-12)
}

func TestWithComputationalFlipsSignPerOneSite(t *testing.T) {
	s := sum.NewKeyed[uint64, coeff.Numeric](2)
	s.Add(strOf(pauli.I, pauli.I), coeff.Numeric(1))
	s.Add(strOf(pauli.Z, pauli.I), coeff.Numeric(2))
	s.Add(strOf(pauli.I, pauli.Z), coeff.Numeric(4))
	s.Add(strOf(pauli.X, pauli.I), coeff.Numeric(100))

	got, err := overlap.WithComputational[uint64, coeff.Numeric](s, []int{1})
	require.NoError(t, err)
	assert.InDelta(t, 1-2+4, got, 1e-12)
}

func TestTraceScalesIdentityCoeffByTwoToTheN(t *testing.T) {
	s := sum.NewKeyedFromTerm[uint64, coeff.Numeric](3, strOf(pauli.I, pauli.I, pauli.I), coeff.Numeric(0.5))
	s.Add(strOf(pauli.X, pauli.I, pauli.I), coeff.Numeric(99))

	got, err := overlap.Trace[uint64, coeff.Numeric](s)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*8, got, 1e-12)
}

func TestScalarProductSumsOverIntersection(t *testing.T) {
	a := sum.NewKeyed[uint64, coeff.Numeric](1)
	a.Add(strOf(pauli.Z), coeff.Numeric(2))
	a.Add(strOf(pauli.X), coeff.Numeric(3))

	b := sum.NewKeyed[uint64, coeff.Numeric](1)
	b.Add(strOf(pauli.Z), coeff.Numeric(5))

	got, err := overlap.ScalarProduct[uint64, coeff.Numeric](a, b)
	require.NoError(t, err)
	assert.InDelta(t, 10, got, 1e-12)
}

// TestOverlapWithComplexCoefficient confirms overlap operations work against
// Complex too, projecting to its real part via coeff.Valued.
func TestOverlapWithComplexCoefficient(t *testing.T) {
	s := sum.NewKeyed[uint64, coeff.Complex](1)
	s.Add(strOf(pauli.Z), coeff.Complex(complex(1, 2)))
	got, err := overlap.WithZero[uint64, coeff.Complex](s)
	require.NoError(t, err)
	assert.InDelta(t, 1, got, 1e-12)
}

// TestTFIMBricklayerOverlapMatchesReferenceValue runs a 32-qubit transverse-
// field-Ising bricklayer Trotter circuit (32 repetitions of an RX(0.1)
// layer followed by a ZZ(0.1) layer with alternating brick parity) evolving
// a single-site Z observable at site 16, truncated to max_weight=6 and
// min_abs_coeff=1e-4, and checks the resulting <0|Z_16(t)|0> overlap
// against the documented four-significant-digit reference value for this
// trajectory.
func TestTFIMBricklayerOverlapMatchesReferenceValue(t *testing.T) {
	const n = 32
	var circuit propagate.Circuit[uint64, coeff.Numeric]
	for layer := 0; layer < 32; layer++ {
		circuit.AppendLayer(propagate.RXLayer, n, 0.1, 0)
		circuit.AppendLayer(propagate.ZZLayer, n, 0.1, layer%2)
	}

	nParametrized := 0
	for _, g := range circuit {
		if g.IsParametrized() {
			nParametrized++
		}
	}
	params := make([]float64, nParametrized)

	symbols := make([]pauli.Symbol, n)
	symbols[15] = pauli.Z // site 16, 1-based
	seed := sum.NewKeyedFromTerm[uint64, coeff.Numeric](n, strOf(symbols...), coeff.Numeric(1))

	opts := propagate.DefaultOptions[uint64, coeff.Numeric]()
	opts.MaxWeight = 6
	opts.MinAbsCoeff = 1e-4

	out, err := propagate.Propagate[uint64, coeff.Numeric](circuit, seed, params, opts)
	require.NoError(t, err)

	got, err := overlap.WithZero[uint64, coeff.Numeric](out)
	require.NoError(t, err)
	assert.InDelta(t, 0.154596728241, got, 5e-5)
}
