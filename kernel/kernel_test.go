package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauliprop/pauliprop/cache"
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/kernel"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/sum"
)

func oneSite(s pauli.Symbol) uint8 {
	w, err := pauli.FromSymbols[uint8]([]pauli.Symbol{s})
	if err != nil {
		panic(err)
	}
	return w
}

func TestApplyToAllCliffordKeyedSwapsInImages(t *testing.T) {
	h, err := gate.NewClifford[uint8, coeff.Numeric]("H", []int{1})
	require.NoError(t, err)

	c := cache.New[uint8, coeff.Numeric](sum.NewKeyedFromTerm[uint8, coeff.Numeric](1, oneSite(pauli.X), coeff.Numeric(1)))
	require.NoError(t, kernel.ApplyToAll[uint8, coeff.Numeric](c, h, 0))

	assert.Equal(t, coeff.Numeric(1), c.Main.Coeff(oneSite(pauli.Z)))
	assert.Equal(t, 1, c.Main.Length())
}

func TestApplyToAllRotationKeyedThenMerge(t *testing.T) {
	rot := &gate.PauliRotation[uint8, coeff.Numeric]{Symbols: []pauli.Symbol{pauli.X}, QInds: []int{1}}
	c := cache.New[uint8, coeff.Numeric](sum.NewKeyedFromTerm[uint8, coeff.Numeric](1, oneSite(pauli.Z), coeff.Numeric(1)))

	require.NoError(t, kernel.ApplyToAll[uint8, coeff.Numeric](c, rot, math.Pi/2))
	kernel.Merge[uint8, coeff.Numeric](c)

	assert.InDelta(t, 0, float64(c.Main.Coeff(oneSite(pauli.Z))), 1e-12)
	assert.InDelta(t, -1, float64(c.Main.Coeff(oneSite(pauli.Y))), 1e-12)
}

func TestApplyToAllCliffordKeyedTwiceInARowDoesNotLeakStaleMain(t *testing.T) {
	h, err := gate.NewClifford[uint8, coeff.Numeric]("H", []int{1})
	require.NoError(t, err)

	c := cache.New[uint8, coeff.Numeric](sum.NewKeyedFromTerm[uint8, coeff.Numeric](1, oneSite(pauli.X), coeff.Numeric(1)))
	require.NoError(t, kernel.ApplyToAll[uint8, coeff.Numeric](c, h, 0))
	require.NoError(t, kernel.ApplyToAll[uint8, coeff.Numeric](c, h, 0))

	assert.Equal(t, 1, c.Main.Length())
	assert.Equal(t, coeff.Numeric(1), c.Main.Coeff(oneSite(pauli.X)))
}

func TestApplyToAllDefaultKeyedFrozenRotationDoesNotLeakStaleMainAcrossLayers(t *testing.T) {
	rot := &gate.PauliRotation[uint8, coeff.Numeric]{Symbols: []pauli.Symbol{pauli.X}, QInds: []int{1}}
	frozen := &gate.FrozenGate[uint8, coeff.Numeric]{Inner: rot, Parameter: math.Pi / 2}

	c := cache.New[uint8, coeff.Numeric](sum.NewKeyedFromTerm[uint8, coeff.Numeric](1, oneSite(pauli.Z), coeff.Numeric(1)))

	for i := 0; i < 2; i++ {
		require.NoError(t, kernel.ApplyToAll[uint8, coeff.Numeric](c, frozen, 0))
		if frozen.RequiresMerging() {
			kernel.Merge[uint8, coeff.Numeric](c)
		}
	}

	// Two RX(pi/2) Heisenberg conjugations in a row send Z -> -Y -> -Z; a
	// leaking stale main would instead re-add the Z and Y terms from the
	// first layer back into the second layer's already-correct result.
	// Nothing truncates here, so the Y key survives with only the
	// floating-point cos(pi/2) residue as its coefficient.
	assert.Equal(t, 2, c.Main.Length())
	assert.InDelta(t, -1, float64(c.Main.Coeff(oneSite(pauli.Z))), 1e-12)
	assert.InDelta(t, 0, float64(c.Main.Coeff(oneSite(pauli.Y))), 1e-12)
}

func TestTruncateKeyedDropsSmallCoefficients(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](1)
	k.Set(oneSite(pauli.X), coeff.Numeric(0.9))
	k.Set(oneSite(pauli.Y), coeff.Numeric(0.1))

	require.NoError(t, kernel.Truncate[uint8, coeff.Numeric](k, kernel.Predicates[uint8, coeff.Numeric]{
		MinAbsCoeff: 0.5,
		MaxWeight:   kernel.NoLimit,
		MaxFreq:     kernel.NoLimit,
		MaxSins:     kernel.NoLimit,
	}))

	assert.Equal(t, 1, k.Length())
	assert.Equal(t, coeff.Numeric(0.9), k.Coeff(oneSite(pauli.X)))
}

func TestTruncateRequiresPathPropertiesForSinsBound(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](1)
	k.Set(oneSite(pauli.X), coeff.Numeric(1))

	err := kernel.Truncate[uint8, coeff.Numeric](k, kernel.Predicates[uint8, coeff.Numeric]{
		MinAbsCoeff: 0,
		MaxWeight:   kernel.NoLimit,
		MaxFreq:     kernel.NoLimit,
		MaxSins:     2,
	})
	assert.Error(t, err)
}

func newDenseCache(n int, s uint8, c coeff.Numeric) *cache.DenseCache[uint8, coeff.Numeric] {
	return &cache.DenseCache[uint8, coeff.Numeric]{
		Main: sum.NewDenseFromTerm[uint8, coeff.Numeric](n, s, c),
		Aux:  sum.NewDense[uint8, coeff.Numeric](n, 0),
	}
}

func TestDenseApplyToAllCliffordPreservesIndex(t *testing.T) {
	h, err := gate.NewClifford[uint8, coeff.Numeric]("H", []int{1})
	require.NoError(t, err)

	dc := newDenseCache(1, oneSite(pauli.X), coeff.Numeric(1))
	require.NoError(t, kernel.DenseApplyToAll[uint8, coeff.Numeric](dc, h, 0))

	require.Equal(t, 1, dc.Main.ActiveSize())
	assert.Equal(t, oneSite(pauli.Z), dc.Main.Terms()[0])
	assert.Equal(t, coeff.Numeric(1), dc.Main.Coeffs()[0])
}

func TestDenseApplyToAllRotationThenMerge(t *testing.T) {
	rot := &gate.PauliRotation[uint8, coeff.Numeric]{Symbols: []pauli.Symbol{pauli.X}, QInds: []int{1}}
	dc := newDenseCache(1, oneSite(pauli.Z), coeff.Numeric(1))

	require.NoError(t, kernel.DenseApplyToAll[uint8, coeff.Numeric](dc, rot, math.Pi/2))
	require.Equal(t, 2, dc.Main.ActiveSize())

	require.NoError(t, kernel.MergeDense[uint8, coeff.Numeric](dc))
	require.Equal(t, 2, dc.Main.ActiveSize())

	byString := map[uint8]coeff.Numeric{}
	for i := 0; i < dc.Main.ActiveSize(); i++ {
		byString[dc.Main.Terms()[i]] = dc.Main.Coeffs()[i]
	}
	assert.InDelta(t, 0, float64(byString[oneSite(pauli.Z)]), 1e-12)
	assert.InDelta(t, -1, float64(byString[oneSite(pauli.Y)]), 1e-12)
}

func TestMergeDenseFoldsDuplicateKeys(t *testing.T) {
	dc := newDenseCache(1, oneSite(pauli.X), coeff.Numeric(1))
	require.NoError(t, dc.Main.EnsureCapacity(3))
	dc.Main.WriteAt(1, oneSite(pauli.Y), coeff.Numeric(2))
	dc.Main.WriteAt(2, oneSite(pauli.X), coeff.Numeric(3))
	dc.Main.SetActiveSize(3)

	require.NoError(t, kernel.MergeDense[uint8, coeff.Numeric](dc))
	require.Equal(t, 2, dc.Main.ActiveSize())

	byString := map[uint8]coeff.Numeric{}
	for i := 0; i < dc.Main.ActiveSize(); i++ {
		byString[dc.Main.Terms()[i]] = dc.Main.Coeffs()[i]
	}
	assert.Equal(t, coeff.Numeric(4), byString[oneSite(pauli.X)])
	assert.Equal(t, coeff.Numeric(2), byString[oneSite(pauli.Y)])
}

func TestTruncateDenseCompactsSurvivors(t *testing.T) {
	dc := newDenseCache(1, oneSite(pauli.X), coeff.Numeric(0.9))
	require.NoError(t, dc.Main.EnsureCapacity(2))
	dc.Main.WriteAt(1, oneSite(pauli.Y), coeff.Numeric(0.1))
	dc.Main.SetActiveSize(2)

	require.NoError(t, kernel.TruncateDense[uint8, coeff.Numeric](dc, kernel.Predicates[uint8, coeff.Numeric]{
		MinAbsCoeff: 0.5,
		MaxWeight:   kernel.NoLimit,
		MaxFreq:     kernel.NoLimit,
		MaxSins:     kernel.NoLimit,
	}))

	require.Equal(t, 1, dc.Main.ActiveSize())
	assert.Equal(t, oneSite(pauli.X), dc.Main.Terms()[0])
}
