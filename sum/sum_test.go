package sum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/sum"
)

func TestKeyedAddMerges(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](1)
	z, err := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Z})
	require.NoError(t, err)

	k.Add(z, coeff.Numeric(1))
	k.Add(z, coeff.Numeric(2))
	assert.Equal(t, coeff.Numeric(3), k.Coeff(z))
	assert.Equal(t, 1, k.Length())
}

func TestKeyedSetOverwrites(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](1)
	x, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.X})
	k.Set(x, coeff.Numeric(1))
	k.Set(x, coeff.Numeric(5))
	assert.Equal(t, coeff.Numeric(5), k.Coeff(x))
}

func TestKeyedAbsentIsZero(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](1)
	i, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.I})
	assert.Equal(t, coeff.Numeric(0), k.Coeff(i))
}

func TestKeyedMergeInto(t *testing.T) {
	dst := sum.NewKeyed[uint8, coeff.Numeric](1)
	src := sum.NewKeyed[uint8, coeff.Numeric](1)
	x, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.X})
	z, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Z})
	dst.Set(x, coeff.Numeric(1))
	src.Set(x, coeff.Numeric(2))
	src.Set(z, coeff.Numeric(4))

	sum.MergeInto(dst, src)
	assert.Equal(t, coeff.Numeric(3), dst.Coeff(x))
	assert.Equal(t, coeff.Numeric(4), dst.Coeff(z))
	assert.Equal(t, 0, src.Length())
}

func TestDenseAddDeduplicates(t *testing.T) {
	d := sum.NewDense[uint8, coeff.Numeric](1, 0)
	z, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Z})
	d.Add(z, coeff.Numeric(1))
	d.Add(z, coeff.Numeric(2))
	assert.Equal(t, 1, d.ActiveSize())
	assert.Equal(t, coeff.Numeric(3), d.Coeff(z))
}

func TestDenseEnsureCapacityDoublesAndPreservesData(t *testing.T) {
	d := sum.NewDenseFromTerm[uint8](1, mustWord(pauli.X), coeff.Numeric(1))
	require.NoError(t, d.EnsureCapacity(5))
	assert.GreaterOrEqual(t, d.Capacity(), 5)
	assert.Equal(t, coeff.Numeric(1), d.Coeff(mustWord(pauli.X)))
}

func TestDenseWriteAtAndActiveSize(t *testing.T) {
	d := sum.NewDense[uint8, coeff.Numeric](1, 0)
	require.NoError(t, d.EnsureCapacity(2))
	d.WriteAt(0, mustWord(pauli.X), coeff.Numeric(1))
	d.WriteAt(1, mustWord(pauli.Z), coeff.Numeric(2))
	d.SetActiveSize(2)
	assert.Equal(t, 2, d.Length())
	assert.Equal(t, coeff.Numeric(1), d.Coeff(mustWord(pauli.X)))
	assert.Equal(t, coeff.Numeric(2), d.Coeff(mustWord(pauli.Z)))
}

func TestCloneIsIndependent(t *testing.T) {
	d := sum.NewDenseFromTerm[uint8](1, mustWord(pauli.X), coeff.Numeric(1))
	clone := d.Clone().(*sum.Dense[uint8, coeff.Numeric])
	d.Set(mustWord(pauli.X), coeff.Numeric(99))
	assert.Equal(t, coeff.Numeric(1), clone.Coeff(mustWord(pauli.X)))
}

func TestEqual(t *testing.T) {
	a := sum.NewKeyed[uint8, coeff.Numeric](1)
	b := sum.NewKeyed[uint8, coeff.Numeric](1)
	a.Set(mustWord(pauli.X), coeff.Numeric(1))
	b.Set(mustWord(pauli.X), coeff.Numeric(1))
	assert.True(t, sum.Equal[uint8, coeff.Numeric](a, b, 1e-12))

	b.Set(mustWord(pauli.X), coeff.Numeric(1.1))
	assert.False(t, sum.Equal[uint8, coeff.Numeric](a, b, 1e-12))
}

func TestScalarProductSymmetric(t *testing.T) {
	a := sum.NewKeyed[uint8, coeff.Numeric](1)
	b := sum.NewKeyed[uint8, coeff.Numeric](1)
	a.Set(mustWord(pauli.X), coeff.Numeric(2))
	a.Set(mustWord(pauli.Z), coeff.Numeric(3))
	b.Set(mustWord(pauli.X), coeff.Numeric(5))

	value := func(c coeff.Numeric) float64 { return float64(c) }
	ab := sum.ScalarProduct[uint8, coeff.Numeric](a, b, value)
	ba := sum.ScalarProduct[uint8, coeff.Numeric](b, a, value)
	assert.Equal(t, ab, ba)
	assert.Equal(t, 10.0, ab)
}

func TestAddSymbolBuildsSingleSiteString(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](3)
	require.NoError(t, sum.AddSymbol[uint8, coeff.Numeric](k, pauli.Z, 2, coeff.Numeric(1)))

	want, err := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.I, pauli.Z, pauli.I})
	require.NoError(t, err)
	assert.Equal(t, coeff.Numeric(1), k.Coeff(want))
}

func TestAddSymbolsBuildsMultiSiteString(t *testing.T) {
	k := sum.NewKeyed[uint8, coeff.Numeric](4)
	require.NoError(t, sum.AddSymbols[uint8, coeff.Numeric](k, []pauli.Symbol{pauli.X, pauli.Y}, []int{1, 3}, coeff.Numeric(2)))

	want, err := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.X, pauli.I, pauli.Y, pauli.I})
	require.NoError(t, err)
	assert.Equal(t, coeff.Numeric(2), k.Coeff(want))
}

func mustWord(s pauli.Symbol) uint8 {
	w, err := pauli.FromSymbols[uint8]([]pauli.Symbol{s})
	if err != nil {
		panic(err)
	}
	return w
}
