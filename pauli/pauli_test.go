package pauli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauliprop/pauliprop/pauli"
)

func TestGetSetRoundTrip(t *testing.T) {
	var p uint16
	p, err := pauli.Set(p, 1, pauli.X)
	require.NoError(t, err)
	p, err = pauli.Set(p, 2, pauli.Z)
	require.NoError(t, err)

	s1, err := pauli.Get(p, 1)
	require.NoError(t, err)
	assert.Equal(t, pauli.X, s1)

	s2, err := pauli.Get(p, 2)
	require.NoError(t, err)
	assert.Equal(t, pauli.Z, s2)
}

func TestGetOutOfRange(t *testing.T) {
	var p uint8
	_, err := pauli.Get(p, 0)
	require.Error(t, err)
	_, err = pauli.Get(p, 5)
	require.Error(t, err)
}

func TestFromToSymbols(t *testing.T) {
	symbols := []pauli.Symbol{pauli.I, pauli.X, pauli.Y}
	p, err := pauli.FromSymbols[uint8](symbols)
	require.NoError(t, err)
	back, err := pauli.ToSymbols[uint8](p, 3)
	require.NoError(t, err)
	assert.Equal(t, symbols, back)
}

func TestProductSelfIsIdentity(t *testing.T) {
	for _, s := range []pauli.Symbol{pauli.I, pauli.X, pauli.Y, pauli.Z} {
		p, err := pauli.FromSymbols[uint8]([]pauli.Symbol{s})
		require.NoError(t, err)
		phase, c := pauli.Product(p, p)
		assert.Equal(t, pauli.PlusOne, phase)
		assert.Equal(t, uint8(0), c)
	}
}

func TestProductAntisymmetricSign(t *testing.T) {
	x, err := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.X})
	require.NoError(t, err)
	y, err := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Y})
	require.NoError(t, err)

	phaseXY, cXY := pauli.Product(x, y)
	phaseYX, cYX := pauli.Product(y, x)
	assert.Equal(t, cXY, cYX)
	assert.Equal(t, pauli.PlusI, phaseXY)
	assert.Equal(t, pauli.MinusI, phaseYX)
}

func TestCommutesSameSymbol(t *testing.T) {
	z, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Z})
	assert.True(t, pauli.Commutes(z, z))
}

func TestCommutesDifferentSingleSiteAnticommute(t *testing.T) {
	x, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.X})
	y, _ := pauli.FromSymbols[uint8]([]pauli.Symbol{pauli.Y})
	assert.False(t, pauli.Commutes(x, y))
}

func TestWeight(t *testing.T) {
	p, err := pauli.FromSymbols[uint16]([]pauli.Symbol{pauli.I, pauli.X, pauli.I, pauli.Z})
	require.NoError(t, err)
	assert.Equal(t, 2, pauli.Weight(p))
}

func TestCountXorYAndYorZ(t *testing.T) {
	p, err := pauli.FromSymbols[uint16]([]pauli.Symbol{pauli.X, pauli.Y, pauli.Z, pauli.I})
	require.NoError(t, err)
	assert.Equal(t, 2, pauli.CountXorY(p)) // X, Y
	assert.Equal(t, 2, pauli.CountYorZ(p)) // Y, Z
}

func TestGetSetSitesUnsortedOrder(t *testing.T) {
	var p uint16
	p, err := pauli.Set(p, 1, pauli.X)
	require.NoError(t, err)
	p, err = pauli.Set(p, 2, pauli.Y)
	require.NoError(t, err)

	out, err := pauli.GetSites(p, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []pauli.Symbol{pauli.Y, pauli.X}, out)
}

func TestWideMatchesWordSemantics(t *testing.T) {
	symbols := []pauli.Symbol{pauli.X, pauli.Y, pauli.Z, pauli.I, pauli.X}
	w, err := pauli.FromSymbolsWide(symbols)
	require.NoError(t, err)

	back, err := w.ToSymbols()
	require.NoError(t, err)
	assert.Equal(t, symbols, back)
	assert.Equal(t, 4, w.Weight())
	assert.Equal(t, 3, w.CountXorY())
	assert.Equal(t, 2, w.CountYorZ())
}

func TestWideProductAndCommute(t *testing.T) {
	x, err := pauli.FromSymbolsWide([]pauli.Symbol{pauli.X})
	require.NoError(t, err)
	y, err := pauli.FromSymbolsWide([]pauli.Symbol{pauli.Y})
	require.NoError(t, err)

	phase, c, err := x.Product(y)
	require.NoError(t, err)
	assert.Equal(t, pauli.PlusI, phase)
	cz, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, pauli.Z, cz)

	commute, err := x.Commutes(y)
	require.NoError(t, err)
	assert.False(t, commute)
}
