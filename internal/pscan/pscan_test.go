package pscan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pauliprop/pauliprop/internal/pscan"
)

func TestFlags2Offsets(t *testing.T) {
	flags := []bool{true, false, true, true, false}
	offsets := make([]int, len(flags))
	total := pscan.Flags2Offsets(flags, offsets)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int{0, 1, 1, 2, 3}, offsets)
}

func TestParallelFlags2OffsetsMatchesSequential(t *testing.T) {
	n := 10000
	flags := make([]bool, n)
	for i := range flags {
		flags[i] = i%3 == 0
	}
	seqOffsets := make([]int, n)
	seqTotal := pscan.Flags2Offsets(flags, seqOffsets)

	parOffsets := make([]int, n)
	parTotal, err := pscan.ParallelFlags2Offsets(context.Background(), flags, parOffsets, 8)
	require.NoError(t, err)

	assert.Equal(t, seqTotal, parTotal)
	assert.Equal(t, seqOffsets, parOffsets)
}

func TestParallelForVisitsEveryIndex(t *testing.T) {
	n := 5000
	seen := make([]int32, n)
	err := pscan.ParallelFor(context.Background(), n, 4, func(i int) {
		seen[i] = int32(i)
	})
	require.NoError(t, err)
	for i, v := range seen {
		assert.Equal(t, int32(i), v)
	}
}
