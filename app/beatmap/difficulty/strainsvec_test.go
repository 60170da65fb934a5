package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrainsVecAllDecompressesZeroRuns(t *testing.T) {
	v := NewStrainsVec(8)

	input := []float64{1.5, 0, 0, 0, 2.25, 0, 3.0}

	for _, x := range input {
		v.Push(x)
	}

	require.Equal(t, len(input), v.Len())
	assert.Equal(t, input, v.All())
}

func TestStrainsVecNonZeroAndSortedDesc(t *testing.T) {
	v := NewStrainsVec(4)

	for _, x := range []float64{3, 0, 1, 0, 0, 5} {
		v.Push(x)
	}

	assert.Equal(t, []float64{3, 1, 5}, v.NonZero())
	assert.Equal(t, []float64{5, 3, 1}, v.SortedDesc())
}

func TestStrainsVecAllTrailingZeros(t *testing.T) {
	v := NewStrainsVec(4)

	for _, x := range []float64{1, 0, 0} {
		v.Push(x)
	}

	assert.Equal(t, []float64{1, 0, 0}, v.All())
	assert.Equal(t, 3, v.Len())
}
