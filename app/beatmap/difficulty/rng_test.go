package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyRandomDeterministic(t *testing.T) {
	a := NewLegacyRandom(1337)
	b := NewLegacyRandom(1337)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextDouble(), b.NextDouble(), "same seed must produce identical streams at index %d", i)
	}
}

func TestLegacyRandomRange(t *testing.T) {
	r := NewLegacyRandom(1337)

	for i := 0; i < 1000; i++ {
		v := r.NextDouble()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestLegacyRandomDifferentSeedsDiverge(t *testing.T) {
	a := NewLegacyRandom(1337)
	b := NewLegacyRandom(42)

	same := true

	for i := 0; i < 10; i++ {
		if a.NextDouble() != b.NextDouble() {
			same = false
			break
		}
	}

	assert.False(t, same, "different seeds should not produce the same stream")
}

func TestLegacyRandomNextRange(t *testing.T) {
	r := NewLegacyRandom(7)

	for i := 0; i < 500; i++ {
		v := r.NextRange(10, 20)
		assert.GreaterOrEqual(t, v, int32(10))
		assert.Less(t, v, int32(20))
	}
}
