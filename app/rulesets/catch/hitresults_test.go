package catch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeFullCatch(t *testing.T) {
	attrs := DifficultyAttributes{NFruits: 50, NDroplets: 30, NTinyDrops: 20, MaxCombo: 100}

	acc := 1.0
	state := Synthesize(attrs, ScoreInputs{Accuracy: &acc})

	assert.Equal(t, 50, state.N300)
	assert.Equal(t, 30, state.N100)
	assert.Equal(t, 20, state.N50)
	assert.Equal(t, 0, state.NMiss)
}

func TestSynthesizeCatchWithMisses(t *testing.T) {
	attrs := DifficultyAttributes{NFruits: 50, NDroplets: 0, NTinyDrops: 0, MaxCombo: 50}

	miss := 10
	state := Synthesize(attrs, ScoreInputs{NMiss: &miss})

	assert.Equal(t, 10, state.NMiss)
	assert.Equal(t, 40, state.MaxCombo)
	assert.Equal(t, 40, state.N300)
}

func TestSynthesizeCatchFruitFixed(t *testing.T) {
	attrs := DifficultyAttributes{NFruits: 50, NDroplets: 30, NTinyDrops: 20, MaxCombo: 100}

	fruits := 45
	state := Synthesize(attrs, ScoreInputs{NFruit: &fruits})

	assert.Equal(t, 45, state.N300)
}
