package taiko

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizePerfectAccuracy(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 200, MaxCombo: 200}

	acc := 1.0
	state := Synthesize(attrs, ScoreInputs{Accuracy: &acc})

	assert.Equal(t, 200, state.N300)
	assert.Equal(t, 0, state.N100)
	assert.Equal(t, 0, state.NMiss)
}

func TestSynthesizeHalfAccuracySplitsEvenly(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	acc := 0.5
	state := Synthesize(attrs, ScoreInputs{Accuracy: &acc})

	assert.Equal(t, 0, state.N300)
	assert.Equal(t, 100, state.N100)
}

func TestSynthesizeWithMisses(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	miss := 20
	n300 := 60
	state := Synthesize(attrs, ScoreInputs{NMiss: &miss, N300: &n300})

	assert.Equal(t, 20, state.NMiss)
	assert.Equal(t, 60, state.N300)
	assert.Equal(t, 20, state.N100)
	assert.Equal(t, 80, state.MaxCombo)
}
