package osu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

func TestSynthesizeFullySpecified(t *testing.T) {
	attrs := DifficultyAttributes{NCircles: 80, NSliders: 20, NSpinners: 0, MaxCombo: 100}

	n300, n100, n50, miss := 95, 3, 1, 1
	state := Synthesize(attrs, ScoreInputs{N300: &n300, N100: &n100, N50: &n50, NMiss: &miss})

	assert.Equal(t, 95, state.N300)
	assert.Equal(t, 3, state.N100)
	assert.Equal(t, 1, state.N50)
	assert.Equal(t, 1, state.NMiss)
	assert.Equal(t, 99, state.MaxCombo)
}

func TestSynthesizePerfectAccuracyNoMisses(t *testing.T) {
	attrs := DifficultyAttributes{NCircles: 100, NSliders: 0, NSpinners: 0, MaxCombo: 100}

	acc := 1.0
	state := Synthesize(attrs, ScoreInputs{Accuracy: &acc})

	require.Equal(t, 100, state.N300+state.N100+state.N50+state.NMiss)
	assert.Equal(t, 100, state.N300)
	assert.Equal(t, 0, state.N100)
	assert.Equal(t, 0, state.N50)
}

func TestSynthesizeZeroAccuracyWorstCase(t *testing.T) {
	attrs := DifficultyAttributes{NCircles: 100, NSliders: 0, NSpinners: 0, MaxCombo: 100}

	acc := 0.0
	state := Synthesize(attrs, ScoreInputs{Accuracy: &acc, Priority: difficulty.PriorityWorstCase})

	assert.Equal(t, 100, state.N50)
	assert.Equal(t, 0, state.N300)
	assert.Equal(t, 0, state.N100)
}

func TestSynthesizeRespectsMissCount(t *testing.T) {
	attrs := DifficultyAttributes{NCircles: 50, NSliders: 50, NSpinners: 0, MaxCombo: 100}

	miss := 10
	state := Synthesize(attrs, ScoreInputs{NMiss: &miss})

	assert.Equal(t, 10, state.NMiss)
	assert.Equal(t, 90, state.N300+state.N100+state.N50)
}

func TestSynthesizeTotalAlwaysMatchesObjectCount(t *testing.T) {
	attrs := DifficultyAttributes{NCircles: 37, NSliders: 13, NSpinners: 2, MaxCombo: 60}

	n100 := 5
	state := Synthesize(attrs, ScoreInputs{N100: &n100})

	total := state.N300 + state.N100 + state.N50 + state.NMiss
	assert.Equal(t, 52, total)
}
