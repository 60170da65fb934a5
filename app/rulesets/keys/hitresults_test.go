package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeKeysFullySpecified(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	n320, n300, n200, n100, n50 := 90, 5, 3, 1, 1
	state := Synthesize(attrs, ScoreInputs{N320: &n320, N300: &n300, N200: &n200, N100: &n100, N50: &n50})

	assert.Equal(t, 90, state.N320)
	assert.Equal(t, 5, state.N300)
	assert.Equal(t, 3, state.N200)
	assert.Equal(t, 1, state.N100)
	assert.Equal(t, 1, state.N50)
}

func TestSynthesizeKeysUnspecifiedDefaultsToBestCase(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	state := Synthesize(attrs, ScoreInputs{})

	assert.Equal(t, 100, state.N320)
}

func TestSynthesizeKeysClassicShiftsN320IntoN300(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	n320 := 100
	state := Synthesize(attrs, ScoreInputs{N320: &n320, Classic: true})

	assert.Equal(t, 0, state.N320)
	assert.Equal(t, 100, state.N300)
}

func TestSynthesizeKeysWithMisses(t *testing.T) {
	attrs := DifficultyAttributes{NObjects: 100, MaxCombo: 100}

	miss := 15
	state := Synthesize(attrs, ScoreInputs{NMiss: &miss})

	assert.Equal(t, 15, state.NMiss)
	assert.Equal(t, 85, state.MaxCombo)
	assert.Equal(t, 85, state.N320)
}
