package beatmapio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/starcalc/app/beatmap"
)

const sampleBeatmap = `osu file format v14

[General]
Mode: 0
StackLeniency: 0.7

[Difficulty]
CircleSize:4
OverallDifficulty:8
ApproachRate:9
HPDrainRate:5
SliderMultiplier:1.4
SliderTickRate:1

[TimingPoints]
0,333.333,4,2,0,60,1,0

[HitObjects]
100,100,1000,1,0,0:0:0:0:
200,200,1500,1,0,0:0:0:0:
150,150,2000,2,0,B|200:100|250:150,1,150
`

func TestDecodeBasicBeatmap(t *testing.T) {
	bm, err := Decode(strings.NewReader(sampleBeatmap))
	require.NoError(t, err)

	assert.Equal(t, 14, bm.FormatVersion)
	assert.Equal(t, beatmap.ModeOsu, bm.Mode)
	assert.Equal(t, 4.0, bm.Diff.CS)
	assert.Equal(t, 8.0, bm.Diff.OD)
	assert.Equal(t, 9.0, bm.Diff.AR)
	assert.Len(t, bm.HitObjects, 3)
	assert.True(t, bm.HitObjects[0].IsCircle())
	assert.True(t, bm.HitObjects[2].IsSlider())
}

func TestDecodeRejectsNaNBeatLength(t *testing.T) {
	raw := `[TimingPoints]
0,NaN,4,2,0,60,1,0
`
	_, err := Decode(strings.NewReader(raw))
	assert.Error(t, err)
}

func TestDecodeClampsOutOfRangeCoordinates(t *testing.T) {
	raw := `[HitObjects]
999999,999999,1000,1,0,0:0:0:0:
`
	bm, err := Decode(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, bm.HitObjects, 1)

	assert.LessOrEqual(t, float64(bm.HitObjects[0].Pos.X), float64(maxCoordinate))
}
