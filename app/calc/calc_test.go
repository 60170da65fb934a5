package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/vector"
)

func simpleStandardMap() *beatmap.BeatMap {
	bm := beatmap.NewBeatMap()
	bm.Mode = beatmap.ModeOsu
	bm.Diff.CS = 4
	bm.Diff.AR = 9
	bm.Diff.OD = 8
	bm.Control.AddTiming(0, 333.333)

	for i := 0; i < 5; i++ {
		bm.HitObjects = append(bm.HitObjects, &objects.HitObject{
			Type:      objects.TypeCircle,
			StartTime: float64(i) * 300,
			EndTime:   float64(i) * 300,
			Pos:       vector.NewVec2f(float32(100+i*20), 100),
		})
	}

	return bm
}

func TestDifficultyDispatchesByMode(t *testing.T) {
	bm := simpleStandardMap()

	attrs, err := Difficulty(bm, 0)
	require.NoError(t, err)

	assert.Equal(t, beatmap.ModeOsu, attrs.Mode)
	assert.GreaterOrEqual(t, attrs.Stars(), 0.0)
}

func TestPerformanceForDispatchesByMode(t *testing.T) {
	bm := simpleStandardMap()

	attrs, err := Difficulty(bm, 0)
	require.NoError(t, err)

	state := difficulty.ScoreState{MaxCombo: attrs.Osu.MaxCombo, N300: 5}
	perf := PerformanceFor(attrs, state, 0)

	assert.Equal(t, beatmap.ModeOsu, perf.Mode)
	assert.GreaterOrEqual(t, perf.PP(), 0.0)
}
