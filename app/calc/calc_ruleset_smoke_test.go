package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/vector"
)

func taikoMap() *beatmap.BeatMap {
	bm := beatmap.NewBeatMap()
	bm.Mode = beatmap.ModeTaiko
	bm.Diff.OD = 5
	bm.Control.AddTiming(0, 500)

	for i := 0; i < 8; i++ {
		sound := uint8(0)
		if i%2 == 0 {
			sound = 0x2 // whistle -> kat
		}

		bm.HitObjects = append(bm.HitObjects, &objects.HitObject{
			Type:      objects.TypeCircle,
			StartTime: float64(i) * 250,
			EndTime:   float64(i) * 250,
			HitSound:  sound,
		})
		bm.HitSounds = append(bm.HitSounds, sound)
	}

	return bm
}

func catchMap() *beatmap.BeatMap {
	bm := beatmap.NewBeatMap()
	bm.Mode = beatmap.ModeCatch
	bm.Diff.CS = 4
	bm.Control.AddTiming(0, 500)

	for i := 0; i < 6; i++ {
		bm.HitObjects = append(bm.HitObjects, &objects.HitObject{
			Type:      objects.TypeCircle,
			StartTime: float64(i) * 300,
			EndTime:   float64(i) * 300,
			Pos:       vector.NewVec2f(float32(50+i*60), 0),
		})
	}

	return bm
}

func keysMap() *beatmap.BeatMap {
	bm := beatmap.NewBeatMap()
	bm.Mode = beatmap.ModeMania
	bm.Diff.CS = 4
	bm.Control.AddTiming(0, 500)

	for i := 0; i < 8; i++ {
		col := i % 4
		bm.HitObjects = append(bm.HitObjects, &objects.HitObject{
			Type:      objects.TypeCircle,
			StartTime: float64(i) * 200,
			EndTime:   float64(i) * 200,
			Pos:       vector.NewVec2f(float32(col*128+64), 0),
		})
	}

	return bm
}

func TestDifficultyAllModesSmoke(t *testing.T) {
	for _, bm := range []*beatmap.BeatMap{taikoMap(), catchMap(), keysMap()} {
		attrs, err := Difficulty(bm, 0)
		require.NoError(t, err)
		assert.Equal(t, bm.Mode, attrs.Mode)
		assert.GreaterOrEqual(t, attrs.Stars(), 0.0)
	}
}
