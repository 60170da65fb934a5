package keys

import (
	"math"
	"sort"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Convert implements the keys leg of RulesetConverter (spec §4.1): keys
// maps are only convertible to themselves, every other source mode is
// refused.
func Convert(bm *beatmap.BeatMap, mods difficulty.Mods) ([]*PlayableObject, int, error) {
	if bm.Mode != beatmap.ModeMania {
		return nil, 0, &difficulty.ConvertError{From: "non-keys", To: "keys", Reason: difficulty.Incompatible}
	}

	columns := columnCount(bm, mods)

	out := make([]*PlayableObject, 0, len(bm.HitObjects))

	for _, h := range bm.HitObjects {
		// Every keys object (circle or hold) encodes its column purely via X
		// position, unlike every other ruleset where X is a playfield
		// coordinate; Column is only populated by the decoder for holds, so
		// circles are re-derived here rather than trusting a zero default.
		col := columnFromX(float64(h.Pos.X), columns)

		if col >= columns {
			col = columns - 1
		}

		end := h.StartTime
		if h.IsHold() {
			end = h.EndTime
		}

		out = append(out, &PlayableObject{Column: col, StartTime: h.StartTime, EndTime: end})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })

	return out, columns, nil
}

// columnCount derives the key count directly from the raw CS value: unlike
// every other ruleset, mania's CS is a column count, not a circle size, so
// it is never scaled by HR/EZ.
func columnCount(bm *beatmap.BeatMap, mods difficulty.Mods) int {
	cols := int(math.Round(bm.Diff.CS))
	if cols < 1 {
		cols = 1
	}

	if cols > 18 {
		cols = 18
	}

	return cols
}

func columnFromX(x float64, columns int) int {
	col := int(x * float64(columns) / 512.0)
	if col < 0 {
		col = 0
	}

	if col >= columns {
		col = columns - 1
	}

	return col
}
