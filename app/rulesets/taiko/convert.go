package taiko

import (
	"math"
	"sort"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
)

const whistleOrClap = 0x2 | 0x8

// Convert implements the standard->drum and drum->drum legs of
// RulesetConverter (spec §4.1). Converting into keys is refused elsewhere;
// this function only ever produces drum objects.
func Convert(bm *beatmap.BeatMap, mods difficulty.Mods) ([]*PlayableObject, error) {
	switch bm.Mode {
	case beatmap.ModeTaiko:
		return convertNative(bm), nil
	case beatmap.ModeOsu:
		return convertFromStandard(bm), nil
	default:
		return nil, &difficulty.ConvertError{From: modeName(bm.Mode), To: "drum", Reason: difficulty.Incompatible}
	}
}

func modeName(m beatmap.Mode) string {
	switch m {
	case beatmap.ModeOsu:
		return "osu"
	case beatmap.ModeTaiko:
		return "taiko"
	case beatmap.ModeCatch:
		return "catch"
	case beatmap.ModeMania:
		return "mania"
	default:
		return "unknown"
	}
}

func convertNative(bm *beatmap.BeatMap) []*PlayableObject {
	out := make([]*PlayableObject, 0, len(bm.HitObjects))

	for i, h := range bm.HitObjects {
		if h.IsSpinner() {
			continue
		}

		sound := bm.HitSounds[i]

		out = append(out, &PlayableObject{
			StartTime: h.StartTime,
			Type:      hitTypeFromSound(sound),
			IsStrong:  sound&0x4 != 0,
		})
	}

	return out
}

func hitTypeFromSound(sound uint8) HitType {
	if sound&whistleOrClap != 0 {
		return Kat
	}

	return Don
}

// convertFromStandard implements the documented standard->drum conversion:
// circles pass through typed by hit sound, sliders whose speed-distance
// product is within the short-slider threshold are expanded into an evenly
// spaced hit sequence, holds become a single centre hit at their start, and
// spinners are dropped (they contribute no drum difficulty). The final
// list is stable-sorted by start time.
func convertFromStandard(bm *beatmap.BeatMap) []*PlayableObject {
	out := make([]*PlayableObject, 0, len(bm.HitObjects))

	for i, h := range bm.HitObjects {
		sound := bm.HitSounds[i]

		switch {
		case h.IsCircle():
			out = append(out, &PlayableObject{StartTime: h.StartTime, Type: hitTypeFromSound(sound), IsStrong: sound&0x4 != 0})
		case h.IsSlider():
			out = append(out, sliderToHits(bm, h)...)
		case h.IsHold():
			out = append(out, &PlayableObject{StartTime: h.StartTime, Type: Don})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })

	return out
}

func sliderToHits(bm *beatmap.BeatMap, h *objects.HitObject) []*PlayableObject {
	timing := bm.Control.TimingAt(h.StartTime)
	diffPoint := bm.Control.DifficultyAt(h.StartTime)

	beatLen := timing.BeatLen
	velocityMult := bpmMultiplier(diffPoint.SliderVelocity)

	duration := h.EndTime - h.StartTime
	spanCount := h.Repeats + 1

	spanDuration := 0.0
	if spanCount > 0 {
		spanDuration = duration / float64(spanCount)
	}

	speedDistProduct := h.ExpectedDist * float64(spanCount) / (velocityMult + 1e-9)

	if speedDistProduct <= 2*beatLen || duration <= 0 {
		tickDist := beatLen / math.Max(bm.Diff.SliderTickRate, 1)
		tickSpacing := math.Min(tickDist, spanDuration)

		if tickSpacing <= 0 {
			return []*PlayableObject{{StartTime: h.StartTime, Type: Don}}
		}

		count := int(math.Round(duration / tickSpacing))
		if count < 1 {
			count = 1
		}

		out := make([]*PlayableObject, 0, count+1)
		for i := 0; i <= count; i++ {
			out = append(out, &PlayableObject{StartTime: h.StartTime + float64(i)*tickSpacing, Type: Don})
		}

		return out
	}

	return []*PlayableObject{{StartTime: h.StartTime, Type: Don, IsStrong: true}}
}

func bpmMultiplier(sv float64) float64 {
	if sv < 0 {
		return clampRange(-sv, 10, 10000) / 100
	}

	return 1
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
