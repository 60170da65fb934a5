package taiko

import (
	"math"
	"sort"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/taiko/skills"
)

const colourWeight = 0.375 * 0.084375
const rhythmWeight = 0.2 * 0.084375
const staminaWeight = 0.375 * 0.084375

// Calculate runs the drum ruleset's difficulty pipeline (spec §4.5): three
// independent strain skills are zipped section-by-section into a single
// peak via nested L2/L1.5 norms, then collapsed the usual sorted-descending
// weighted-sum way.
func Calculate(bm *beatmap.BeatMap, mods difficulty.Mods) (DifficultyAttributes, error) {
	objs, err := Convert(bm, mods)
	if err != nil {
		return DifficultyAttributes{}, err
	}

	clockRate := mods.ClockRate()
	diffObjs := BuildDifficultyObjects(bm, objs, clockRate)

	colour := skills.NewColour()
	rhythm := skills.NewRhythm()
	stamina := skills.NewStamina(false)

	for i := range diffObjs {
		colour.Process(diffObjs, i)
		rhythm.Process(diffObjs, i)
		stamina.Process(diffObjs, i)
	}

	colourPeaks := colour.SectionPeaks()
	rhythmPeaks := rhythm.SectionPeaks()
	staminaPeaks := stamina.SectionPeaks()

	combined := zipPeaks(colourPeaks, rhythmPeaks, staminaPeaks)

	sort.Sort(sort.Reverse(sort.Float64Slice(combined)))

	combinedDiff := 0.0
	weight := 1.0

	for _, v := range combined {
		combinedDiff += v * weight
		weight *= difficulty.DecayWeight
	}

	stars := 0.0
	if combinedDiff > 0 {
		stars = 10.43 * math.Log(combinedDiff*1.4/8+1)
	}

	colourRating := sumPeaks(colourPeaks) * colourWeight
	rhythmRating := sumPeaks(rhythmPeaks) * rhythmWeight
	staminaRating := sumPeaks(staminaPeaks) * staminaWeight

	// The input is a std->drum convert, not a native chart: multi-input
	// abuse on converts isn't detected the way it is on native maps, so
	// star rating is knocked down, further still on low-colour/high-stamina
	// converts where alternating inputs are most easily substituted.
	if bm.Mode == beatmap.ModeOsu {
		stars *= 0.925

		if colourRating < 2 && staminaRating > 8 {
			stars *= 0.80
		}
	}

	hw := newHitWindows(bm.Diff.GetOD(mods))

	return DifficultyAttributes{
		Stars:         stars,
		ColourRating:  colourRating,
		RhythmRating:  rhythmRating,
		StaminaRating: staminaRating,
		MaxCombo:      len(objs),
		NObjects:      len(objs),

		GreatHitWindow: hw.great,
		OkHitWindow:    hw.ok,
	}, nil
}

// zipPeaks combines three parallel per-section strain sequences using the
// nested-norm shape of spec §4.5: L2(L1.5(colour, stamina), rhythm). Only
// sections where the combined peak is positive are kept, since an all-zero
// section never contributes to the weighted sum (and would otherwise cost
// the following sort its usual time complexity on long, quiet maps).
func zipPeaks(colour, rhythm, stamina []float64) []float64 {
	n := len(colour)
	if len(rhythm) > n {
		n = len(rhythm)
	}

	if len(stamina) > n {
		n = len(stamina)
	}

	out := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		c := at(colour, i) * colourWeight
		r := at(rhythm, i) * rhythmWeight
		s := at(stamina, i) * staminaWeight

		inner := math.Pow(math.Pow(c, 1.5)+math.Pow(s, 1.5), 1/1.5)
		peak := math.Sqrt(inner*inner + r*r)

		if peak > 0 {
			out = append(out, peak)
		}
	}

	return out
}

func at(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}

	return v[i]
}

func sumPeaks(peaks []float64) float64 {
	nonZero := make([]float64, 0, len(peaks))

	for _, v := range peaks {
		if v > 0 {
			nonZero = append(nonZero, v)
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(nonZero)))

	diff := 0.0
	weight := 1.0

	for _, v := range nonZero {
		diff += v * weight
		weight *= difficulty.DecayWeight
	}

	return diff
}

type hitWindows struct{ great, ok float64 }

func newHitWindows(od float64) hitWindows {
	return hitWindows{
		great: 50 - 3*od,
		ok:    120 - 8*od,
	}
}
