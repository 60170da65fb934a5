package osu

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/osu/skills"
)

// GradualDriver wraps the standard ruleset's strain skills (spec §4.8) so
// that Next processes exactly one additional playable object and returns a
// snapshot of the attributes as if the chart ended there. DifficultyObjects
// only start existing from the second playable object onward (one object
// of lookback is needed for a delta time; the angle needs two and is left
// unset on the first), so the first call to Next returns a zero-strain
// snapshot carrying only the object counts seen so far.
type GradualDriver struct {
	mods      difficulty.Mods
	clockRate float64
	scale     ScalingFactor
	hw        HitWindows

	objs     []*PlayableObject
	diffObjs []*DifficultyObject

	aim          *skills.Aim
	aimNoSliders *skills.Aim
	speed        *skills.Speed
	flashlight   *skills.Flashlight

	processed  int // count of playable objects folded in so far
	diffCursor int // next unconsumed index into diffObjs
	arInput    float64
	odInput    float64
}

// NewGradualDriver converts the beatmap once and prepares the per-object
// skill state; it performs no strain processing until Next is called.
func NewGradualDriver(bm *beatmap.BeatMap, mods difficulty.Mods) (*GradualDriver, error) {
	objs, err := Convert(bm, mods)
	if err != nil {
		return nil, err
	}

	clockRate := mods.ClockRate()
	scale := NewScalingFactor(bm.Diff.GetCS(mods))
	hw := NewHitWindows(bm.Diff.GetOD(mods), clockRate)

	diffObjs := BuildDifficultyObjects(objs, clockRate, scale)

	return &GradualDriver{
		mods:         mods,
		clockRate:    clockRate,
		scale:        scale,
		hw:           hw,
		objs:         objs,
		diffObjs:     diffObjs,
		aim:          skills.NewAim(true),
		aimNoSliders: skills.NewAim(false),
		speed:        skills.NewSpeed(hw.Great),
		flashlight:   skills.NewFlashlight(mods.FL()),
		arInput:      bm.Diff.GetAR(mods),
		odInput:      bm.Diff.GetOD(mods),
	}, nil
}

// Total reports how many playable objects the underlying chart has.
func (g *GradualDriver) Total() int {
	return len(g.objs)
}

// Next folds in exactly one more playable object and returns a snapshot of
// the attributes as if the chart ended there.
func (g *GradualDriver) Next() (DifficultyAttributes, bool) {
	return g.Nth(1)
}

// Nth advances k playable objects in a single batch, returning the
// snapshot after the last one processed. The boolean result is false once
// every object has already been consumed.
func (g *GradualDriver) Nth(k int) (DifficultyAttributes, bool) {
	if g.processed >= len(g.objs) {
		return DifficultyAttributes{}, false
	}

	target := g.processed + k
	if target > len(g.objs) {
		target = len(g.objs)
	}

	for g.processed < target {
		// diffObjs skips the leading object and any spinner neighbourhood
		// (spec §4.2); only fold in the next one once the playable object
		// it's derived from has actually been reached.
		if g.diffCursor < len(g.diffObjs) && g.diffObjs[g.diffCursor].Base == g.objs[g.processed] {
			di := g.diffCursor

			g.aim.Process(g.diffObjs, di)
			g.aimNoSliders.Process(g.diffObjs, di)
			g.speed.Process(g.diffObjs, di)

			if g.mods.FL() {
				g.flashlight.Process(g.diffObjs, di)
			}

			g.diffCursor++
		}

		g.processed++
	}

	return g.snapshot(), true
}

func (g *GradualDriver) snapshot() DifficultyAttributes {
	aimDiff, aimStrains := g.aim.DifficultyValue()
	aimDiffNoSliders, _ := g.aimNoSliders.DifficultyValue()
	speedDiff, _ := g.speed.DifficultyValue()

	flashlightDiff := 0.0
	if g.mods.FL() {
		flashlightDiff, _ = g.flashlight.DifficultyValue()
	}

	sliderFactor := 1.0
	if aimDiff > 0 {
		sliderFactor = aimDiffNoSliders / aimDiff
	}

	aimTopWeightedCount := difficulty.CountTopWeightedStrains(aimStrains, aimDiff)

	if g.mods.TD() {
		aimDiff = math.Pow(aimDiff, 0.8)
		flashlightDiff = math.Pow(flashlightDiff, 0.8)
	}

	if g.mods.RX() {
		aimDiff *= 0.9
		speedDiff = 0
		flashlightDiff *= 0.7
	}

	if g.mods.AP() {
		speedDiff *= 0.5
		aimDiff = 0
		flashlightDiff *= 0.4
	}

	aimRating := ratingFromDiff(aimDiff)
	aimRatingNoSliders := ratingFromDiff(aimDiffNoSliders)
	speedRating := ratingFromDiff(speedDiff)
	flashlightRating := ratingFromDiff(flashlightDiff)

	aimPerf := difficultyToPerformance(aimDiff)
	speedPerf := difficultyToPerformance(speedDiff)
	stars := starsFromPerf(aimPerf, speedPerf)

	nCircles, nSliders, nSpinners, nLargeTicks := 0, 0, 0, 0

	for _, o := range g.objs[:g.processed] {
		switch {
		case o.IsCircle():
			nCircles++
		case o.IsSlider():
			nSliders++
			nLargeTicks += o.Repeats + 1
		case o.IsSpinner():
			nSpinners++
		}
	}

	return DifficultyAttributes{
		Stars:               stars,
		MaxCombo:            maxCombo(g.objs[:g.processed]),
		AimRating:           aimRating,
		AimRatingNoSliders:  aimRatingNoSliders,
		SpeedRating:         speedRating,
		FlashlightRating:    flashlightRating,
		SliderFactor:        sliderFactor,
		NCircles:            nCircles,
		NSliders:            nSliders,
		NSpinners:           nSpinners,
		NLargeTicks:         nLargeTicks,
		AR:                  g.arInput,
		OD:                  g.odInput,
		GreatHitWindow:      g.hw.Great,
		OkHitWindow:         g.hw.Ok,
		MehHitWindow:        g.hw.Meh,
		AimTopWeightedCount: aimTopWeightedCount,
	}
}

func ratingFromDiff(diff float64) float64 {
	if diff <= 0 {
		return 0
	}

	return math.Sqrt(diff) * 0.0675
}

func starsFromPerf(aimPerf, speedPerf float64) float64 {
	basePerf := math.Pow(math.Pow(aimPerf, 1.1)+math.Pow(speedPerf, 1.1), 1/1.1)

	if basePerf <= 1e-5 {
		return 0
	}

	return math.Cbrt(performanceBaseMultiplier) * 0.027 * (math.Cbrt(100000*basePerf/math.Pow(2, 1.0/1.1)) + 4)
}
