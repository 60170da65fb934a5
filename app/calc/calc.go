// Package calc is the top-level dispatch layer (spec §2): it selects the
// right ruleset pipeline by a beatmap's Mode tag and exposes unified
// Difficulty/Performance/ScoreState entry points, the way a caller who
// doesn't want to import four ruleset packages directly would use this
// module.
package calc

import (
	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/catch"
	"github.com/wieku/starcalc/app/rulesets/keys"
	"github.com/wieku/starcalc/app/rulesets/osu"
	"github.com/wieku/starcalc/app/rulesets/taiko"
)

// Attributes is a tagged union over the four rulesets' DifficultyAttributes
// records; exactly one of the embedded fields is meaningful, selected by
// Mode.
type Attributes struct {
	Mode beatmap.Mode

	Osu   osu.DifficultyAttributes
	Taiko taiko.DifficultyAttributes
	Catch catch.DifficultyAttributes
	Keys  keys.DifficultyAttributes
}

// Stars returns the ruleset-appropriate star rating regardless of Mode.
func (a Attributes) Stars() float64 {
	switch a.Mode {
	case beatmap.ModeTaiko:
		return a.Taiko.Stars
	case beatmap.ModeCatch:
		return a.Catch.Stars
	case beatmap.ModeMania:
		return a.Keys.Stars
	default:
		return a.Osu.Stars
	}
}

// Performance is a tagged union over the four rulesets' PerformanceAttributes
// records.
type Performance struct {
	Mode beatmap.Mode

	Osu   osu.PerformanceAttributes
	Taiko taiko.PerformanceAttributes
	Catch catch.PerformanceAttributes
	Keys  keys.PerformanceAttributes
}

// PP returns the ruleset-appropriate pp value regardless of Mode.
func (p Performance) PP() float64 {
	switch p.Mode {
	case beatmap.ModeTaiko:
		return p.Taiko.PP
	case beatmap.ModeCatch:
		return p.Catch.PP
	case beatmap.ModeMania:
		return p.Keys.PP
	default:
		return p.Osu.PP
	}
}

// Difficulty runs the ruleset pipeline selected by bm.Mode (spec §4.1-4.5).
func Difficulty(bm *beatmap.BeatMap, mods difficulty.Mods) (Attributes, error) {
	switch bm.Mode {
	case beatmap.ModeTaiko:
		attrs, err := taiko.Calculate(bm, mods)
		return Attributes{Mode: bm.Mode, Taiko: attrs}, err
	case beatmap.ModeCatch:
		attrs, err := catch.Calculate(bm, mods)
		return Attributes{Mode: bm.Mode, Catch: attrs}, err
	case beatmap.ModeMania:
		attrs, err := keys.Calculate(bm, mods)
		return Attributes{Mode: bm.Mode, Keys: attrs}, err
	default:
		attrs, err := osu.Calculate(bm, mods)
		return Attributes{Mode: bm.Mode, Osu: attrs}, err
	}
}

// ScoreState is a ruleset-agnostic carrier for difficulty.ScoreState; keys
// and catch use a subset of its fields with ruleset-specific meaning
// (documented on their own Synthesize helpers).
type ScoreState = difficulty.ScoreState

// PerformanceFor computes performance attributes from already-computed
// difficulty attributes and a full ScoreState, dispatching by Mode.
func PerformanceFor(attrs Attributes, state ScoreState, mods difficulty.Mods) Performance {
	switch attrs.Mode {
	case beatmap.ModeTaiko:
		return Performance{Mode: attrs.Mode, Taiko: taiko.Performance(attrs.Taiko, state, mods)}
	case beatmap.ModeCatch:
		return Performance{Mode: attrs.Mode, Catch: catch.Performance(attrs.Catch, state, mods)}
	case beatmap.ModeMania:
		return Performance{Mode: attrs.Mode, Keys: keys.Performance(attrs.Keys, state, mods)}
	default:
		return Performance{Mode: attrs.Mode, Osu: osu.Performance(attrs.Osu, state, mods)}
	}
}
