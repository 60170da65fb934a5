// Package beatmap holds the ruleset-independent beatmap entities and
// control-point timelines described by spec §3 — the data model every
// RulesetConverter consumes.
package beatmap

import (
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
)

// Mode tags which ruleset a beatmap was authored for.
type Mode uint8

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// Attributes bundles the four base difficulty values plus the slider
// timing parameters, exactly as decoded from a beatmap's [Difficulty]
// section.
type Attributes struct {
	AR, CS, HP, OD float64

	SliderMultiplier float64
	SliderTickRate   float64

	StackLeniency float64
}

func (a Attributes) GetCS(mods difficulty.Mods) float64 { return applyHRAndEZ(a.CS, mods, 1.3, 1) }
func (a Attributes) GetAR(mods difficulty.Mods) float64 { return applyHRAndEZ(a.AR, mods, 1.4, 0.5) }
func (a Attributes) GetOD(mods difficulty.Mods) float64 { return applyHRAndEZ(a.OD, mods, 1.4, 0.5) }
func (a Attributes) GetHP(mods difficulty.Mods) float64 { return applyHRAndEZ(a.HP, mods, 1.4, 0.5) }

func applyHRAndEZ(base float64, mods difficulty.Mods, hrMult, ezMult float64) float64 {
	v := base

	if mods.HR() {
		v = clampRange(v*hrMult, 0, 10)
	} else if mods.EZ() {
		v = clampRange(v*ezMult, 0, 10)
	}

	return v
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

// BeatMap bundles the full decoded chart (spec §3). HitObjects and
// HitSounds are parallel slices (|HitObjects| == |HitSounds|).
type BeatMap struct {
	FormatVersion int
	Mode          Mode

	Diff Attributes

	Control *difficulty.ControlPoints

	HitObjects []*objects.HitObject
	HitSounds  []uint8

	StackLeniency float64
}

func NewBeatMap() *BeatMap {
	return &BeatMap{Control: difficulty.NewControlPoints(), Diff: Attributes{SliderMultiplier: 1, SliderTickRate: 1, StackLeniency: 0.7}}
}
