// Package replay decodes a .osr replay file into a ScoreState the core
// pipeline's HitResultSynth and PerformanceFormula can consume directly,
// using the same legacy replay parser danser-go depends on.
package replay

import (
	"fmt"
	"os"

	"github.com/wieku/rplpa"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Score bundles the judgement counts and mod bitfield decoded from a
// replay, ready to feed into a ruleset's Performance function.
type Score struct {
	BeatmapChecksum string
	Mods            difficulty.Mods
	State           difficulty.ScoreState
}

// Load parses the .osr file at path.
func Load(path string) (Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Score{}, err
	}

	r, err := rplpa.ParseReplay(data)
	if err != nil {
		return Score{}, fmt.Errorf("parse replay %s: %w", path, err)
	}

	return Score{
		BeatmapChecksum: r.BeatmapMD5,
		Mods:            difficulty.Mods(r.Mods),
		State: difficulty.ScoreState{
			MaxCombo: int(r.MaxCombo),
			// The replay format's Geki/Katu buckets mean "SS/S judgement" in
			// standard and "320/200" in keys; ScoreState carries both names
			// so each ruleset's Synthesize/Performance reads the one it needs.
			NGeki: int(r.CountGeki),
			N320:  int(r.CountGeki),
			N300:  int(r.Count300),
			NKatu: int(r.CountKatu),
			N200:  int(r.CountKatu),
			N100:  int(r.Count100),
			N50:   int(r.Count50),
			NMiss: int(r.CountMiss),
		},
	}, nil
}
