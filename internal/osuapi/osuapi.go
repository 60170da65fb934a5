// Package osuapi looks up a beatmap's metadata and checksum by ID against
// the legacy osu! web API, so a caller (cmd/starcalc's -beatmap-id flag)
// can resolve an ID to its artist, title, version and checksum without
// scraping the site by hand.
package osuapi

import (
	"fmt"

	"github.com/thehowl/go-osuapi"

	"github.com/wieku/starcalc/app/beatmap"
)

// Lookup wraps a single API client bound to one key.
type Lookup struct {
	client *osuapi.Client
}

// New constructs a Lookup authenticated with apiKey.
func New(apiKey string) *Lookup {
	return &Lookup{client: osuapi.NewClient(apiKey)}
}

// BeatmapInfo is the subset of the API's beatmap record the pipeline needs:
// enough to locate or validate a local .osu file against its server-side
// checksum and declared mode.
type BeatmapInfo struct {
	BeatmapID    int
	BeatmapSetID int
	Checksum     string
	Mode         beatmap.Mode
	Artist       string
	Title        string
	Version      string
}

// ByID fetches metadata for a single beatmap ID.
func (l *Lookup) ByID(id int) (BeatmapInfo, error) {
	maps, err := l.client.GetBeatmaps(osuapi.GetBeatmapsOpts{BeatmapID: id})
	if err != nil {
		return BeatmapInfo{}, fmt.Errorf("fetch beatmap %d: %w", id, err)
	}

	if len(maps) == 0 {
		return BeatmapInfo{}, fmt.Errorf("beatmap %d not found", id)
	}

	bm := maps[0]

	return BeatmapInfo{
		BeatmapID:    int(bm.BeatmapID),
		BeatmapSetID: int(bm.BeatmapSetID),
		Checksum:     bm.FileMD5,
		Mode:         modeFromAPI(bm.Mode),
		Artist:       bm.Artist,
		Title:        bm.Title,
		Version:      bm.Version,
	}, nil
}

func modeFromAPI(m osuapi.Mode) beatmap.Mode {
	switch m {
	case osuapi.ModeTaiko:
		return beatmap.ModeTaiko
	case osuapi.ModeCTB:
		return beatmap.ModeCatch
	case osuapi.ModeMania:
		return beatmap.ModeMania
	default:
		return beatmap.ModeOsu
	}
}
