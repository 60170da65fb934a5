package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModsRoundTrip(t *testing.T) {
	cases := []string{"HD", "DTHD", "HRHD", "EZ", "NM", ""}

	for _, c := range cases {
		mods := ParseMods(c)

		if c == "NM" || c == "" {
			assert.Equal(t, Mods(0), mods)
			continue
		}

		assert.Equal(t, c, mods.String())
	}
}

func TestParseModsIgnoresUnknownChunks(t *testing.T) {
	mods := ParseMods("HDZZ")
	assert.True(t, mods.HD())
}

func TestModsClockRate(t *testing.T) {
	assert.Equal(t, 1.0, Mods(0).ClockRate())
	assert.Equal(t, 1.5, DoubleTime.ClockRate())
	assert.Equal(t, 1.5, Nightcore.ClockRate())
	assert.Equal(t, 0.75, HalfTime.ClockRate())
}

func TestModsQueries(t *testing.T) {
	assert.True(t, HardRock.HR())
	assert.True(t, Easy.EZ())
	assert.False(t, HardRock.EZ())
}
