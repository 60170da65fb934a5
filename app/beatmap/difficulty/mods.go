package difficulty

import "strings"

// Mods is the opaque bitfield documented in spec §6, following the
// osu!-api mod bit values the donor project's difficulty.Modifier also
// uses (HR=16, HD=8, DT=64, HT=256, NF=1, SO=4096, FL=1024, EZ=2, RX=128,
// AP=8192, TD=4, ...).
type Mods uint32

const (
	NoFail Mods = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore
	Flashlight
	Autoplay
	SpunOut
	Relax2 // Autopilot
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
)

const Classic Mods = 1 << 31

const DifficultyAdjustMask = HardRock | Easy | DoubleTime | Nightcore | HalfTime

func (m Mods) Active(flag Mods) bool { return m&flag != 0 }

func (m Mods) HR() bool      { return m.Active(HardRock) }
func (m Mods) EZ() bool      { return m.Active(Easy) }
func (m Mods) HD() bool      { return m.Active(Hidden) }
func (m Mods) FL() bool      { return m.Active(Flashlight) }
func (m Mods) NF() bool      { return m.Active(NoFail) }
func (m Mods) SO() bool      { return m.Active(SpunOut) }
func (m Mods) RX() bool      { return m.Active(Relax) }
func (m Mods) AP() bool      { return m.Active(Relax2) }
func (m Mods) TD() bool      { return m.Active(TouchDevice) }
func (m Mods) CL() bool      { return m.Active(Classic) }
func (m Mods) SS() bool      { return m.Active(SuddenDeath) || m.Active(Perfect) }

// ClockRate reflects DT/NC (1.5x) and HT (0.75x); the two are mutually
// exclusive at the mod-bit level but the query never panics on a
// contradictory combination per spec §7 ("not rejected").
func (m Mods) ClockRate() float64 {
	rate := 1.0

	if m.Active(DoubleTime) || m.Active(Nightcore) {
		rate = 1.5
	} else if m.Active(HalfTime) {
		rate = 0.75
	}

	return rate
}

// ParseMods parses a two-letter acronym string such as "HDDT" into a Mods
// bitfield, the inverse of String. Unknown two-letter chunks are ignored
// rather than rejected, matching spec §7's "not rejected" stance on
// unusual mod combinations.
func ParseMods(s string) Mods {
	table := map[string]Mods{
		"EZ": Easy, "NF": NoFail, "HT": HalfTime, "HR": HardRock,
		"SD": SuddenDeath, "PF": Perfect, "DT": DoubleTime, "NC": Nightcore,
		"HD": Hidden, "FL": Flashlight, "RX": Relax, "AP": Relax2,
		"SO": SpunOut, "TD": TouchDevice, "V2": ScoreV2, "MR": Mirror,
	}

	s = strings.ToUpper(s)

	var mods Mods

	for i := 0; i+2 <= len(s); i += 2 {
		if flag, ok := table[s[i:i+2]]; ok {
			mods |= flag
		}
	}

	return mods
}

func (m Mods) String() string {
	order := []struct {
		flag Mods
		name string
	}{
		{Easy, "EZ"}, {NoFail, "NF"}, {HalfTime, "HT"}, {HardRock, "HR"},
		{SuddenDeath, "SD"}, {Perfect, "PF"}, {DoubleTime, "DT"}, {Nightcore, "NC"},
		{Hidden, "HD"}, {Flashlight, "FL"}, {Relax, "RX"}, {Relax2, "AP"},
		{SpunOut, "SO"}, {TouchDevice, "TD"}, {ScoreV2, "V2"}, {Mirror, "MR"},
	}

	var b strings.Builder

	for _, o := range order {
		if m.Active(o.flag) {
			b.WriteString(o.name)
		}
	}

	if b.Len() == 0 {
		return "NM"
	}

	return b.String()
}
