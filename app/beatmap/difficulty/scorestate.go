package difficulty

// ScoreState is the ruleset-agnostic aggregate of spec §3. Ruleset-specific
// code projects out the fields it cares about and ignores the rest.
type ScoreState struct {
	MaxCombo int

	NGeki int // standard: SS judgement: keys: 320
	N320  int
	N300  int
	NKatu int // standard: S judgement / keys 200
	N200  int
	N100  int
	N50   int
	NMiss int

	LargeTickHits  int
	SmallTickHits  int
	SliderEndHits  int
	SliderTickHits int
}

// TotalHits is the sum of every non-miss judgement plus misses, i.e. the
// number of scored objects this state accounts for.
func (s ScoreState) TotalHits(mode Mode) int {
	switch mode {
	case ModeTaiko:
		return s.N300 + s.N100 + s.NMiss
	case ModeCatch:
		return s.N300 + s.N100 + s.N50 + s.NMiss // fruits+droplets+tiny+miss
	case ModeKeys:
		return s.NGeki + s.N320 + s.NKatu + s.N300 + s.N200 + s.N100 + s.N50 + s.NMiss
	default:
		return s.N300 + s.N100 + s.N50 + s.NMiss
	}
}

// Mode tags which ruleset a calculation targets.
type Mode uint8

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeKeys
)

func (m Mode) String() string {
	switch m {
	case ModeTaiko:
		return "drum"
	case ModeCatch:
		return "catch"
	case ModeKeys:
		return "keys"
	default:
		return "standard"
	}
}

// HitResultPriority is the tie-break rule for HitResultSynth (spec §4.6).
type HitResultPriority uint8

const (
	PriorityBestCase HitResultPriority = iota
	PriorityWorstCase
)
