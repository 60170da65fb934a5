package difficulty

import (
	"math"
	"sort"
)

// SectionLen is the default time-bucket width strain curves are built over
// (spec §3, "Strain curve"); catch's movement skill overrides it.
const SectionLen = 400.0

// DecayWeight is the per-rank geometric weight applied when collapsing
// sorted strain peaks into a single difficulty scalar.
const DecayWeight = 0.9

// ReducedSectionCount / ReducedStrainBaseline implement the "top-weighted
// variant" used by standard's aim/speed/flashlight skills.
const ReducedSectionCount = 10
const ReducedStrainBaseline = 0.75

func StrainDecay(ms, base float64) float64 {
	return math.Pow(base, ms/1000)
}

// StrainSkill is the generic time-bucketed strain accumulator described in
// spec §4.3. It owns only the section-boundary bookkeeping; evaluators
// (one pure function per skill) decide how much strain a single object
// contributes, and skill wrappers (osu's Aim/Speed/Flashlight, drum's
// Rhythm/Colour/Stamina, ...) own the decaying current-strain state since
// its decay base differs per skill.
type StrainSkill struct {
	CurrSectionPeak float64
	CurrSectionEnd  float64
	StrainPeaks     *StrainsVec
	ObjectStrains   []float64 // retained only by skills needing top-weighted analysis
	sectionLen      float64
}

func NewStrainSkill(sectionLen float64, retainObjectStrains bool) *StrainSkill {
	s := &StrainSkill{
		StrainPeaks: NewStrainsVec(256),
		sectionLen:  sectionLen,
	}

	if retainObjectStrains {
		s.ObjectStrains = make([]float64, 0, 256)
	}

	return s
}

func (s *StrainSkill) SectionLen() float64 {
	if s.sectionLen == 0 {
		return SectionLen
	}

	return s.sectionLen
}

func (s *StrainSkill) SaveCurrPeak() {
	s.StrainPeaks.Push(s.CurrSectionPeak)
}

func (s *StrainSkill) StartNewSectionFrom(initialStrain float64) {
	s.CurrSectionPeak = initialStrain
}

// Process runs the section-boundary bookkeeping common to every strain
// skill: align the first section end, roll sections forward while the
// current object starts past the section boundary (computing an initial
// strain for each new section via initialStrain), then fold the object's
// own contribution (via strainValueAt) into the current section peak.
func (s *StrainSkill) Process(isFirst bool, startTime float64, initialStrain func(sectionEnd float64) float64, strainValueAt func() float64) {
	if isFirst {
		s.CurrSectionEnd = math.Ceil(startTime/s.SectionLen()) * s.SectionLen()
	}

	for startTime > s.CurrSectionEnd {
		s.SaveCurrPeak()
		s.StartNewSectionFrom(initialStrain(s.CurrSectionEnd))
		s.CurrSectionEnd += s.SectionLen()
	}

	s.CurrSectionPeak = math.Max(s.CurrSectionPeak, strainValueAt())
}

// DifficultyValue collapses the recorded strain peaks (plus the still-open
// final section) into a single scalar via sorted-descending geometric
// weighting (spec §4.3).
func (s *StrainSkill) DifficultyValue(decayWeight float64) float64 {
	s.SaveCurrPeak()

	peaks := s.StrainPeaks.SortedDesc()

	difficulty := 0.0
	weight := 1.0

	for _, strain := range peaks {
		difficulty += strain * weight
		weight *= decayWeight
	}

	return difficulty
}

// TopWeightedDifficultyValue implements the "reduced section" attenuation
// used by osu!standard's aim/speed/flashlight skills before the same
// geometric weighting.
func (s *StrainSkill) TopWeightedDifficultyValue(reducedCount int, reducedBaseline, decayWeight float64) float64 {
	s.SaveCurrPeak()

	peaks := s.StrainPeaks.SortedDesc()

	for i := 0; i < len(peaks) && i < reducedCount; i++ {
		clamped := clamp01(float64(i) / float64(reducedCount))
		scale := math.Log10(lerp(1, 10, clamped))
		peaks[i] *= lerp(reducedBaseline, 1, scale)
	}

	sortDesc(peaks)

	difficulty := 0.0
	weight := 1.0

	for _, strain := range peaks {
		difficulty += strain * weight
		weight *= decayWeight
	}

	return difficulty
}

// CountTopWeightedStrains implements the pp miss-penalty helper of spec
// §4.3: an estimate of "how many objects behave like the hardest ones".
func CountTopWeightedStrains(objectStrains []float64, difficultyValue float64) float64 {
	if len(objectStrains) == 0 {
		return 0
	}

	consistentTop := difficultyValue / 10

	if consistentTop == 0 {
		return float64(len(objectStrains))
	}

	total := 0.0
	for _, st := range objectStrains {
		total += 1.1 / (1 + math.Exp(-10*(st/consistentTop-0.88)))
	}

	return total
}

func lerp(start, end, amount float64) float64 {
	return start + (end-start)*amount
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}

func sortDesc(v []float64) {
	sort.Sort(sort.Reverse(sort.Float64Slice(v)))
}
