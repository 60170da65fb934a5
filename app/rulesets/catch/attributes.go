package catch

// DifficultyAttributes is the catch ruleset's tagged attribute record.
type DifficultyAttributes struct {
	Stars        float64
	MovementDiff float64

	MaxCombo    int
	NFruits     int
	NDroplets   int
	NTinyDrops  int
}

// PerformanceAttributes is the catch ruleset's performance record.
type PerformanceAttributes struct {
	Difficulty DifficultyAttributes

	PP float64
}
