// Package catch implements the catch ruleset's difficulty and performance
// pipeline (spec §4, "catch"): juice-stream/banana-shower conversion,
// hyperdash tagging, and the movement strain skill.
package catch

// ObjectKind tags the palpable-object variant the catch ruleset cares
// about for difficulty purposes.
type ObjectKind uint8

const (
	KindFruit ObjectKind = iota
	KindDroplet
	KindTinyDroplet
	KindBanana
)

// PlayableObject is a single palpable catch object (spec §4.1's "juice
// stream" / "banana shower" conversion result).
type PlayableObject struct {
	StartTime float64
	X         float64
	Kind      ObjectKind
	NewCombo  bool

	HyperDash       bool
	HyperDashTarget float64 // target X, meaningful only when HyperDash
	DistToHyperDash float64 // slack remaining before a hyperdash would be forced; meaningful only when !HyperDash
}
