package osu

// HitWindows holds the OD-derived great/ok/meh timing windows (ms) used by
// the speed skill's doubletap penalty and by the performance formula's
// deviation estimate. Standard's "great" window backs the 300 judgement.
type HitWindows struct {
	Great float64
	Ok    float64
	Meh   float64
}

func NewHitWindows(od, clockRate float64) HitWindows {
	return HitWindows{
		Great: (80 - 6*od) / clockRate,
		Ok:    (140 - 8*od) / clockRate,
		Meh:   (200 - 10*od) / clockRate,
	}
}
