package sim

// ScoreTracker turns survival time into points.
type ScoreTracker struct {
	Score   int
	Counter int // Ticks accrued while running
	every   int
}

// NewScoreTracker creates a tracker awarding one point every `every` ticks.
func NewScoreTracker(every int) *ScoreTracker {
	return &ScoreTracker{every: every}
}

// Accrue counts one running tick and reports whether a point was awarded.
func (s *ScoreTracker) Accrue() bool {
	s.Counter++
	if s.Counter%s.every == 0 {
		s.Score++
		return true
	}
	return false
}
