package metrics

import "github.com/san-kum/springcurve/internal/sim"

// Settle reports the first frame after which the combined speed of the free
// points stays below a threshold for the rest of the run. Value is the frame
// count seen so far when the points never settle.
type Settle struct {
	name      string
	threshold float64
	settledAt int
	frames    int
}

func NewSettle(threshold float64) *Settle {
	return &Settle{name: "settle_frame", threshold: threshold, settledAt: -1}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(frame int, sc *sim.Scene) {
	s.frames = frame + 1
	speed := sc.Points[0].Vel.Len() + sc.Points[1].Vel.Len()
	if speed >= s.threshold {
		s.settledAt = -1
		return
	}
	if s.settledAt < 0 {
		s.settledAt = frame
	}
}

func (s *Settle) Value() float64 {
	if s.settledAt < 0 {
		return float64(s.frames)
	}
	return float64(s.settledAt)
}

// Settled reports whether the points are currently below the threshold.
func (s *Settle) Settled() bool { return s.settledAt >= 0 }

func (s *Settle) Reset() {
	s.settledAt = -1
	s.frames = 0
}
