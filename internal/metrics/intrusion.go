package metrics

import "github.com/san-kum/springcurve/internal/sim"

// MarginIntrusion is the fraction of frames on which a free point sat inside
// the boundary margin band.
type MarginIntrusion struct {
	name       string
	violations int
	samples    int
}

func NewMarginIntrusion() *MarginIntrusion {
	return &MarginIntrusion{name: "margin_intrusion"}
}

func (m *MarginIntrusion) Name() string { return m.name }

func (m *MarginIntrusion) Observe(frame int, s *sim.Scene) {
	m.samples++
	b := s.Bounds()
	for _, p := range s.Points {
		if !b.Inside(p.Pos, s.Width, s.Height) {
			m.violations++
			break
		}
	}
}

func (m *MarginIntrusion) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.violations) / float64(m.samples)
}

func (m *MarginIntrusion) Reset() {
	m.violations = 0
	m.samples = 0
}
