package metrics

import "github.com/san-kum/springcurve/internal/sim"

// KineticEnergy averages ½|v|² over both free points across frames.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(frame int, s *sim.Scene) {
	e.last = s.KineticEnergy()
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the energy observed on the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
	e.last = 0
}
