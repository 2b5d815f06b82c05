package physics

import (
	"fmt"

	"github.com/san-kum/springcurve/internal/dynamo"
)

const (
	DefaultStiffness = 0.02
	DefaultDamping   = 0.88
)

// Spring pulls a point toward a target. Damping is the fraction of velocity
// kept per step.
type Spring struct {
	Stiffness float64
	Damping   float64
}

func NewSpring() Spring {
	return Spring{Stiffness: DefaultStiffness, Damping: DefaultDamping}
}

// Force returns (target - pos) * stiffness.
func (s Spring) Force(pos, target dynamo.Vec2) dynamo.Vec2 {
	return target.Sub(pos).Scale(s.Stiffness)
}

// Step advances pos and vel by one frame: add the force to the velocity,
// damp it, then move by the new velocity.
func (s Spring) Step(pos, vel *dynamo.Vec2, target dynamo.Vec2) {
	*vel = vel.Add(s.Force(*pos, target)).Scale(s.Damping)
	*pos = pos.Add(*vel)
}

func (s Spring) Validate() error {
	if s.Stiffness <= 0 {
		return fmt.Errorf("stiffness %g: %w", s.Stiffness, dynamo.ErrParameterBounds)
	}
	if s.Damping <= 0 || s.Damping > 1 {
		return fmt.Errorf("damping %g not in (0, 1]: %w", s.Damping, dynamo.ErrParameterBounds)
	}
	return nil
}

func (s *Spring) GetParams() map[string]float64 {
	return map[string]float64{
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return fmt.Errorf("spring has no parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}
