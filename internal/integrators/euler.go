package integrators

import (
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/physics"
)

// Euler is the reference per-frame explicit spring step.
type Euler struct {
	Spring physics.Spring
}

func NewEuler(s physics.Spring) *Euler {
	return &Euler{Spring: s}
}

func (e *Euler) Step(pos, vel *dynamo.Vec2, target dynamo.Vec2) {
	e.Spring.Step(pos, vel, target)
}
