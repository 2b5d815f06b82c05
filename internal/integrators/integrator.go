// Package integrators advances a control point one frame toward its target.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/physics"
)

// Integrator moves pos and vel one frame toward target. Velocity is in
// surface units per frame.
type Integrator interface {
	Step(pos, vel *dynamo.Vec2, target dynamo.Vec2)
}

var registry = map[string]func(s physics.Spring, fps int) Integrator{
	"euler":     func(s physics.Spring, _ int) Integrator { return NewEuler(s) },
	"harmonica": func(s physics.Spring, fps int) Integrator { return NewHarmonica(s, fps) },
}

// New returns the integrator registered under name.
func New(name string, s physics.Spring, fps int) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownIntegrator)
	}
	return fn(s, fps), nil
}

// Names lists the registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
