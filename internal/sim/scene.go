package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/springcurve/internal/bezier"
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/physics"
)

const (
	DefaultEndpointInset  = 150.0
	DefaultInteriorOffset = 200.0
	DefaultPointerSpread  = 120.0
)

// Geometry fixes where points sit relative to the surface and the pointer.
type Geometry struct {
	// EndpointInset is the horizontal distance of P0 and P3 from the edges.
	EndpointInset float64
	// InteriorOffset places P1 and P2 inward from the endpoints on first resize.
	InteriorOffset float64
	// PointerSpread is the horizontal distance of each target from the pointer.
	PointerSpread float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		EndpointInset:  DefaultEndpointInset,
		InteriorOffset: DefaultInteriorOffset,
		PointerSpread:  DefaultPointerSpread,
	}
}

// Scene is the complete simulation state.
type Scene struct {
	Width, Height float64
	P0, P3        dynamo.Vec2
	Points        [2]ControlPoint
	Targets       [2]dynamo.Vec2

	geom        Geometry
	bounds      physics.Bounds
	initialized bool
}

// NewScene returns an empty scene. Call Resize before the first frame.
func NewScene(g Geometry, b physics.Bounds) *Scene {
	return &Scene{geom: g, bounds: b}
}

func (s *Scene) Geometry() Geometry     { return s.geom }
func (s *Scene) Bounds() physics.Bounds { return s.bounds }

// Initialized reports whether the free points have been placed.
func (s *Scene) Initialized() bool { return s.initialized }

// Resize records the new surface size and recomputes the endpoints. The free
// points are placed only on the first call; every call resets the targets to
// their current positions.
func (s *Scene) Resize(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize to %gx%g: %w", w, h, dynamo.ErrInvalidSize)
	}
	s.Width, s.Height = w, h

	s.P0 = dynamo.V(s.geom.EndpointInset, h/2)
	s.P3 = dynamo.V(w-s.geom.EndpointInset, h/2)

	if !s.initialized {
		s.Points[0] = ControlPoint{Pos: s.P0.Add(dynamo.V(s.geom.InteriorOffset, 0))}
		s.Points[1] = ControlPoint{Pos: s.P3.Sub(dynamo.V(s.geom.InteriorOffset, 0))}
		s.initialized = true
	}

	s.Targets[0] = s.Points[0].Pos
	s.Targets[1] = s.Points[1].Pos
	return nil
}

// PointerMove retargets both springs around the pointer, clamped to the
// region inside the margin.
func (s *Scene) PointerMove(x, y float64) {
	p := s.bounds.ClampTarget(dynamo.V(x, y), s.Width, s.Height)
	s.Targets[0] = dynamo.V(p.X-s.geom.PointerSpread, p.Y)
	s.Targets[1] = dynamo.V(p.X+s.geom.PointerSpread, p.Y)
}

// Step runs one frame of physics: the spring for both points, then boundary
// repulsion for both.
func (s *Scene) Step(integ integrators.Integrator) {
	for i := range s.Points {
		integ.Step(&s.Points[i].Pos, &s.Points[i].Vel, s.Targets[i])
	}
	for i := range s.Points {
		s.bounds.Apply(s.Points[i].Pos, &s.Points[i].Vel, s.Width, s.Height)
	}
}

// Curve returns the current Bézier curve.
func (s *Scene) Curve() bezier.Curve {
	return bezier.Curve{P0: s.P0, P1: s.Points[0].Pos, P2: s.Points[1].Pos, P3: s.P3}
}

// Valid reports whether all free point positions and velocities are finite
// and the kinetic energy has not overflowed.
func (s *Scene) Valid() bool {
	for _, p := range s.Points {
		if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
			return false
		}
	}
	return !math.IsInf(s.KineticEnergy(), 0)
}

// KineticEnergy returns the sum of ½|v|² over the free points.
func (s *Scene) KineticEnergy() float64 {
	e := 0.0
	for _, p := range s.Points {
		v := p.Vel.Len()
		e += 0.5 * v * v
	}
	return e
}

// State flattens the free points into StateDim values.
func (s *Scene) State() []float64 {
	out := make([]float64, 0, StateDim)
	for _, p := range s.Points {
		out = append(out, p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y)
	}
	return out
}

// TargetState flattens the targets into t1x, t1y, t2x, t2y.
func (s *Scene) TargetState() []float64 {
	return []float64{s.Targets[0].X, s.Targets[0].Y, s.Targets[1].X, s.Targets[1].Y}
}
