package physics

import (
	"fmt"

	"github.com/san-kum/springcurve/internal/dynamo"
)

const (
	DefaultMargin = 80.0
	DefaultGain   = 0.08
)

// Bounds pushes points back toward the interior when they come within Margin
// of an edge. The push is added to velocity and grows linearly with the
// penetration depth. Positions are never clamped.
type Bounds struct {
	Margin float64
	Gain   float64
}

func NewBounds() Bounds {
	return Bounds{Margin: DefaultMargin, Gain: DefaultGain}
}

// Apply adds the correcting impulse for a surface of width w and height h.
func (b Bounds) Apply(pos dynamo.Vec2, vel *dynamo.Vec2, w, h float64) {
	vel.X += b.impulse(pos.X, w)
	vel.Y += b.impulse(pos.Y, h)
}

func (b Bounds) impulse(p, extent float64) float64 {
	var dv float64
	if p < b.Margin {
		dv += (b.Margin - p) * b.Gain
	}
	if p > extent-b.Margin {
		dv -= (p - (extent - b.Margin)) * b.Gain
	}
	return dv
}

// Inside reports whether p lies outside the margin band on both axes.
func (b Bounds) Inside(p dynamo.Vec2, w, h float64) bool {
	return p.X >= b.Margin && p.X <= w-b.Margin &&
		p.Y >= b.Margin && p.Y <= h-b.Margin
}

// ClampTarget limits a pointer position to the region inside the margin.
func (b Bounds) ClampTarget(p dynamo.Vec2, w, h float64) dynamo.Vec2 {
	return dynamo.V(
		dynamo.Clamp(p.X, b.Margin, w-b.Margin),
		dynamo.Clamp(p.Y, b.Margin, h-b.Margin),
	)
}

func (b Bounds) Validate() error {
	if b.Margin < 0 {
		return fmt.Errorf("margin %g: %w", b.Margin, dynamo.ErrParameterBounds)
	}
	if b.Gain < 0 {
		return fmt.Errorf("bounds gain %g: %w", b.Gain, dynamo.ErrParameterBounds)
	}
	return nil
}
