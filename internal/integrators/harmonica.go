package integrators

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/physics"
)

// Harmonica replaces the per-frame step with the closed-form damped
// oscillator from charmbracelet/harmonica, tuned to match the discrete
// spring's natural frequency and decay.
type Harmonica struct {
	spring harmonica.Spring
	fps    float64
}

// NewHarmonica derives the angular frequency sqrt(k)*fps and the damping
// ratio -ln(d)/(2*sqrt(k)) from the discrete stiffness k and damping d.
func NewHarmonica(s physics.Spring, fps int) *Harmonica {
	if fps <= 0 {
		fps = 60
	}
	omega := math.Sqrt(s.Stiffness) * float64(fps)
	zeta := DampingRatio(s)
	return &Harmonica{
		spring: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta),
		fps:    float64(fps),
	}
}

// DampingRatio maps a discrete spring to the damping ratio of the
// continuous oscillator with the same per-frame velocity decay.
func DampingRatio(s physics.Spring) float64 {
	if s.Stiffness <= 0 || s.Damping <= 0 {
		return 1
	}
	return -math.Log(s.Damping) / (2 * math.Sqrt(s.Stiffness))
}

func (h *Harmonica) Step(pos, vel *dynamo.Vec2, target dynamo.Vec2) {
	x, vx := h.spring.Update(pos.X, vel.X*h.fps, target.X)
	y, vy := h.spring.Update(pos.Y, vel.Y*h.fps, target.Y)
	*pos = dynamo.V(x, y)
	*vel = dynamo.V(vx/h.fps, vy/h.fps)
}
