package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/render"
)

// Surface draws onto the current raylib window. Calls are only valid
// between BeginDrawing and EndDrawing.
type Surface struct {
	render.Path
	Background color.RGBA
}

func (s *Surface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (s *Surface) Clear() {
	rl.ClearBackground(toRL(s.Background))
	s.BeginPath()
}

func (s *Surface) Stroke(c color.RGBA, width float64) {
	col := toRL(c)
	s.Segments(func(a, b dynamo.Vec2) {
		rl.DrawLineEx(vec(a), vec(b), float32(width), col)
	})
}

func (s *Surface) FillCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(radius), toRL(c))
}

func toRL(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func vec(p dynamo.Vec2) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }
