// Package render draws a curve frame onto a 2D drawing surface.
//
// [Surface] is the small subset of a canvas-style API the animation needs:
// path construction, stroking, filled circles and the current size. Front
// ends provide implementations (raylib window, braille terminal canvas, SVG
// document, raster image) and [DrawCurve] issues the same call sequence to
// each of them.
package render

import (
	"image/color"

	"github.com/san-kum/springcurve/internal/dynamo"
)

// Surface is a 2D drawing context.
type Surface interface {
	// Size returns the current drawable width and height.
	Size() (w, h float64)
	// Clear erases the whole surface.
	Clear()
	// BeginPath discards the current path.
	BeginPath()
	MoveTo(p dynamo.Vec2)
	LineTo(p dynamo.Vec2)
	// Stroke draws the current path.
	Stroke(c color.RGBA, width float64)
	FillCircle(center dynamo.Vec2, radius float64, c color.RGBA)
}

// Path accumulates MoveTo/LineTo calls as polylines. Surfaces that draw on
// Stroke embed it.
type Path struct {
	Lines [][]dynamo.Vec2
}

func (p *Path) BeginPath() { p.Lines = p.Lines[:0] }

func (p *Path) MoveTo(v dynamo.Vec2) { p.Lines = append(p.Lines, []dynamo.Vec2{v}) }

func (p *Path) LineTo(v dynamo.Vec2) {
	if len(p.Lines) == 0 {
		p.MoveTo(v)
		return
	}
	last := len(p.Lines) - 1
	p.Lines[last] = append(p.Lines[last], v)
}

// Segments calls fn for every line segment of the current path.
func (p *Path) Segments(fn func(a, b dynamo.Vec2)) {
	for _, line := range p.Lines {
		for i := 1; i < len(line); i++ {
			fn(line[i-1], line[i])
		}
	}
}
