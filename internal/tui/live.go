// Package tui prints a live braille view of a headless run to a plain
// terminal, without taking over input.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/springcurve/internal/render"
	"github.com/san-kum/springcurve/internal/sim"
	"github.com/san-kum/springcurve/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Observer that redraws the scene at most frameRate
// times per second of wall time.
type LiveRenderer struct {
	out       io.Writer
	label     string
	frameRate int
	style     render.Style
	lastFrame time.Time
	surface   *viz.Surface
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, label string, frameRate int, style render.Style) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		label:     label,
		frameRate: frameRate,
		style:     style,
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnFrame(frame int, s *sim.Scene) {
	now := r.now()
	if r.frameRate > 0 && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now

	if scale := fitScale(s.Width, s.Height); r.surface == nil || r.surface.Scale != scale {
		r.surface = viz.NewSurface(width, height, scale)
	}
	r.surface.Clear()
	render.DrawCurve(r.surface, s.Curve(), r.style)

	r.render(frame, s)
}

// fitScale returns the scene units per braille dot that fit a w x h scene
// entirely inside the canvas.
func fitScale(w, h float64) float64 {
	scale := max(w/float64(width*2), h/float64(height*4))
	if scale <= 0 {
		return 1
	}
	return scale
}

func (r *LiveRenderer) render(frame int, s *sim.Scene) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  frame=%d  energy=%.4f\n", r.label, frame, s.KineticEnergy()))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range strings.Split(strings.TrimSuffix(r.surface.Canvas.String(), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  p1=%s p2=%s\n", s.Points[0].Pos, s.Points[1].Pos))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
