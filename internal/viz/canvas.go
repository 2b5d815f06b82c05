package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 dots and one ink color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates and paints its cell
// with ink. The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, ink color.RGBA) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = ink
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = color.RGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle sets every dot within r sub-pixels of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, ink color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, ink)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Colored renders the canvas with each run of same-ink cells wrapped in a
// lipgloss foreground style.
func (c *Canvas) Colored() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.Ink[i][start]; ink.A != 0 {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(opaque(ink)))).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Surface adapts a Canvas to render.Surface. One sub-pixel covers Scale
// scene units in each direction.
type Surface struct {
	render.Path
	Canvas *Canvas
	Scale  float64
}

func NewSurface(cols, rows int, scale float64) *Surface {
	return &Surface{Canvas: NewCanvas(cols, rows), Scale: scale}
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.Canvas.Width*2) * s.Scale, float64(s.Canvas.Height*4) * s.Scale
}

func (s *Surface) Clear() {
	s.Canvas.Clear()
	s.BeginPath()
}

func (s *Surface) Stroke(c color.RGBA, _ float64) {
	s.Segments(func(a, b dynamo.Vec2) {
		x0, y0 := s.dot(a)
		x1, y1 := s.dot(b)
		s.Canvas.DrawLine(x0, y0, x1, y1, c)
	})
}

func (s *Surface) FillCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	x, y := s.dot(center)
	s.Canvas.FillCircle(x, y, int(math.Round(radius/s.Scale)), c)
}

// ScenePoint maps a terminal cell to the scene coordinate of its center.
func (s *Surface) ScenePoint(col, row int) dynamo.Vec2 {
	return dynamo.V((float64(col)*2+1)*s.Scale, (float64(row)*4+2)*s.Scale)
}

// dot maps a scene point to sub-pixels, clamped to a band around the
// canvas so runaway points cannot stall DrawLine.
func (s *Surface) dot(p dynamo.Vec2) (int, int) {
	w, h := float64(s.Canvas.Width*2), float64(s.Canvas.Height*4)
	x := dynamo.Clamp(math.Floor(p.X/s.Scale), -w, 2*w)
	y := dynamo.Clamp(math.Floor(p.Y/s.Scale), -h, 2*h)
	if math.IsNaN(x) || math.IsNaN(y) {
		return -1, -1
	}
	return int(x), int(y)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
