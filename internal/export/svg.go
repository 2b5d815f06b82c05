// Package export renders frames to files: SVG documents, PNG images and
// animated GIFs.
package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/render"
)

// SVG is a render.Surface that accumulates elements into an SVG document.
type SVG struct {
	render.Path
	width, height float64
	background    color.RGBA
	body          strings.Builder
	elements      int
}

func NewSVG(width, height float64, background color.RGBA) *SVG {
	return &SVG{width: width, height: height, background: background}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear() {
	s.body.Reset()
	s.elements = 0
	s.BeginPath()
}

func (s *SVG) Stroke(c color.RGBA, width float64) {
	for _, line := range s.Lines {
		if len(line) < 2 {
			continue
		}
		var pts strings.Builder
		for i, p := range line {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(&s.body, `<polyline points="%s" fill="none" stroke="%s"%s stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			pts.String(), rgb(c), opacity("stroke", c), width)
		s.elements++
	}
}

func (s *SVG) FillCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>`+"\n",
		center.X, center.Y, radius, rgb(c), opacity("fill", c))
	s.elements++
}

// Caption adds a text label in the top-left corner.
func (s *SVG) Caption(text string, c color.RGBA) {
	text = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
	fmt.Fprintf(&s.body, `<text x="8" y="20" font-family="monospace" font-size="14" fill="%s">%s</text>`+"\n",
		rgb(c), text)
	s.elements++
}

// Elements returns the number of drawn elements since the last Clear.
func (s *SVG) Elements() int { return s.elements }

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, rgb(s.background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (s *SVG) String() string {
	var sb strings.Builder
	s.WriteTo(&sb)
	return sb.String()
}

func opacity(attr string, c color.RGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s-opacity="%.3f"`, attr, float64(c.A)/255)
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
