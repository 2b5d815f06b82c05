package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style holds the colors and sizes used by DrawCurve.
type Style struct {
	Background    color.RGBA
	Curve         color.RGBA
	CurveWidth    float64
	Tangent       color.RGBA
	TangentLength float64
	TangentWidth  float64
	Endpoint      color.RGBA
	Interior      color.RGBA
	PointRadius   float64
}

func DefaultStyle() Style {
	return Style{
		Background:    color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
		Curve:         color.RGBA{0xff, 0xff, 0xff, 0xff},
		CurveWidth:    2,
		Tangent:       color.RGBA{0x00, 0xff, 0xaa, 0xff},
		TangentLength: 30,
		TangentWidth:  2,
		Endpoint:      color.RGBA{0xff, 0x55, 0x55, 0xff},
		Interior:      color.RGBA{0xff, 0xaa, 0x00, 0xff},
		PointRadius:   6,
	}
}

// ParseHex parses "#rrggbb", "#rgb" or "#rrggbbaa".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as "#rrggbb", appending alpha only when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
