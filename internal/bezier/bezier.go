// Package bezier evaluates cubic Bézier curves.
package bezier

import "github.com/san-kum/springcurve/internal/dynamo"

const (
	// PathStep is the parameter step used to draw the curve polyline.
	PathStep = 0.01
	// TangentStep is the parameter step used for tangent markers.
	TangentStep = 0.1
)

// Point evaluates B(t) = (1-t)³P0 + 3(1-t)²t·P1 + 3(1-t)t²·P2 + t³P3.
func Point(p0, p1, p2, p3 dynamo.Vec2, t float64) dynamo.Vec2 {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t).Add(p3.Scale(t * t * t)))
}

// Tangent evaluates the unnormalized derivative B'(t).
func Tangent(p0, p1, p2, p3 dynamo.Vec2, t float64) dynamo.Vec2 {
	u := 1 - t
	return p1.Sub(p0).Scale(3 * u * u).
		Add(p2.Sub(p1).Scale(6 * u * t)).
		Add(p3.Sub(p2).Scale(3 * t * t))
}

// Curve is a cubic Bézier defined by its four control points.
type Curve struct {
	P0, P1, P2, P3 dynamo.Vec2
}

func (c Curve) Point(t float64) dynamo.Vec2 { return Point(c.P0, c.P1, c.P2, c.P3, t) }

func (c Curve) Tangent(t float64) dynamo.Vec2 { return Tangent(c.P0, c.P1, c.P2, c.P3, t) }

// Params returns the parameters 0, step, 2*step, ... up to and including 1
// when step divides it. Values are computed as i*step so rounding does not
// accumulate.
func Params(step float64) []float64 {
	if step <= 0 {
		return []float64{0}
	}
	n := int(1/step + 1e-9)
	ts := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) * step
		if t > 1 {
			t = 1
		}
		ts = append(ts, t)
	}
	return ts
}

// Sample evaluates the curve at Params(step).
func (c Curve) Sample(step float64) []dynamo.Vec2 {
	ts := Params(step)
	pts := make([]dynamo.Vec2, len(ts))
	for i, t := range ts {
		pts[i] = c.Point(t)
	}
	return pts
}

// Marker is a point on the curve with its tangent there.
type Marker struct {
	At      dynamo.Vec2
	Tangent dynamo.Vec2
}

// Tangents evaluates position and tangent at Params(step).
func (c Curve) Tangents(step float64) []Marker {
	ts := Params(step)
	ms := make([]Marker, len(ts))
	for i, t := range ts {
		ms[i] = Marker{At: c.Point(t), Tangent: c.Tangent(t)}
	}
	return ms
}
