package render

import (
	"github.com/san-kum/springcurve/internal/bezier"
)

// DrawCurve strokes the sampled curve, its tangent markers and the four
// control points. The caller clears the surface first.
func DrawCurve(s Surface, c bezier.Curve, st Style) {
	s.BeginPath()
	for i, p := range c.Sample(bezier.PathStep) {
		if i == 0 {
			s.MoveTo(p)
		} else {
			s.LineTo(p)
		}
	}
	s.Stroke(st.Curve, st.CurveWidth)

	for _, m := range c.Tangents(bezier.TangentStep) {
		d := m.Tangent.Normalize()
		s.BeginPath()
		s.MoveTo(m.At)
		s.LineTo(m.At.Add(d.Scale(st.TangentLength)))
		s.Stroke(st.Tangent, st.TangentWidth)
	}

	s.FillCircle(c.P0, st.PointRadius, st.Endpoint)
	s.FillCircle(c.P1, st.PointRadius, st.Interior)
	s.FillCircle(c.P2, st.PointRadius, st.Interior)
	s.FillCircle(c.P3, st.PointRadius, st.Endpoint)
}
