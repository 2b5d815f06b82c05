package bezier

import (
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/dynamo"
)

func near(a, b dynamo.Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestPoint_Endpoints(t *testing.T) {
	p0, p1, p2, p3 := dynamo.V(150, 300), dynamo.V(350, 120), dynamo.V(450, 510), dynamo.V(650, 300)

	if got := Point(p0, p1, p2, p3, 0); got != p0 {
		t.Errorf("B(0) = %v, want %v", got, p0)
	}
	if got := Point(p0, p1, p2, p3, 1); got != p3 {
		t.Errorf("B(1) = %v, want %v", got, p3)
	}
}

func TestPoint_Degenerate(t *testing.T) {
	p := dynamo.V(123.5, -42.25)
	for _, tt := range Params(0.05) {
		if got := Point(p, p, p, p, tt); !near(got, p, 1e-9) {
			t.Errorf("B(%v) = %v, want %v", tt, got, p)
		}
	}
}

func TestPoint_StraightLineMidpoint(t *testing.T) {
	c := Curve{dynamo.V(0, 0), dynamo.V(1, 0), dynamo.V(2, 0), dynamo.V(3, 0)}

	if got := c.Point(0.5); !near(got, dynamo.V(1.5, 0), 1e-12) {
		t.Errorf("midpoint = %v, want (1.5, 0)", got)
	}
	if got := c.Tangent(0.5); !near(got, dynamo.V(3, 0), 1e-12) {
		t.Errorf("tangent = %v, want (3, 0)", got)
	}
}

func TestTangent_MatchesFiniteDifference(t *testing.T) {
	c := Curve{dynamo.V(150, 300), dynamo.V(350, 100), dynamo.V(420, 560), dynamo.V(650, 300)}
	h := 1e-6

	for _, tt := range []float64{0.1, 0.25, 0.5, 0.8} {
		fd := c.Point(tt + h).Sub(c.Point(tt - h)).Scale(1 / (2 * h))
		if got := c.Tangent(tt); !near(got, fd, 1e-3) {
			t.Errorf("tangent(%v) = %v, finite difference %v", tt, got, fd)
		}
	}
}

func TestTangent_EndpointsFollowControlLegs(t *testing.T) {
	c := Curve{dynamo.V(0, 0), dynamo.V(10, 5), dynamo.V(20, 5), dynamo.V(30, 0)}

	if got := c.Tangent(0); got != dynamo.V(30, 15) {
		t.Errorf("B'(0) = %v, want 3(P1-P0)", got)
	}
	if got := c.Tangent(1); got != dynamo.V(30, -15) {
		t.Errorf("B'(1) = %v, want 3(P3-P2)", got)
	}
}

func TestSampleCounts(t *testing.T) {
	c := Curve{dynamo.V(150, 300), dynamo.V(350, 300), dynamo.V(450, 300), dynamo.V(650, 300)}

	path := c.Sample(PathStep)
	if len(path) != 101 {
		t.Fatalf("expected 101 path samples, got %d", len(path))
	}
	if path[0] != c.P0 || path[100] != c.P3 {
		t.Errorf("path does not start at P0 and end at P3: %v .. %v", path[0], path[100])
	}

	markers := c.Tangents(TangentStep)
	if len(markers) != 11 {
		t.Fatalf("expected 11 tangent markers, got %d", len(markers))
	}
	if markers[10].At != c.P3 {
		t.Errorf("last marker at %v, want %v", markers[10].At, c.P3)
	}
}
