package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2.5); got != V(2.5, 5) {
		t.Errorf("Scale failed: got %v", got)
	}
}

func TestVec2_Len(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{V(3, 4), 5.0},
		{V(1, 0), 1.0},
		{V(0, 0), 0.0},
		{V(-6, -8), 10.0},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec2_NormalizeZero(t *testing.T) {
	got := Vec2{}.Normalize()
	if got != (Vec2{}) {
		t.Errorf("expected zero vector, got %v", got)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Error("normalize of zero vector produced NaN")
	}
}

func TestVec2_NormalizeUnitLength(t *testing.T) {
	vectors := []Vec2{
		V(3, 4), V(-1, 0), V(1e-9, 2e-9), V(1e9, -3e9), V(0.1, 0.1), V(0, -250),
	}

	for _, v := range vectors {
		if l := v.Normalize().Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("len(normalize(%v)) = %v, want 1", v, l)
		}
	}
}

func TestVec2_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", V(0, 0), true},
		{"normal", V(150, -300), true},
		{"NaN x", V(math.NaN(), 0), false},
		{"+Inf y", V(0, math.Inf(1)), false},
		{"-Inf x", V(math.Inf(-1), 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, min, max, expected float64
	}{
		{50, 80, 720, 80},
		{800, 80, 720, 720},
		{300, 80, 720, 300},
		{80, 80, 720, 80},
	}

	for _, tt := range tests {
		if got := Clamp(tt.x, tt.min, tt.max); got != tt.expected {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.min, tt.max, got, tt.expected)
		}
	}
}

func TestSimulationError_Unwrap(t *testing.T) {
	err := &SimulationError{Frame: 12, Wrapped: ErrInvalidState}

	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected SimulationError to unwrap to ErrInvalidState")
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
}
