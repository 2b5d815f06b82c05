package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/dynamo"
)

func TestSpring_AtRest(t *testing.T) {
	s := NewSpring()
	pos := dynamo.V(350, 300)
	vel := dynamo.Vec2{}

	s.Step(&pos, &vel, dynamo.V(350, 300))

	if vel != (dynamo.Vec2{}) {
		t.Errorf("expected zero velocity, got %v", vel)
	}
	if pos != dynamo.V(350, 300) {
		t.Errorf("expected position unchanged, got %v", pos)
	}
}

func TestSpring_SingleStep(t *testing.T) {
	s := NewSpring()
	pos := dynamo.V(0, 0)
	vel := dynamo.Vec2{}

	s.Step(&pos, &vel, dynamo.V(100, -50))

	// force (2, -1), damped by 0.88
	want := dynamo.V(1.76, -0.88)
	if math.Abs(vel.X-want.X) > 1e-12 || math.Abs(vel.Y-want.Y) > 1e-12 {
		t.Errorf("velocity = %v, want %v", vel, want)
	}
	if pos != vel {
		t.Errorf("position = %v, want %v", pos, vel)
	}
}

func TestSpring_VelocityDecaysAtTarget(t *testing.T) {
	s := NewSpring()
	target := dynamo.V(200, 200)
	pos := target
	vel := dynamo.V(5, -3)

	for i := 0; i < 550; i++ {
		s.Step(&pos, &vel, target)
	}
	if vel.Len() > 1e-6 {
		t.Errorf("velocity did not decay: %v", vel)
	}
	if pos.Sub(target).Len() > 1e-4 {
		t.Errorf("position did not settle at target: %v", pos)
	}
}

func TestSpring_Converges(t *testing.T) {
	s := NewSpring()
	pos := dynamo.V(100, 100)
	vel := dynamo.Vec2{}
	target := dynamo.V(500, 300)

	for i := 0; i < 2000; i++ {
		s.Step(&pos, &vel, target)
	}
	if d := pos.Sub(target).Len(); d > 1e-3 {
		t.Errorf("distance to target after 2000 steps = %v", d)
	}
}

func TestSpring_Validate(t *testing.T) {
	tests := []struct {
		name   string
		spring Spring
		ok     bool
	}{
		{"default", NewSpring(), true},
		{"zero stiffness", Spring{Stiffness: 0, Damping: 0.9}, false},
		{"damping above one", Spring{Stiffness: 0.02, Damping: 1.2}, false},
		{"zero damping", Spring{Stiffness: 0.02, Damping: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spring.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestSpring_Params(t *testing.T) {
	s := NewSpring()
	if err := s.SetParam("stiffness", 0.05); err != nil {
		t.Fatal(err)
	}
	if s.GetParams()["stiffness"] != 0.05 {
		t.Errorf("stiffness not updated: %v", s.GetParams())
	}
	if err := s.SetParam("mass", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
