package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/render"
	"github.com/san-kum/springcurve/internal/sim"
)

func newScene(t *testing.T) *sim.Scene {
	t.Helper()
	s := sim.NewScene(sim.DefaultGeometry(), physics.NewBounds())
	if err := s.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestKineticEnergy(t *testing.T) {
	s := newScene(t)
	m := NewKineticEnergy()

	s.Points[0].Vel = dynamo.V(3, 4)
	m.Observe(0, s)
	s.Points[0].Vel = dynamo.Vec2{}
	m.Observe(1, s)

	if math.Abs(m.Value()-6.25) > 1e-12 {
		t.Errorf("mean energy = %v, want 6.25", m.Value())
	}
	if m.Last() != 0 {
		t.Errorf("last energy = %v, want 0", m.Last())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestSettle(t *testing.T) {
	s := newScene(t)
	m := NewSettle(0.1)

	speeds := []float64{2, 1, 0.05, 0.5, 0.01, 0.01, 0.01}
	for i, v := range speeds {
		s.Points[0].Vel = dynamo.V(v, 0)
		m.Observe(i, s)
	}

	if got := m.Value(); got != 4 {
		t.Errorf("settle frame = %v, want 4", got)
	}
	if !m.Settled() {
		t.Error("expected settled")
	}
}

func TestSettle_Never(t *testing.T) {
	s := newScene(t)
	m := NewSettle(0.1)
	s.Points[1].Vel = dynamo.V(0, 3)

	for i := 0; i < 10; i++ {
		m.Observe(i, s)
	}
	if m.Value() != 10 || m.Settled() {
		t.Errorf("unsettled run: value = %v settled = %v", m.Value(), m.Settled())
	}
}

func TestMarginIntrusion(t *testing.T) {
	s := newScene(t)
	m := NewMarginIntrusion()

	m.Observe(0, s)
	s.Points[1].Pos = dynamo.V(790, 300)
	m.Observe(1, s)
	s.Points[0].Pos = dynamo.V(10, 10)
	m.Observe(2, s)
	s.Points[0].Pos = dynamo.V(400, 300)
	s.Points[1].Pos = dynamo.V(400, 300)
	m.Observe(3, s)

	if got := m.Value(); got != 0.5 {
		t.Errorf("intrusion ratio = %v, want 0.5", got)
	}
}

func TestDefaultsInRun(t *testing.T) {
	scene := sim.NewScene(sim.DefaultGeometry(), physics.NewBounds())
	s := sim.New(scene, integrators.NewEuler(physics.NewSpring()), render.DefaultStyle())
	for _, m := range Defaults() {
		s.AddMetric(m)
	}

	cfg := sim.DefaultConfig()
	cfg.Frames = 10
	result, err := s.Run(t.Context(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"kinetic_energy", "settle_frame", "margin_intrusion"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if result.Metrics["settle_frame"] != 0 {
		t.Errorf("scene at rest should settle on frame 0, got %v", result.Metrics["settle_frame"])
	}
}
