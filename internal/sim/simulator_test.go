package sim

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/render"
)

type fixedPointer struct{ p dynamo.Vec2 }

func (f fixedPointer) Name() string { return "fixed" }
func (f fixedPointer) At(int, float64, float64) (dynamo.Vec2, bool) {
	return f.p, true
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string        { return "count" }
func (c *countingMetric) Observe(int, *Scene) { c.count++ }
func (c *countingMetric) Value() float64      { return float64(c.count) }
func (c *countingMetric) Reset()              { c.count = 0 }

type countingSurface struct {
	render.Path
	w, h    float64
	clears  int
	strokes int
	circles int
}

func (c *countingSurface) Size() (float64, float64)                    { return c.w, c.h }
func (c *countingSurface) Clear()                                      { c.clears++ }
func (c *countingSurface) Stroke(color.RGBA, float64)                  { c.strokes++ }
func (c *countingSurface) FillCircle(dynamo.Vec2, float64, color.RGBA) { c.circles++ }

func newTestSimulator() *Simulator {
	scene := NewScene(DefaultGeometry(), physics.NewBounds())
	return New(scene, integrators.NewEuler(physics.NewSpring()), render.DefaultStyle())
}

func TestSimulatorRun(t *testing.T) {
	s := newTestSimulator()
	m := &countingMetric{}
	s.AddMetric(m)

	cfg := DefaultConfig()
	cfg.Frames = 120

	result, err := s.Run(context.Background(), cfg, fixedPointer{dynamo.V(400, 200)})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 121 || len(result.Times) != 121 || len(result.Targets) != 121 {
		t.Errorf("expected 121 records, got %d/%d/%d", len(result.States), len(result.Times), len(result.Targets))
	}
	if result.StepsTaken != 120 {
		t.Errorf("steps taken = %d", result.StepsTaken)
	}
	if result.Metrics["count"] != 120 {
		t.Errorf("metric observed %v frames", result.Metrics["count"])
	}
	if math.Abs(result.Times[60]-1.0) > 1e-12 {
		t.Errorf("time at frame 60 = %v, want 1s", result.Times[60])
	}

	last := result.Targets[len(result.Targets)-1]
	if last[0] != 280 || last[1] != 200 || last[2] != 520 {
		t.Errorf("targets = %v", last)
	}
}

func TestSimulatorRun_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Frames = 300
	path := fixedPointer{dynamo.V(100, 550)}

	a, err := newTestSimulator().Run(context.Background(), cfg, path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestSimulator().Run(context.Background(), cfg, path)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.States {
		for j := range a.States[i] {
			if a.States[i][j] != b.States[i][j] {
				t.Fatalf("frame %d value %d differs: %v vs %v", i, j, a.States[i][j], b.States[i][j])
			}
		}
	}
}

func TestSimulatorRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero frames", Config{Frames: 0, FPS: 60, Width: 800, Height: 600}},
		{"zero fps", Config{Frames: 10, FPS: 0, Width: 800, Height: 600}},
		{"zero width", Config{Frames: 10, FPS: 60, Width: 0, Height: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newTestSimulator().Run(context.Background(), tt.cfg, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorRun_StopsOnInvalidState(t *testing.T) {
	s := newTestSimulator()
	cfg := DefaultConfig()
	cfg.Frames = 10

	nan := pointerFunc(func(frame int) (dynamo.Vec2, bool) {
		if frame == 3 {
			return dynamo.V(math.NaN(), 300), true
		}
		return dynamo.Vec2{}, false
	})

	result, err := s.Run(context.Background(), cfg, nan)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Fatalf("errors = %v", result.Errors)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(result.Errors[0], &simErr) || simErr.Frame != 3 {
		t.Errorf("expected failure at frame 3, got %v", result.Errors[0])
	}
	if result.StepsTaken != 3 {
		t.Errorf("steps taken = %d, want 3", result.StepsTaken)
	}
}

type pointerFunc func(frame int) (dynamo.Vec2, bool)

func (f pointerFunc) Name() string { return "func" }
func (f pointerFunc) At(frame int, _, _ float64) (dynamo.Vec2, bool) {
	return f(frame)
}

func TestSimulatorRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSimulator().Run(ctx, DefaultConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorLoop_FrameBudget(t *testing.T) {
	s := newTestSimulator()
	surface := &countingSurface{w: 800, h: 600}

	err := s.Loop(context.Background(), &FrameBudget{Remaining: 5}, surface)
	if err != nil {
		t.Fatal(err)
	}

	if s.FrameCount() != 5 || surface.clears != 5 {
		t.Errorf("frames = %d, clears = %d", s.FrameCount(), surface.clears)
	}
	if surface.strokes != 5*12 || surface.circles != 5*4 {
		t.Errorf("strokes = %d, circles = %d", surface.strokes, surface.circles)
	}
	if !s.Scene().Initialized() || s.Scene().Width != 800 {
		t.Error("loop did not size the scene from the surface")
	}
}

func TestSimulatorLoop_ResizeBetweenFrames(t *testing.T) {
	s := newTestSimulator()
	surface := &countingSurface{w: 800, h: 600}

	if err := s.Loop(context.Background(), &FrameBudget{Remaining: 1}, surface); err != nil {
		t.Fatal(err)
	}

	surface.w, surface.h = 1000, 700
	if err := s.Loop(context.Background(), &FrameBudget{Remaining: 1}, surface); err != nil {
		t.Fatal(err)
	}

	if s.Scene().P3 != dynamo.V(850, 350) {
		t.Errorf("endpoint not moved by resize: %v", s.Scene().P3)
	}
	if s.Scene().Points[0].Pos != dynamo.V(350, 300) {
		t.Errorf("resize moved an interior point at rest: %v", s.Scene().Points[0].Pos)
	}
}

func TestSimulatorLoop_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ticker := NewTicker(60)
	defer ticker.Stop()

	err := newTestSimulator().Loop(ctx, ticker, &countingSurface{w: 800, h: 600})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEnsembleRun(t *testing.T) {
	pointers := []dynamo.Vec2{dynamo.V(100, 100), dynamo.V(700, 500), dynamo.V(400, 300)}
	e := NewEnsemble(len(pointers), func(idx int) (*Simulator, PointerPath, error) {
		return newTestSimulator(), fixedPointer{pointers[idx]}, nil
	})

	cfg := DefaultConfig()
	cfg.Frames = 50
	results, err := e.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.StepsTaken != 50 {
			t.Errorf("run %d: steps = %d", i, r.StepsTaken)
		}
	}
}

func TestSimulatorLoop_InvalidState(t *testing.T) {
	s := newTestSimulator()
	surface := &countingSurface{w: 800, h: 600}
	if err := s.Scene().Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	s.Scene().PointerMove(math.NaN(), 300)

	err := s.Loop(context.Background(), &FrameBudget{Remaining: 10}, surface)
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if simErr.Frame != 0 || s.FrameCount() != 1 {
		t.Errorf("stopped at frame %d after %d frames", simErr.Frame, s.FrameCount())
	}
}

func TestSimulatorRun_DivergingSpringStops(t *testing.T) {
	scene := NewScene(DefaultGeometry(), physics.NewBounds())
	stiff := physics.Spring{Stiffness: 5, Damping: physics.NewSpring().Damping}
	s := New(scene, integrators.NewEuler(stiff), render.DefaultStyle())

	cfg := DefaultConfig()
	cfg.Frames = 2000
	result, err := s.Run(context.Background(), cfg, fixedPointer{dynamo.V(700, 500)})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Fatalf("errors = %v", result.Errors)
	}
	if result.StepsTaken >= cfg.Frames {
		t.Error("diverging run was not stopped")
	}
	for _, v := range result.States[len(result.States)-1] {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("recorded a non-finite state: %v", result.States[len(result.States)-1])
		}
	}
}
