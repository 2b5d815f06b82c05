package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/dynamo"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(Linspace(3, 9, 1)) != 1 {
		t.Error("single point linspace")
	}
}

func TestGridSearch_Quadratic(t *testing.T) {
	g := NewGridSearch(
		[]string{"x", "y"},
		[][]float64{Linspace(-2, 2, 9), Linspace(-2, 2, 9)},
	)
	if g.Size() != 81 {
		t.Fatalf("size = %d", g.Size())
	}

	params, best, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		dx, dy := p["x"]-1, p["y"]+0.5
		return dx*dx + dy*dy, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if params["x"] != 1 || params["y"] != -0.5 || best != 0 {
		t.Errorf("best = %v at %v", best, params)
	}
}

func TestGridSearch_SkipsFailures(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	params, best, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, errors.New("boom")
		}
		if p["x"] == 2 {
			return math.NaN(), nil
		}
		return p["x"], nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if params["x"] != 3 || best != 3 {
		t.Errorf("best = %v at %v", best, params)
	}
}

func TestGridSearch_AllFail(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	_, _, err := g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGridSearch_Mismatch(t *testing.T) {
	g := NewGridSearch([]string{"x", "y"}, [][]float64{{1}})
	if _, _, err := g.Search(context.Background(), nil); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestMetricObjective_Damping(t *testing.T) {
	base := config.DefaultConfig()
	base.Path = "jump"
	base.Frames = 240

	g := NewGridSearch([]string{"damping"}, [][]float64{{0.7, 0.99}})
	params, _, err := g.Search(context.Background(), MetricObjective(base, "kinetic_energy"))
	if err != nil {
		t.Fatal(err)
	}
	if params["damping"] != 0.7 {
		t.Errorf("heavier damping should dissipate more energy, got %v", params)
	}
}

func TestMetricObjective_UnknownMetric(t *testing.T) {
	base := config.DefaultConfig()
	base.Frames = 5
	obj := MetricObjective(base, "nope")
	if _, err := obj(context.Background(), nil); err == nil {
		t.Error("expected error for unknown metric")
	}
}
