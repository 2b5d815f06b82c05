package sim

import (
	"context"

	"github.com/san-kum/springcurve/internal/dynamo"
)

// ControlPoint is a free curve point with its velocity in units per frame.
type ControlPoint struct {
	Pos dynamo.Vec2
	Vel dynamo.Vec2
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(frame int, s *Scene)
	Value() float64
	Reset()
}

// Observer is notified after every simulated frame.
type Observer interface {
	OnFrame(frame int, s *Scene)
}

// Scheduler paces a Loop. Next blocks until the next frame should run and
// returns false when the loop must stop.
type Scheduler interface {
	Next(ctx context.Context) bool
}

// PointerPath scripts pointer positions for headless runs. ok is false on
// frames with no pointer movement.
type PointerPath interface {
	Name() string
	At(frame int, w, h float64) (p dynamo.Vec2, ok bool)
}

// Config parameterizes a headless run.
type Config struct {
	Frames        int
	FPS           int
	Width         float64
	Height        float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Frames:        600,
		FPS:           60,
		Width:         800,
		Height:        600,
		ValidateState: true,
	}
}

// StateDim is the number of values recorded per frame:
// p1x, p1y, v1x, v1y, p2x, p2y, v2x, v2y.
const StateDim = 8

// Result is the recorded trajectory of a headless run. States[0] is the
// scene before the first frame.
type Result struct {
	States     [][]float64
	Targets    [][]float64
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
