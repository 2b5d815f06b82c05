package gui

import "github.com/san-kum/springcurve/internal/dynamo"

// Telemetry is a bounded history of one scalar for the HUD graph.
type Telemetry struct {
	values   []float64
	capacity int
}

func NewTelemetry(capacity int) *Telemetry {
	return &Telemetry{values: make([]float64, 0, capacity), capacity: capacity}
}

func (t *Telemetry) Push(v float64) {
	t.values = append(t.values, v)
	if len(t.values) > t.capacity {
		t.values = t.values[1:]
	}
}

func (t *Telemetry) Values() []float64 { return t.values }

// Polyline maps the history into the box at (x, y) of size w x h, newest
// sample on the right and the largest sample touching the top.
func (t *Telemetry) Polyline(x, y, w, h float64) []dynamo.Vec2 {
	if len(t.values) == 0 {
		return nil
	}
	peak := 0.0
	for _, v := range t.values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	pts := make([]dynamo.Vec2, len(t.values))
	step := w / float64(t.capacity-1)
	offset := float64(t.capacity - len(t.values))
	for i, v := range t.values {
		pts[i] = dynamo.V(x+(offset+float64(i))*step, y+h-h*dynamo.Clamp(v/peak, 0, 1))
	}
	return pts
}
