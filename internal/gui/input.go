package gui

import (
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

// pointerTracker turns per-frame mouse polling into movement events. The
// first reading only primes it, so a cursor that has not moved yet (or has
// never entered the window) leaves the spring targets alone.
type pointerTracker struct {
	last   dynamo.Vec2
	primed bool
}

// moved records p and reports whether it differs from the previous reading.
func (t *pointerTracker) moved(p dynamo.Vec2) bool {
	if !t.primed {
		t.last, t.primed = p, true
		return false
	}
	if p == t.last {
		return false
	}
	t.last = p
	return true
}

// apply forwards p to the scene when the cursor has moved since the last
// frame.
func (t *pointerTracker) apply(scene *sim.Scene, p dynamo.Vec2) {
	if t.moved(p) && scene.Initialized() {
		scene.PointerMove(p.X, p.Y)
	}
}
