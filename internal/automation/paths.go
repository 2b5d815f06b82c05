package automation

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

// Path is a pointer script defined by a function of frame and surface size.
type Path struct {
	name string
	fn   func(frame int, w, h float64) (dynamo.Vec2, bool)
}

func (p Path) Name() string { return p.name }

func (p Path) At(frame int, w, h float64) (dynamo.Vec2, bool) {
	return p.fn(frame, w, h)
}

var paths = map[string]Path{
	// still never moves the pointer, so the points rest where resize put them.
	"still": {"still", func(int, float64, float64) (dynamo.Vec2, bool) {
		return dynamo.Vec2{}, false
	}},
	// sweep crosses the surface left to right and back every 240 frames.
	"sweep": {"sweep", func(frame int, w, h float64) (dynamo.Vec2, bool) {
		phase := float64(frame%240) / 240
		tri := 1 - math.Abs(2*phase-1)
		return dynamo.V(tri*w, h/2), true
	}},
	"circle": {"circle", func(frame int, w, h float64) (dynamo.Vec2, bool) {
		a := 2 * math.Pi * float64(frame) / 180
		r := 0.3 * math.Min(w, h)
		return dynamo.V(w/2+r*math.Cos(a), h/2+r*math.Sin(a)), true
	}},
	"figure8": {"figure8", func(frame int, w, h float64) (dynamo.Vec2, bool) {
		a := 2 * math.Pi * float64(frame) / 300
		return dynamo.V(w/2+0.35*w*math.Sin(a), h/2+0.3*h*math.Sin(2*a)), true
	}},
	// jump teleports between opposite corners every 120 frames.
	"jump": {"jump", func(frame int, w, h float64) (dynamo.Vec2, bool) {
		if frame%120 != 0 {
			return dynamo.Vec2{}, false
		}
		if (frame/120)%2 == 0 {
			return dynamo.V(0, 0), true
		}
		return dynamo.V(w, h), true
	}},
}

// GetPath returns the pointer path registered under name.
func GetPath(name string) (sim.PointerPath, error) {
	p, ok := paths[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownPath)
	}
	return p, nil
}

func ListPaths() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
