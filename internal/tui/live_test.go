package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/render"
	"github.com/san-kum/springcurve/internal/sim"
)

func TestLiveRenderer_Throttles(t *testing.T) {
	scene := sim.NewScene(sim.DefaultGeometry(), physics.Bounds{Margin: physics.DefaultMargin, Gain: physics.DefaultGain})
	if err := scene.Resize(800, 600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "circle", 10, render.DefaultStyle())
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	r.OnFrame(0, scene)
	r.OnFrame(1, scene)
	clock = clock.Add(150 * time.Millisecond)
	r.OnFrame(2, scene)

	out := buf.String()
	if n := strings.Count(out, clearScreen); n != 2 {
		t.Errorf("rendered %d frames, want 2", n)
	}
	if !strings.Contains(out, "frame=2") || strings.Contains(out, "frame=1") {
		t.Errorf("unexpected frames in output:\n%s", out)
	}
	// header, two rules, canvas rows, footer per frame
	lines := strings.Count(out, "\n")
	if lines != 2*(height+4) {
		t.Errorf("lines = %d", lines)
	}
}

func TestLiveRenderer_StartStop(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "x", 0, render.DefaultStyle())
	r.Start()
	r.Stop()
	if buf.String() != hideCursor+showCursor {
		t.Errorf("got %q", buf.String())
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{800, 600, 7.5},
		{1400, 400, 10},
		{0, 0, 1},
	}
	for _, tt := range tests {
		got := fitScale(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("fitScale(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
		if tt.w > 0 && (got*width*2 < tt.w || got*height*4 < tt.h) {
			t.Errorf("scale %v does not cover %vx%v", got, tt.w, tt.h)
		}
	}
}
