// Package gui is the raylib window front end: the curve follows the mouse
// and the window can be resized freely.
package gui

import (
	"context"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/springcurve/internal/audio"
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

const telemetryCapacity = 200

// Options configures the window.
type Options struct {
	Width, Height int
	FPS           int
	Title         string
	Audio         bool
}

// App owns the window, its input handling and the HUD. It implements
// sim.Scheduler: every Next call ends the previous frame, processes input
// and begins the next one.
type App struct {
	sim     *sim.Simulator
	surface *Surface
	player  *audio.Player

	paused    bool
	showHUD   bool
	drawing   bool
	pointer   pointerTracker
	telemetry *Telemetry
}

func NewApp(s *sim.Simulator) *App {
	return &App{
		sim:       s,
		surface:   &Surface{Background: s.Style().Background},
		showHUD:   true,
		telemetry: NewTelemetry(telemetryCapacity),
	}
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, s *sim.Simulator, opts Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)

	app := NewApp(s)
	if opts.Audio {
		app.player = audio.NewPlayer()
		if err := app.player.Start(); err != nil {
			dynamo.Logger().Warn("audio disabled", "err", err)
			app.player = nil
		} else {
			defer app.player.Stop()
			s.AddObserver(app.player)
		}
	}

	err := s.Loop(ctx, app, app.surface)
	app.finish()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Next implements sim.Scheduler.
func (a *App) Next(ctx context.Context) bool {
	for {
		if a.drawing {
			a.drawHUD()
			rl.EndDrawing()
			a.drawing = false
		}
		if ctx.Err() != nil || rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) {
			return false
		}

		a.handleInput()

		rl.BeginDrawing()
		a.drawing = true
		if !a.paused {
			a.telemetry.Push(a.sim.Scene().KineticEnergy())
			return true
		}
		// paused frames only redraw
		a.sim.Draw(a.surface)
	}
}

func (a *App) finish() {
	if a.drawing {
		rl.EndDrawing()
		a.drawing = false
	}
}

func (a *App) handleInput() {
	m := rl.GetMousePosition()
	a.pointer.apply(a.sim.Scene(), dynamo.V(float64(m.X), float64(m.Y)))

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
}

func (a *App) drawHUD() {
	if !a.showHUD {
		return
	}
	for i, line := range hudLines(a.sim, a.paused) {
		rl.DrawText(line, 20, int32(20+i*18), 14, ColText)
	}
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, int32(rl.GetScreenHeight()-30), 14, ColTextDim)

	w, h := a.sim.Scene().Width, a.sim.Scene().Height
	pts := a.telemetry.Polyline(w-220, h-80, 200, 60)
	if len(pts) > 1 {
		strip := make([]rl.Vector2, len(pts))
		for i, p := range pts {
			strip[i] = vec(p)
		}
		rl.DrawLineStrip(strip, ColAccent)
	}
}

func hudLines(s *sim.Simulator, paused bool) []string {
	scene := s.Scene()
	status := "running"
	if paused {
		status = "paused"
	}
	return []string{
		fmt.Sprintf("frame %d  %s", s.FrameCount(), status),
		fmt.Sprintf("energy %.4f", scene.KineticEnergy()),
		fmt.Sprintf("p1 %s", scene.Points[0].Pos),
		fmt.Sprintf("p2 %s", scene.Points[1].Pos),
		"space pause  h hud  q quit",
	}
}
