package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/render"
)

type Simulator struct {
	scene      *Scene
	integrator integrators.Integrator
	style      render.Style
	metrics    []Metric
	observers  []Observer
	frame      int
}

func New(scene *Scene, integrator integrators.Integrator, style render.Style) *Simulator {
	return &Simulator{
		scene:      scene,
		integrator: integrator,
		style:      style,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Scene() *Scene       { return s.scene }
func (s *Simulator) Style() render.Style { return s.style }
func (s *Simulator) FrameCount() int     { return s.frame }

func (s *Simulator) SetStyle(st render.Style) { s.style = st }

// Draw redraws the current curve without stepping.
func (s *Simulator) Draw(surface render.Surface) {
	surface.Clear()
	render.DrawCurve(surface, s.scene.Curve(), s.style)
}

// Frame clears the surface, advances the physics one step and draws the
// curve. A nil surface only steps.
func (s *Simulator) Frame(surface render.Surface) {
	if surface != nil {
		surface.Clear()
	}

	s.scene.Step(s.integrator)
	for _, m := range s.metrics {
		m.Observe(s.frame, s.scene)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.frame, s.scene)
	}
	s.frame++

	if surface != nil {
		render.DrawCurve(surface, s.scene.Curve(), s.style)
	}
}

// Loop runs frames until the scheduler or the context stops it, or the state
// stops being finite. Surface size changes are forwarded to the scene before
// each frame.
func (s *Simulator) Loop(ctx context.Context, sched Scheduler, surface render.Surface) error {
	log := dynamo.Logger()
	log.Debug("loop started", "integrator", fmt.Sprintf("%T", s.integrator))

	for sched.Next(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if surface != nil {
			w, h := surface.Size()
			if w != s.scene.Width || h != s.scene.Height || !s.scene.Initialized() {
				if err := s.scene.Resize(w, h); err != nil {
					log.Warn("ignoring resize", "err", err)
					continue
				}
			}
		}
		s.Frame(surface)
		if !s.scene.Valid() {
			return &dynamo.SimulationError{Frame: s.frame - 1, Wrapped: dynamo.ErrInvalidState}
		}
	}

	log.Debug("loop stopped", "frames", s.frame)
	return ctx.Err()
}

// Run simulates cfg.Frames frames headlessly, feeding the pointer from path
// (which may be nil) before each frame and recording the trajectory.
func (s *Simulator) Run(ctx context.Context, cfg Config, path PointerPath) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.scene.Resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([][]float64, 0, cfg.Frames+1),
		Targets: make([][]float64, 0, cfg.Frames+1),
		Times:   make([]float64, 0, cfg.Frames+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.frame = 0

	dt := 1 / float64(cfg.FPS)
	record := func(i int) {
		result.States = append(result.States, s.scene.State())
		result.Targets = append(result.Targets, s.scene.TargetState())
		result.Times = append(result.Times, float64(i)*dt)
	}
	record(0)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if path != nil {
			if p, ok := path.At(i, cfg.Width, cfg.Height); ok {
				s.scene.PointerMove(p.X, p.Y)
			}
		}

		s.Frame(nil)

		if cfg.ValidateState && !s.scene.Valid() {
			err := &dynamo.SimulationError{Frame: i, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			dynamo.Logger().Warn("run stopped", "err", err)
			break
		}

		result.StepsTaken++
		record(i + 1)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d: %w", cfg.Frames, dynamo.ErrParameterBounds)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", cfg.FPS, dynamo.ErrParameterBounds)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("size %gx%g: %w", cfg.Width, cfg.Height, dynamo.ErrInvalidSize)
	}
	return nil
}
