package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/physics"
	"github.com/san-kum/springcurve/internal/render"
	"github.com/san-kum/springcurve/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
	DefaultFrames = 600
)

type Config struct {
	Integrator string         `yaml:"integrator"`
	FPS        int            `yaml:"fps"`
	Frames     int            `yaml:"frames"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Path       string         `yaml:"path"`
	Physics    PhysicsConfig  `yaml:"physics"`
	Layout     GeometryConfig `yaml:"geometry"`
	Colors     ColorConfig    `yaml:"colors"`
}

type PhysicsConfig struct {
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`
	Margin     float64 `yaml:"margin"`
	BoundsGain float64 `yaml:"bounds_gain"`
}

type GeometryConfig struct {
	EndpointInset  float64 `yaml:"endpoint_inset"`
	InteriorOffset float64 `yaml:"interior_offset"`
	PointerSpread  float64 `yaml:"pointer_spread"`
	TangentLength  float64 `yaml:"tangent_length"`
	PointRadius    float64 `yaml:"point_radius"`
	CurveWidth     float64 `yaml:"curve_width"`
}

type ColorConfig struct {
	Background string `yaml:"background"`
	Curve      string `yaml:"curve"`
	Tangent    string `yaml:"tangent"`
	Endpoint   string `yaml:"endpoint"`
	Interior   string `yaml:"interior"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "euler",
		FPS:        DefaultFPS,
		Frames:     DefaultFrames,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Path:       "circle",
		Physics: PhysicsConfig{
			Stiffness:  physics.DefaultStiffness,
			Damping:    physics.DefaultDamping,
			Margin:     physics.DefaultMargin,
			BoundsGain: physics.DefaultGain,
		},
		Layout: GeometryConfig{
			EndpointInset:  sim.DefaultEndpointInset,
			InteriorOffset: sim.DefaultInteriorOffset,
			PointerSpread:  sim.DefaultPointerSpread,
			TangentLength:  30,
			PointRadius:    6,
			CurveWidth:     2,
		},
		Colors: ColorConfig{
			Background: "#0a0a0a",
			Curve:      "#ffffff",
			Tangent:    "#00ffaa",
			Endpoint:   "#ff5555",
			Interior:   "#ffaa00",
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.Spring().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Bounds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d: %w", c.FPS, dynamo.ErrParameterBounds))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames %d: %w", c.Frames, dynamo.ErrParameterBounds))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d: %w", c.Width, c.Height, dynamo.ErrInvalidSize))
	}
	if _, err := c.Style(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Spring() physics.Spring {
	return physics.Spring{Stiffness: c.Physics.Stiffness, Damping: c.Physics.Damping}
}

func (c *Config) Bounds() physics.Bounds {
	return physics.Bounds{Margin: c.Physics.Margin, Gain: c.Physics.BoundsGain}
}

func (c *Config) Geometry() sim.Geometry {
	return sim.Geometry{
		EndpointInset:  c.Layout.EndpointInset,
		InteriorOffset: c.Layout.InteriorOffset,
		PointerSpread:  c.Layout.PointerSpread,
	}
}

func (c *Config) Style() (render.Style, error) {
	st := render.DefaultStyle()
	st.TangentLength = c.Layout.TangentLength
	st.PointRadius = c.Layout.PointRadius
	st.CurveWidth = c.Layout.CurveWidth
	st.TangentWidth = c.Layout.CurveWidth

	colors := []struct {
		hex string
		dst *color.RGBA
	}{
		{c.Colors.Background, &st.Background},
		{c.Colors.Curve, &st.Curve},
		{c.Colors.Tangent, &st.Tangent},
		{c.Colors.Endpoint, &st.Endpoint},
		{c.Colors.Interior, &st.Interior},
	}
	for _, col := range colors {
		if col.hex == "" {
			continue
		}
		rgba, err := render.ParseHex(col.hex)
		if err != nil {
			return st, err
		}
		*col.dst = rgba
	}
	return st, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Frames:        c.Frames,
		FPS:           c.FPS,
		Width:         float64(c.Width),
		Height:        float64(c.Height),
		ValidateState: true,
	}
}

// NewSimulator builds a fresh scene and simulator from the config.
func (c *Config) NewSimulator() (*sim.Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.New(c.Integrator, c.Spring(), c.FPS)
	if err != nil {
		return nil, err
	}
	style, err := c.Style()
	if err != nil {
		return nil, err
	}
	scene := sim.NewScene(c.Geometry(), c.Bounds())
	return sim.New(scene, integ, style), nil
}

// Params returns the tunable numeric settings by name.
func (c *Config) Params() map[string]float64 {
	return map[string]float64{
		"stiffness":      c.Physics.Stiffness,
		"damping":        c.Physics.Damping,
		"margin":         c.Physics.Margin,
		"bounds_gain":    c.Physics.BoundsGain,
		"pointer_spread": c.Layout.PointerSpread,
	}
}

func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "stiffness":
		c.Physics.Stiffness = value
	case "damping":
		c.Physics.Damping = value
	case "margin":
		c.Physics.Margin = value
	case "bounds_gain":
		c.Physics.BoundsGain = value
	case "pointer_spread":
		c.Layout.PointerSpread = value
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}
