package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/springcurve/internal/dynamo"
)

// Presets are named adjustments applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"stiff": func(c *Config) {
		c.Physics.Stiffness = 0.08
		c.Physics.Damping = 0.8
	},
	"loose": func(c *Config) {
		c.Physics.Stiffness = 0.008
		c.Physics.Damping = 0.95
	},
	"wide": func(c *Config) {
		c.Width, c.Height = 1280, 720
		c.Physics.Margin = 120
		c.Layout.PointerSpread = 200
	},
	"harmonica": func(c *Config) {
		c.Integrator = "harmonica"
	},
}

// GetPreset returns DefaultConfig with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownPreset)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

// Apply applies the named preset on top of c.
func (c *Config) Apply(name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, dynamo.ErrUnknownPreset)
	}
	apply(c)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
