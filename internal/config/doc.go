// Package config loads and validates springcurve settings.
//
// Settings come from [DefaultConfig], optionally overlaid by a YAML file via
// [Load] and a named preset via [Config.Apply]. A validated config builds the
// physics, geometry and style values the simulation needs.
package config
