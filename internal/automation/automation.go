// Package automation drives headless runs from scripted pointer paths,
// YAML scenarios and parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/metrics"
	"github.com/san-kum/springcurve/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario.
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Path       string             `yaml:"path"`
	Preset     string             `yaml:"preset"`
	Integrator string             `yaml:"integrator"`
	Frames     int                `yaml:"frames"`
	Params     map[string]float64 `yaml:"params"`
}

// StepResult pairs a scenario step with its run.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Configure derives the run config of a step from base.
func (step ScenarioStep) Configure(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if step.Preset != "" {
		if err := cfg.Apply(step.Preset); err != nil {
			return nil, err
		}
	}
	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Path != "" {
		cfg.Path = step.Path
	}
	if step.Frames > 0 {
		cfg.Frames = step.Frames
	}
	for k, v := range step.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunConfig runs one headless simulation with the default metrics attached.
func RunConfig(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	s, err := cfg.NewSimulator()
	if err != nil {
		return nil, err
	}
	path, err := GetPath(cfg.Path)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s.Run(ctx, cfg.SimConfig(), path)
}

// RunScenario executes all steps in order, stopping at the first error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config) ([]StepResult, error) {
	log := dynamo.Logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", "n", i+1, "of", len(scenario.Steps), "name", step.Name, "path", step.Path)

		cfg, err := step.Configure(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := RunConfig(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep runs the same path across evenly spaced values of one
// parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		result, err := RunConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		dynamo.Logger().Debug("sweep point", "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}
