// Package optim searches spring and boundary parameters for the values that
// minimize a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/springcurve/internal/automation"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/dynamo"
)

// Objective scores one parameter assignment. Lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Size returns the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// point decodes a flat grid index into a parameter assignment.
func (g *GridSearch) point(idx int) map[string]float64 {
	params := make(map[string]float64, len(g.paramNames))
	for d := len(g.paramNames) - 1; d >= 0; d-- {
		r := g.ranges[d]
		params[g.paramNames[d]] = r[idx%len(r)]
		idx /= len(r)
	}
	return params
}

// Search evaluates every grid point in parallel and returns the best one.
// Points whose objective fails or is not finite are skipped; if all of them
// fail the joined errors are returned.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d names for %d ranges: %w", len(g.paramNames), len(g.ranges), dynamo.ErrParameterBounds)
	}
	n := g.Size()
	if n == 0 {
		return nil, 0, fmt.Errorf("empty grid: %w", dynamo.ErrParameterBounds)
	}

	scores := make([]float64, n)
	errs := make([]error, n)
	dynamo.ParallelFor(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			scores[i], errs[i] = objective(ctx, g.point(i))
		}
	})

	best := math.Inf(1)
	bestIdx := -1
	for i, v := range scores {
		if errs[i] != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < best {
			best, bestIdx = v, i
		}
	}
	if bestIdx < 0 {
		return nil, 0, fmt.Errorf("no grid point succeeded: %w", errors.Join(errs...))
	}

	dynamo.Logger().Debug("grid search done", "points", n, "best", best)
	return g.point(bestIdx), best, nil
}

// MetricObjective scores a parameter assignment by running base with the
// assignment applied and reading the named metric.
func MetricObjective(base *config.Config, metric string) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for k, v := range params {
			if err := cfg.SetParam(k, v); err != nil {
				return 0, err
			}
		}
		result, err := automation.RunConfig(ctx, cfg)
		if err != nil {
			return 0, err
		}
		if len(result.Errors) > 0 {
			return 0, result.Errors[0]
		}
		val, ok := result.Metrics[metric]
		if !ok {
			return 0, fmt.Errorf("metric %q not recorded", metric)
		}
		return val, nil
	}
}
