// Package metrics provides per-frame observers that summarize a run.
package metrics

import "github.com/san-kum/springcurve/internal/sim"

// DefaultSettleThreshold is the combined speed, in units per frame, below
// which the free points count as at rest.
const DefaultSettleThreshold = 0.05

// Defaults returns the metrics attached to every recorded run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewSettle(DefaultSettleThreshold),
		NewMarginIntrusion(),
	}
}
