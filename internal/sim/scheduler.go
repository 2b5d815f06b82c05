package sim

import (
	"context"
	"time"
)

// FrameBudget allows a fixed number of frames, then stops.
type FrameBudget struct {
	Remaining int
}

func (b *FrameBudget) Next(ctx context.Context) bool {
	if ctx.Err() != nil || b.Remaining <= 0 {
		return false
	}
	b.Remaining--
	return true
}

// Ticker paces frames at a fixed rate until the context is done. Missed
// ticks are dropped, not caught up.
type Ticker struct {
	t *time.Ticker
}

func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *Ticker) Next(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.t.C:
		return true
	}
}

func (t *Ticker) Stop() { t.t.Stop() }
