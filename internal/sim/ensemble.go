package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent headless simulations concurrently. Each run gets
// its own Simulator from build, so no scene is shared between goroutines.
type Ensemble struct {
	build func(idx int) (*Simulator, PointerPath, error)
	runs  int
}

func NewEnsemble(runs int, build func(idx int) (*Simulator, PointerPath, error)) *Ensemble {
	return &Ensemble{build: build, runs: runs}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, path, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg, path)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
