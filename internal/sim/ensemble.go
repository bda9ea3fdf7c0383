package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/san-kum/particlebox/internal/gas"
)

// Ensemble runs seed-varied copies of the same scenario concurrently. Each
// run gets its own cloud, runner, and metric set, so runs never share
// mutable state.
type Ensemble struct {
	params    gas.Params
	numRuns   int
	seedStart int64
	mkMetrics func() []Metric
}

func NewEnsemble(params gas.Params, numRuns int, seedStart int64, mkMetrics func() []Metric) *Ensemble {
	return &Ensemble{params: params, numRuns: numRuns, seedStart: seedStart, mkMetrics: mkMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			cloud, err := gas.NewCloud(e.params, rand.New(rand.NewSource(seed)))
			if err != nil {
				errs[idx] = fmt.Errorf("run %d: %w", idx, err)
				return
			}

			r := New(cloud)
			if e.mkMetrics != nil {
				for _, m := range e.mkMetrics() {
					r.AddMetric(m)
				}
			}

			cfgCopy := cfg
			cfgCopy.Seed = seed
			results[idx], errs[idx] = r.Run(ctx, cfgCopy)
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
