package sim

import (
	"context"
	"sync"

	"github.com/san-kum/springsim/internal/pendulum"
)

// Compare runs the same initial state once per engine, each on its own
// goroutine and its own copy of the state. newMetrics is called once per run
// so metrics are never shared between goroutines; it may be nil. fm is
// shared by all runs and must be safe for concurrent use.
func Compare(ctx context.Context, fm pendulum.ForceModel, x0 pendulum.State, engines []pendulum.Engine, cfg Config, newMetrics func() []Metric) ([]*Result, error) {
	results := make([]*Result, len(engines))
	errs := make([]error, len(engines))

	var wg sync.WaitGroup
	for i, engine := range engines {
		wg.Add(1)
		go func(idx int, engine pendulum.Engine) {
			defer wg.Done()

			s := New(fm)
			if newMetrics != nil {
				for _, m := range newMetrics() {
					s.AddMetric(m)
				}
			}

			start := x0.Clone()
			start.Engine = engine
			results[idx], errs[idx] = s.Run(ctx, start, cfg)
		}(i, engine)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
