package sim

import (
	"context"
	"sync"
)

// Factory builds a fresh engine with its own bodies.
type Factory func() (*Engine, error)

// Runner drives one member engine to completion.
type Runner func(ctx context.Context, e *Engine, total float64) (*Result, error)

// Ensemble runs independent engines concurrently. Each engine is still stepped by a
// single goroutine; nothing is shared between members.
type Ensemble struct {
	factories []Factory
	runner    Runner
}

func NewEnsemble(factories ...Factory) *Ensemble {
	return &Ensemble{
		factories: factories,
		runner: func(ctx context.Context, e *Engine, total float64) (*Result, error) {
			return e.Run(ctx, total)
		},
	}
}

// WithPair makes every member run in pair mode with p.
func (e *Ensemble) WithPair(p Pair) *Ensemble {
	e.runner = func(ctx context.Context, eng *Engine, total float64) (*Result, error) {
		return eng.RunPair(ctx, total, p)
	}
	return e
}

func (e *Ensemble) Run(ctx context.Context, total float64) ([]*Result, error) {
	results, errs := e.RunEach(ctx, total)
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// RunEach reports every member's result and error separately. A failed member's
// result holds whatever it simulated before the failure, or nil if it was never built.
func (e *Ensemble) RunEach(ctx context.Context, total float64) ([]*Result, []error) {
	results := make([]*Result, len(e.factories))
	errs := make([]error, len(e.factories))

	var wg sync.WaitGroup
	for i, factory := range e.factories {
		wg.Add(1)
		go func(idx int, build Factory) {
			defer wg.Done()

			eng, err := build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = e.runner(ctx, eng, total)
		}(i, factory)
	}

	wg.Wait()
	return results, errs
}
