package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/sim"
)

// Experiment binds one scenario to the engine that runs it.
type Experiment struct {
	cfg    *config.Config
	mode   sim.Mode
	opts   []sim.Option
	engine *sim.Engine
}

func New(cfg *config.Config, opts ...sim.Option) *Experiment {
	return &Experiment{cfg: cfg, opts: opts}
}

// Setup validates the scenario and builds a fresh engine with the given metrics.
// Specific heats must already be resolved.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	mode, err := config.ParseMode(e.cfg.Mode)
	if err != nil {
		return err
	}

	eng, err := sim.FromVectors(e.cfg.Vectors(), e.cfg.SimConfig(), e.opts...)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		eng.AddMetric(m)
	}

	e.mode = mode
	e.engine = eng
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.mode == sim.ModePair {
		return e.engine.RunPair(ctx, e.cfg.Duration, e.cfg.PairParams())
	}
	return e.engine.Run(ctx, e.cfg.Duration)
}

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Mode() sim.Mode         { return e.mode }

// Engine returns the underlying engine for adding observers.
func (e *Experiment) Engine() *sim.Engine {
	return e.engine
}
