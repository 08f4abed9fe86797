package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/heatsim/internal/thermal"
	"gonum.org/v1/gonum/mat"
)

// Engine advances a fixed set of bodies through explicit time steps.
// It is the exclusive writer of its bodies' temperatures and histories.
type Engine struct {
	bodies       []*thermal.Body
	ambient      float64
	convection   float64
	coefficients []float64
	conductance  *mat.SymDense
	dt           float64
	steps        int
	elapsed      float64
	pool         *TempPool
	metrics      []Metric
	observers    []Observer
	log          *slog.Logger
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New validates cfg against the bodies and returns an idle engine.
// Nothing is constructed when validation fails.
func New(cfg Config, bodies []*thermal.Body, opts ...Option) (*Engine, error) {
	if err := validateConfig(cfg, bodies); err != nil {
		return nil, err
	}

	e := &Engine{
		bodies:     append([]*thermal.Body(nil), bodies...),
		ambient:    cfg.AmbientTemperature,
		convection: cfg.Convection,
		dt:         cfg.Dt,
		pool:       NewTempPool(len(bodies)),
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        slog.New(slog.DiscardHandler),
	}
	if cfg.AmbientCoefficients != nil {
		e.coefficients = append([]float64(nil), cfg.AmbientCoefficients...)
	}
	if cfg.Conductance != nil {
		e.conductance = symmetric(cfg.Conductance)
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Bodies() []*thermal.Body     { return append([]*thermal.Body(nil), e.bodies...) }
func (e *Engine) Dt() float64                 { return e.dt }
func (e *Engine) Elapsed() float64            { return e.elapsed }
func (e *Engine) StepsTaken() int             { return e.steps }
func (e *Engine) AmbientTemperature() float64 { return e.ambient }

// Mode reports which stepping algorithm Run and Step use.
func (e *Engine) Mode() Mode {
	if e.conductance != nil {
		return ModeCoupled
	}
	return ModeAmbient
}

// Coefficient returns the ambient convection coefficient applied to body i.
func (e *Engine) Coefficient(i int) float64 {
	if e.coefficients != nil {
		return e.coefficients[i]
	}
	return e.convection
}

// Conductance returns G[i][j], or 0 when no matrix is configured.
func (e *Engine) Conductance(i, j int) float64 {
	if e.conductance == nil || i == j {
		return 0
	}
	return e.conductance.At(i, j)
}

// SetAmbient reconfigures the environment between runs.
func (e *Engine) SetAmbient(temperature, convection float64) error {
	if !finite(temperature) {
		return fmt.Errorf("%w: ambient temperature must be finite, got %g", thermal.ErrInvalidParameter, temperature)
	}
	if !positive(convection) {
		return fmt.Errorf("%w: convection coefficient must be positive, got %g", thermal.ErrInvalidParameter, convection)
	}
	e.ambient = temperature
	e.convection = convection
	return nil
}

// Run steps floor(total/dt) times in ambient or coupled mode and returns every body's
// history. The remainder below one dt is not simulated.
func (e *Engine) Run(ctx context.Context, total float64) (*Result, error) {
	mode := e.Mode()
	return e.run(ctx, mode, total, e.Step)
}

// RunPair steps floor(total/dt) times exchanging heat by conduction between p.A and p.B only.
func (e *Engine) RunPair(ctx context.Context, total float64, p Pair) (*Result, error) {
	if err := e.validatePair(p); err != nil {
		return nil, err
	}
	return e.run(ctx, ModePair, total, func() error { return e.StepPair(p) })
}

// Step performs one ambient or coupled step.
func (e *Engine) Step() error {
	if e.conductance != nil {
		return e.advance(true, e.conductMatrix)
	}
	return e.advance(true, nil)
}

// StepPair performs one conduction step between p.A and p.B.
func (e *Engine) StepPair(p Pair) error {
	if err := e.validatePair(p); err != nil {
		return err
	}
	return e.advance(false, func(before, conduction []float64) error {
		rate, err := thermal.ConductionRate(p.K, p.Area, p.Thickness, before[p.A], before[p.B])
		if err != nil {
			return err
		}
		q := thermal.HeatOverStep(rate, e.dt)
		conduction[p.A] -= q
		conduction[p.B] += q
		return nil
	})
}

func (e *Engine) run(ctx context.Context, mode Mode, total float64, step func() error) (*Result, error) {
	if !positive(total) {
		return nil, fmt.Errorf("%w: total time must be positive, got %g", thermal.ErrInvalidParameter, total)
	}

	steps := int(total / e.dt)
	rest := math.Max(0, total-float64(steps)*e.dt)

	for _, m := range e.metrics {
		m.Reset()
	}

	e.log.Debug("sim.run.start", "mode", mode.String(), "bodies", len(e.bodies), "steps", steps, "dt", e.dt)

	taken := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return e.result(mode, taken, total-float64(taken)*e.dt), ctx.Err()
		default:
		}

		if err := step(); err != nil {
			e.log.Warn("sim.run.failed", "mode", mode.String(), "step", e.steps, "err", err)
			return e.result(mode, taken, total-float64(taken)*e.dt), err
		}
		taken++
	}

	res := e.result(mode, taken, rest)
	e.log.Debug("sim.run.done", "mode", mode.String(), "steps", taken, "elapsed", e.elapsed, "unsimulated", rest)
	return res, nil
}

type conductFunc func(before, conduction []float64) error

// advance reads every temperature into a snapshot, computes all exchanges from it,
// checks the candidate temperatures, and only then writes them back.
func (e *Engine) advance(convect bool, conduct conductFunc) error {
	n := len(e.bodies)
	before := e.pool.Get()
	after := e.pool.Get()
	convective := e.pool.Get()
	conduction := e.pool.Get()
	capacities := e.pool.Get()
	defer func() {
		e.pool.Put(before)
		e.pool.Put(after)
		e.pool.Put(convective)
		e.pool.Put(conduction)
		e.pool.Put(capacities)
	}()

	for i, b := range e.bodies {
		before[i] = b.Temperature()
		capacities[i] = b.HeatCapacity()
	}

	if convect {
		for i, b := range e.bodies {
			rate := thermal.ConvectionRate(e.Coefficient(i), b.Area(), before[i], e.ambient)
			convective[i] = -thermal.HeatOverStep(rate, e.dt)
		}
	}

	if conduct != nil {
		if err := conduct(before, conduction); err != nil {
			return &thermal.SimulationError{Step: e.steps, Time: e.elapsed, Wrapped: err}
		}
	}

	for i := 0; i < n; i++ {
		after[i] = before[i] + (convective[i]+conduction[i])/capacities[i]
		if !finite(after[i]) {
			return &thermal.SimulationError{Step: e.steps, Time: e.elapsed, Wrapped: thermal.ErrUnstable}
		}
	}

	for i, b := range e.bodies {
		b.ApplyHeat(convective[i] + conduction[i])
		after[i] = b.Temperature()
	}

	e.steps++
	e.elapsed = float64(e.steps) * e.dt
	for _, b := range e.bodies {
		b.RecordState(e.elapsed)
	}

	if len(e.metrics) == 0 && len(e.observers) == 0 {
		return nil
	}

	report := StepReport{
		Step:        e.steps,
		Time:        e.elapsed,
		Before:      before,
		After:       after,
		Capacities:  capacities,
		Convective:  convective,
		Conduction:  conduction,
		PairBalance: sum(conduction),
	}
	for _, m := range e.metrics {
		m.Observe(report)
	}
	for _, o := range e.observers {
		o.OnStep(report)
	}
	return nil
}

func (e *Engine) conductMatrix(before, conduction []float64) error {
	n := len(before)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g := e.conductance.At(i, j)
			if g <= 0 {
				continue
			}
			rate, err := thermal.ConductionRate(g, CoupledContactArea, CoupledThickness, before[i], before[j])
			if err != nil {
				return err
			}
			q := thermal.HeatOverStep(rate, e.dt)
			conduction[i] -= q
			conduction[j] += q
		}
	}
	return nil
}

func sum(v []float64) float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}

func (e *Engine) result(mode Mode, taken int, unsimulated float64) *Result {
	res := &Result{
		Mode:        mode,
		Series:      make([]Series, len(e.bodies)),
		HeatGained:  make([]float64, len(e.bodies)),
		StepsTaken:  taken,
		Elapsed:     e.elapsed,
		Unsimulated: unsimulated,
		Metrics:     make(map[string]float64),
	}
	for i, b := range e.bodies {
		res.Series[i] = Series{
			Name:         b.Name(),
			Times:        b.Times(),
			Temperatures: b.Temperatures(),
		}
		res.HeatGained[i] = b.StoredHeat()
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
