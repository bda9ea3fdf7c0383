package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/particlebox/internal/gas"
)

// Runner drives a cloud through a fixed-duration, fixed-dt run, capturing
// state history and feeding metrics and observers. Runner is not safe for
// concurrent use; see Ensemble for parallel seed-varied runs.
type Runner struct {
	cloud     *gas.Cloud
	metrics   []Metric
	observers []Observer
}

func New(cloud *gas.Cloud) *Runner {
	return &Runner{cloud: cloud}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Cloud exposes the underlying cloud for read-only collaborators.
func (r *Runner) Cloud() *gas.Cloud { return r.cloud }

// Run steps the cloud for cfg.Duration seconds. A non-finite body state is
// recorded as a StepError and stops the run early without failing it; only
// config errors and context cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	dt, err := stepSize(cfg)
	if err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / dt)
	result := &Result{
		States:  make([][]float64, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, r.cloud.State())
	result.Times = append(result.Times, t)

	initialEnergy := r.cloud.KineticEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		st := r.cloud.Step(dt, t)
		t += dt
		result.StepsTaken++
		result.WallHits += st.WallHits
		result.PairHits += st.PairHits

		for _, m := range r.metrics {
			m.Observe(r.cloud, st, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.cloud, st, t)
		}

		if cfg.ValidateState && !r.cloud.Valid() {
			result.Errors = append(result.Errors, &StepError{Step: i, Time: t, Wrapped: ErrNonFinite})
			break
		}

		result.States = append(result.States, r.cloud.State())
		result.Times = append(result.Times, t)
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(r.cloud.KineticEnergy()-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the cloud without capturing history, invoking the
// callback after every step until it returns false or the duration elapses.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(c *gas.Cloud, st gas.StepStats, t float64) bool) error {
	dt, err := stepSize(cfg)
	if err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		st := r.cloud.Step(dt, t)
		t += dt

		if cfg.ValidateState && !r.cloud.Valid() {
			return &StepError{Step: int(t / dt), Time: t, Wrapped: ErrNonFinite}
		}

		if !callback(r.cloud, st, t) {
			return nil
		}
	}
	return nil
}

// stepSize validates the config and returns the clamped dt.
func stepSize(cfg Config) (float64, error) {
	if cfg.Dt <= 0 {
		return 0, fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	dt := cfg.Dt
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}
	return dt, nil
}
