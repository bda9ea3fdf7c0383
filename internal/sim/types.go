package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/particlebox/internal/gas"
)

// ErrNonFinite indicates a body's state became NaN/Inf during a run. The
// physics has no way to recover from this, so the run stops and reports it.
var ErrNonFinite = errors.New("sim: non-finite body state")

// Metric accumulates one scalar over a run.
type Metric interface {
	Name() string
	Observe(c *gas.Cloud, st gas.StepStats, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(c *gas.Cloud, st gas.StepStats, t float64)
}

// Config controls a run. Dt is clamped to MaxDt before stepping, bounding
// integration error when the caller passes a frame-hitch-sized delta.
type Config struct {
	Dt            float64
	MaxDt         float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

// DefaultConfig mirrors the reference scenario: 120 steps per second with a
// 50 ms clamp.
func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 120.0,
		MaxDt:         0.05,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result captures a completed (or aborted) run.
type Result struct {
	States      [][]float64 // flattened {x, y, vx, vy} per body, per step
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64 // relative kinetic energy drift over the run
	WallHits    int
	PairHits    int
	StepsTaken  int
	Errors      []error
}

// StepError records where a run went wrong without aborting the caller.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
