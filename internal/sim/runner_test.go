package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/particlebox/internal/gas"
)

func testCloud() *gas.Cloud {
	return &gas.Cloud{
		Bodies: []*gas.Body{
			{Pos: gas.Vec2{X: 200, Y: 200}, Vel: gas.Vec2{X: 100, Y: 0}, Radius: 10},
			{Pos: gas.Vec2{X: 600, Y: 400}, Vel: gas.Vec2{X: -80, Y: 60}, Radius: 10},
		},
		Arena: gas.Arena{Width: 900, Height: 600, Margin: 40},
	}
}

func TestRunnerRun(t *testing.T) {
	r := New(testCloud())

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if len(result.States[0]) != 8 {
		t.Errorf("expected 8 state values for 2 bodies, got %d", len(result.States[0]))
	}
	if result.EnergyDrift > 1e-9 {
		t.Errorf("unexpected energy drift %e", result.EnergyDrift)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(testCloud())
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerClampsDt(t *testing.T) {
	r := New(testCloud())

	// A frame-hitch-sized dt gets clamped to MaxDt, so a 1s run takes
	// 1/0.05 = 20 steps, not 1/0.5 = 2.
	cfg := Config{Dt: 0.5, MaxDt: 0.05, Duration: 1.0}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 20 {
		t.Errorf("expected 20 clamped steps, got %d", result.StepsTaken)
	}
}

type countingMetric struct {
	count int
}

func (m *countingMetric) Name() string                                      { return "count" }
func (m *countingMetric) Observe(c *gas.Cloud, st gas.StepStats, t float64) { m.count++ }
func (m *countingMetric) Value() float64                                    { return float64(m.count) }
func (m *countingMetric) Reset()                                            { m.count = 0 }

func TestRunnerMetrics(t *testing.T) {
	r := New(testCloud())
	metric := &countingMetric{}
	r.AddMetric(metric)

	result, err := r.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if _, ok := result.Metrics["count"]; !ok {
		t.Error("metric not found in result")
	}
}

func TestRunnerStopsOnNonFiniteState(t *testing.T) {
	c := testCloud()
	c.Bodies[0].Vel.X = math.NaN()

	r := New(c)
	result, err := r.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("non-finite state must be recorded, not returned: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", result.Errors[0])
	}
	if result.StepsTaken != 1 {
		t.Errorf("expected run to stop after first step, took %d", result.StepsTaken)
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(testCloud())
	_, err := r.Run(ctx, Config{Dt: 0.01, Duration: 10.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	r := New(testCloud())

	steps := 0
	err := r.RunWithCallback(context.Background(), Config{Dt: 0.1, Duration: 10.0},
		func(c *gas.Cloud, st gas.StepStats, t float64) bool {
			steps++
			return steps < 5
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected callback to stop at 5 steps, got %d", steps)
	}
}

func TestEnsembleRun(t *testing.T) {
	params := gas.Params{
		Bodies: 5,
		Radius: 10,
		Speed:  180,
		Arena:  gas.Arena{Width: 900, Height: 600, Margin: 40},
	}

	e := NewEnsemble(params, 4, 42, func() []Metric {
		return []Metric{&countingMetric{}}
	})

	results, err := e.Run(context.Background(), Config{Dt: 0.05, Duration: 0.5})
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, res := range results {
		if res.StepsTaken != 10 {
			t.Errorf("run %d: expected 10 steps, got %d", i, res.StepsTaken)
		}
		if res.Metrics["count"] != 10 {
			t.Errorf("run %d: expected 10 observations, got %f", i, res.Metrics["count"])
		}
	}
}
