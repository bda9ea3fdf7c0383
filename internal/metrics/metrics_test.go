package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/particlebox/internal/gas"
)

func testCloud() *gas.Cloud {
	return &gas.Cloud{
		Bodies: []*gas.Body{
			{Pos: gas.Vec2{X: 200, Y: 200}, Vel: gas.Vec2{X: 30, Y: 40}, Radius: 10},
			{Pos: gas.Vec2{X: 600, Y: 400}, Vel: gas.Vec2{X: -60, Y: 80}, Radius: 10},
		},
		Arena: gas.Arena{Width: 900, Height: 600, Margin: 40},
	}
}

func TestEnergyDriftConstantCloud(t *testing.T) {
	m := NewEnergyDrift()
	c := testCloud()

	m.Observe(c, gas.StepStats{}, 0.01)
	m.Observe(c, gas.StepStats{}, 0.02)

	if m.Value() != 0 {
		t.Errorf("expected zero drift for unchanged cloud, got %e", m.Value())
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	m := NewEnergyDrift()
	c := testCloud()

	m.Observe(c, gas.StepStats{}, 0.01)
	c.Bodies[0].Vel = c.Bodies[0].Vel.Scale(2) // inject an energy violation
	m.Observe(c, gas.StepStats{}, 0.02)

	if m.Value() <= 0 {
		t.Error("expected positive drift after velocity change")
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift()
	c := testCloud()

	m.Observe(c, gas.StepStats{}, 0.01)
	c.Bodies[0].Vel = c.Bodies[0].Vel.Scale(2)
	m.Observe(c, gas.StepStats{}, 0.02)

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMeanSpeed(t *testing.T) {
	m := NewMeanSpeed()
	c := testCloud()

	// Speeds are 50 and 100, so the cloud mean is 75.
	m.Observe(c, gas.StepStats{}, 0.01)
	m.Observe(c, gas.StepStats{}, 0.02)

	if math.Abs(m.Value()-75) > 1e-9 {
		t.Errorf("expected mean speed 75, got %f", m.Value())
	}
}

func TestWallPressure(t *testing.T) {
	m := NewWallPressure()
	c := testCloud()

	// Inner rectangle is 820x520, perimeter 2680. Two observations at
	// 0.5s spacing with 134 momentum each: p = 268 / (2680 * 1.0) = 0.1.
	m.Observe(c, gas.StepStats{WallImpulse: 134}, 0.5)
	m.Observe(c, gas.StepStats{WallImpulse: 134}, 1.0)

	if math.Abs(m.Value()-0.1) > 1e-9 {
		t.Errorf("expected pressure 0.1, got %f", m.Value())
	}
}

func TestWallPressureEmpty(t *testing.T) {
	m := NewWallPressure()
	if m.Value() != 0 {
		t.Errorf("expected zero pressure before observations, got %f", m.Value())
	}
}

func TestCollisionRate(t *testing.T) {
	m := NewCollisionRate()
	c := testCloud()

	m.Observe(c, gas.StepStats{PairHits: 3}, 0.5)
	m.Observe(c, gas.StepStats{PairHits: 2}, 1.0)

	if math.Abs(m.Value()-5.0) > 1e-9 {
		t.Errorf("expected 5 collisions/sec, got %f", m.Value())
	}
}

func TestCollisionRateReset(t *testing.T) {
	m := NewCollisionRate()
	c := testCloud()

	m.Observe(c, gas.StepStats{PairHits: 3}, 0.5)
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero rate after reset, got %f", m.Value())
	}
}
