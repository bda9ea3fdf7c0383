package metrics

import "github.com/san-kum/particlebox/internal/gas"

// WallPressure estimates the 2D gas pressure on the arena walls: total
// momentum transferred by wall reflections divided by the inner perimeter
// and the elapsed time. Unit-mass bodies, so impulse per reflection is
// 2|v_axis|.
type WallPressure struct {
	name      string
	impulse   float64
	elapsed   float64
	last      float64
	perimeter float64
	started   bool
}

func NewWallPressure() *WallPressure {
	return &WallPressure{name: "wall_pressure"}
}

func (w *WallPressure) Name() string { return w.name }

func (w *WallPressure) Observe(c *gas.Cloud, st gas.StepStats, t float64) {
	if !w.started {
		// First observation lands after one step; its duration is t.
		w.elapsed += t
		w.started = true
	} else {
		w.elapsed += t - w.last
	}
	w.last = t
	w.impulse += st.WallImpulse

	left, top, right, bottom := c.Arena.Bounds()
	w.perimeter = 2 * ((right - left) + (bottom - top))
}

func (w *WallPressure) Value() float64 {
	if w.elapsed == 0 || w.perimeter == 0 {
		return 0
	}
	return w.impulse / (w.perimeter * w.elapsed)
}

func (w *WallPressure) Reset() {
	w.impulse = 0
	w.elapsed = 0
	w.last = 0
	w.started = false
}

// CollisionRate counts pair resolutions per simulated second.
type CollisionRate struct {
	name    string
	hits    int
	elapsed float64
	last    float64
	started bool
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (r *CollisionRate) Name() string { return r.name }

func (r *CollisionRate) Observe(c *gas.Cloud, st gas.StepStats, t float64) {
	if !r.started {
		r.elapsed += t
		r.started = true
	} else {
		r.elapsed += t - r.last
	}
	r.last = t
	r.hits += st.PairHits
}

func (r *CollisionRate) Value() float64 {
	if r.elapsed == 0 {
		return 0
	}
	return float64(r.hits) / r.elapsed
}

func (r *CollisionRate) Reset() {
	r.hits = 0
	r.elapsed = 0
	r.last = 0
	r.started = false
}
