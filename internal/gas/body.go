package gas

// TrailPoint is one time-stamped position sample.
type TrailPoint struct {
	Pos Vec2
	T   float64
}

// Body is a circular particle. Radius is fixed for the body's lifetime and
// must be positive. Color is a presentation tag the physics never reads.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  string
	Trail  []TrailPoint
}

// Speed returns |Vel|.
func (b *Body) Speed() float64 { return b.Vel.Len() }

// Valid reports whether position and velocity are finite.
func (b *Body) Valid() bool { return b.Pos.IsFinite() && b.Vel.IsFinite() }

// recordTrail appends the current position and drops samples older than the
// retention window. Samples are appended in step order, so the slice stays
// sorted by time and eviction only ever removes a prefix.
func (b *Body) recordTrail(now, window float64) {
	b.Trail = append(b.Trail, TrailPoint{Pos: b.Pos, T: now})
	drop := 0
	for drop < len(b.Trail) && now-b.Trail[drop].T > window {
		drop++
	}
	if drop > 0 {
		b.Trail = append(b.Trail[:0], b.Trail[drop:]...)
	}
}
