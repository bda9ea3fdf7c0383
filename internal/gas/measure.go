package gas

// Diagnostics over the current cloud state. All bodies have unit mass.

// KineticEnergy returns the total kinetic energy.
func (c *Cloud) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range c.Bodies {
		ke += 0.5 * b.Vel.LenSq()
	}
	return ke
}

// Momentum returns the total linear momentum.
func (c *Cloud) Momentum() Vec2 {
	var p Vec2
	for _, b := range c.Bodies {
		p = p.Add(b.Vel)
	}
	return p
}

// MeanSpeed returns the average of |Vel| over all bodies, 0 for an empty cloud.
func (c *Cloud) MeanSpeed() float64 {
	if len(c.Bodies) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range c.Bodies {
		sum += b.Speed()
	}
	return sum / float64(len(c.Bodies))
}

// Speeds returns |Vel| per body, in body order.
func (c *Cloud) Speeds() []float64 {
	speeds := make([]float64, len(c.Bodies))
	for i, b := range c.Bodies {
		speeds[i] = b.Speed()
	}
	return speeds
}

// Valid reports whether every body holds finite position and velocity.
func (c *Cloud) Valid() bool {
	for _, b := range c.Bodies {
		if !b.Valid() {
			return false
		}
	}
	return true
}

// State flattens the cloud to {x, y, vx, vy} per body, in body order, for
// capture and export.
func (c *Cloud) State() []float64 {
	s := make([]float64, 0, len(c.Bodies)*4)
	for _, b := range c.Bodies {
		s = append(s, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	}
	return s
}
