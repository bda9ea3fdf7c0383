package gas

import "math"

// StepStats counts the discrete events of one Step call.
type StepStats struct {
	WallHits    int     // axis reflections off the arena walls
	PairHits    int     // pair impulses applied
	WallImpulse float64 // momentum transferred to the walls (unit mass)
}

// Cloud is an ordered set of bodies confined to an arena. The order is fixed
// at construction; pair resolution always visits unordered pairs (i, j),
// i < j, in ascending index order, once per step.
type Cloud struct {
	Bodies      []*Body
	Arena       Arena
	TrailWindow float64 // seconds of trail history to keep; 0 disables trails
}

// Step advances every body by dt seconds: free motion, mirrored wall
// reflection per axis, then a single pass of pairwise elastic resolution.
// Bodies are mutated in place. dt is assumed non-negative and pre-clamped by
// the caller; now is only read when trails are enabled.
func (c *Cloud) Step(dt, now float64) StepStats {
	var st StepStats
	for _, b := range c.Bodies {
		if c.TrailWindow > 0 {
			b.recordTrail(now, c.TrailWindow)
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		hits, impulse := c.reflect(b)
		st.WallHits += hits
		st.WallImpulse += impulse
	}
	for i := 0; i < len(c.Bodies); i++ {
		for j := i + 1; j < len(c.Bodies); j++ {
			a, b := c.Bodies[i], c.Bodies[j]
			sum := a.Radius + b.Radius
			if a.Pos.Sub(b.Pos).LenSq() <= sum*sum {
				if resolvePair(a, b) {
					st.PairHits++
				}
			}
		}
	}
	return st
}

// reflect bounces b off the arena walls, each axis independently. The
// reflection is a mirror, not a clamp: a body that overshoots a wall by d
// ends the step d inside it, and the velocity component on that axis flips
// sign. Both axes may fire in the same step (corner hit).
func (c *Cloud) reflect(b *Body) (hits int, impulse float64) {
	left, top, right, bottom := c.Arena.Bounds()

	lo, hi := left+b.Radius, right-b.Radius
	if b.Pos.X <= lo {
		b.Pos.X = lo + (lo - b.Pos.X)
		b.Vel.X = -b.Vel.X
		hits++
		impulse += 2 * math.Abs(b.Vel.X)
	} else if b.Pos.X >= hi {
		b.Pos.X = hi - (b.Pos.X - hi)
		b.Vel.X = -b.Vel.X
		hits++
		impulse += 2 * math.Abs(b.Vel.X)
	}

	lo, hi = top+b.Radius, bottom-b.Radius
	if b.Pos.Y <= lo {
		b.Pos.Y = lo + (lo - b.Pos.Y)
		b.Vel.Y = -b.Vel.Y
		hits++
		impulse += 2 * math.Abs(b.Vel.Y)
	} else if b.Pos.Y >= hi {
		b.Pos.Y = hi - (b.Pos.Y - hi)
		b.Vel.Y = -b.Vel.Y
		hits++
		impulse += 2 * math.Abs(b.Vel.Y)
	}

	return hits, impulse
}

// resolvePair applies the equal-mass elastic impulse along the line of
// centers and pushes both bodies apart by half the overlap each, so the pair
// ends the step exactly touching. Exactly coincident centers have no usable
// normal and are skipped; pairs whose relative velocity already points apart
// are skipped too, so an overlap that is resolving on its own is not
// corrected twice. Reports whether an impulse was applied.
func resolvePair(a, b *Body) bool {
	d := a.Pos.Sub(b.Pos)
	dist := d.Len()
	if dist == 0 {
		return false
	}
	n := d.Scale(1 / dist)

	rel := a.Vel.Sub(b.Vel).Dot(n)
	if rel > 0 {
		return false
	}

	// Exchange the normal velocity components; tangential parts untouched.
	a.Vel = a.Vel.Sub(n.Scale(rel))
	b.Vel = b.Vel.Add(n.Scale(rel))

	if overlap := a.Radius + b.Radius - dist; overlap > 0 {
		half := n.Scale(overlap / 2)
		a.Pos = a.Pos.Add(half)
		b.Pos = b.Pos.Sub(half)
	}
	return true
}
