package gas

import (
	"fmt"
	"math"
	"math/rand"
)

// Params configures initial cloud construction.
type Params struct {
	Bodies      int
	Radius      float64
	Speed       float64 // initial speed magnitude, world units per second
	Arena       Arena
	TrailWindow float64
}

// Bounded retries keep pathological densities from hanging placement.
const maxPlacementTries = 10000

var palette = []string{"81", "203", "120", "228", "213", "75", "216", "156"}

// NewCloud builds a cloud with rejection-sampled non-overlapping positions
// and uniformly random headings at the configured speed: each candidate
// position is retried until its distance to every placed body exceeds twice
// the radius. Returns ErrArenaFull when a body cannot be placed within
// maxPlacementTries attempts.
func NewCloud(p Params, rng *rand.Rand) (*Cloud, error) {
	left, top, right, bottom := p.Arena.Bounds()
	if right-left <= 2*p.Radius || bottom-top <= 2*p.Radius {
		return nil, fmt.Errorf("gas: %gx%g arena with margin %g cannot hold radius %g: %w",
			p.Arena.Width, p.Arena.Height, p.Arena.Margin, p.Radius, ErrArenaFull)
	}

	c := &Cloud{
		Bodies:      make([]*Body, 0, p.Bodies),
		Arena:       p.Arena,
		TrailWindow: p.TrailWindow,
	}

	for len(c.Bodies) < p.Bodies {
		placed := false
		for try := 0; try < maxPlacementTries; try++ {
			pos := Vec2{
				X: left + p.Radius + rng.Float64()*(right-left-2*p.Radius),
				Y: top + p.Radius + rng.Float64()*(bottom-top-2*p.Radius),
			}
			if !clearOf(c.Bodies, pos, p.Radius) {
				continue
			}
			theta := rng.Float64() * 2 * math.Pi
			c.Bodies = append(c.Bodies, &Body{
				Pos:    pos,
				Vel:    Vec2{X: math.Cos(theta), Y: math.Sin(theta)}.Scale(p.Speed),
				Radius: p.Radius,
				Color:  palette[len(c.Bodies)%len(palette)],
			})
			placed = true
			break
		}
		if !placed {
			return nil, fmt.Errorf("gas: placing body %d of %d: %w",
				len(c.Bodies)+1, p.Bodies, ErrArenaFull)
		}
	}

	return c, nil
}

// clearOf reports whether pos keeps more than two radii from every placed body.
func clearOf(bodies []*Body, pos Vec2, r float64) bool {
	for _, b := range bodies {
		if pos.Sub(b.Pos).Len() <= 2*r {
			return false
		}
	}
	return true
}
