package gas

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("pair resolution", func() {
	var a, b *Body

	BeforeEach(func() {
		a = &Body{Pos: Vec2{100, 100}, Vel: Vec2{50, 0}, Radius: 10}
		b = &Body{Pos: Vec2{115, 100}, Vel: Vec2{-50, 0}, Radius: 10}
	})

	It("exchanges normal velocities for a head-on equal-mass pair", func() {
		Expect(resolvePair(a, b)).To(BeTrue())
		Expect(a.Vel).To(Equal(Vec2{-50, 0}))
		Expect(b.Vel).To(Equal(Vec2{50, 0}))
	})

	It("conserves total kinetic energy", func() {
		before := a.Vel.LenSq() + b.Vel.LenSq()
		resolvePair(a, b)
		after := a.Vel.LenSq() + b.Vel.LenSq()
		Expect(after).To(BeNumerically("~", before, 1e-9))
	})

	It("separates an overlapping pair to exact contact", func() {
		resolvePair(a, b)
		dist := a.Pos.Sub(b.Pos).Len()
		Expect(dist).To(BeNumerically("~", a.Radius+b.Radius, 1e-9))
	})

	It("leaves a separating pair untouched", func() {
		a.Vel = Vec2{-50, 0}
		b.Vel = Vec2{50, 0}
		Expect(resolvePair(a, b)).To(BeFalse())
		Expect(a.Vel).To(Equal(Vec2{-50, 0}))
		Expect(b.Vel).To(Equal(Vec2{50, 0}))
		Expect(a.Pos).To(Equal(Vec2{100, 100}))
		Expect(b.Pos).To(Equal(Vec2{115, 100}))
	})

	It("skips exactly coincident centers", func() {
		b.Pos = a.Pos
		Expect(resolvePair(a, b)).To(BeFalse())
		Expect(a.Vel).To(Equal(Vec2{50, 0}))
		Expect(b.Vel).To(Equal(Vec2{-50, 0}))
	})

	It("preserves tangential velocity components", func() {
		// Line of centers is the x axis; the y components ride through.
		a.Vel = Vec2{50, 7}
		b.Vel = Vec2{-50, -3}
		resolvePair(a, b)
		Expect(a.Vel.Y).To(Equal(7.0))
		Expect(b.Vel.Y).To(Equal(-3.0))
		Expect(a.Vel.X).To(BeNumerically("~", -50, 1e-9))
		Expect(b.Vel.X).To(BeNumerically("~", 50, 1e-9))
	})

	It("resolves an oblique overlap along the line of centers only", func() {
		a.Pos = Vec2{100, 100}
		b.Pos = Vec2{110, 110}
		a.Vel = Vec2{40, 40}
		b.Vel = Vec2{-40, -40}

		resolvePair(a, b)

		dist := a.Pos.Sub(b.Pos).Len()
		Expect(dist).To(BeNumerically("~", 20, 1e-9))

		// Fully head-on along the diagonal: velocities swap.
		Expect(a.Vel.X).To(BeNumerically("~", -40, 1e-9))
		Expect(a.Vel.Y).To(BeNumerically("~", -40, 1e-9))
		Expect(b.Vel.X).To(BeNumerically("~", 40, 1e-9))
		Expect(b.Vel.Y).To(BeNumerically("~", 40, 1e-9))
	})

	It("splits the positional correction evenly", func() {
		resolvePair(a, b)
		Expect(a.Pos.X).To(BeNumerically("~", 97.5, 1e-9))
		Expect(b.Pos.X).To(BeNumerically("~", 117.5, 1e-9))
		Expect(a.Pos.Y).To(Equal(100.0))
		Expect(b.Pos.Y).To(Equal(100.0))
	})
})

var _ = Describe("single-pass pair ordering", func() {
	It("visits pairs in ascending index order once per step", func() {
		// Three bodies in a row, all mutually overlapping. Single-pass
		// resolution corrects (0,1), then (0,2), then (1,2); the middle
		// body may legitimately end the step still overlapping a
		// neighbour. The invariant under test is determinism, not full
		// separation.
		mk := func() *Cloud {
			return &Cloud{
				Bodies: []*Body{
					{Pos: Vec2{100, 100}, Vel: Vec2{10, 0}, Radius: 10},
					{Pos: Vec2{112, 100}, Vel: Vec2{0, 0}, Radius: 10},
					{Pos: Vec2{124, 100}, Vel: Vec2{-10, 0}, Radius: 10},
				},
				Arena: Arena{Width: 900, Height: 600, Margin: 40},
			}
		}

		c1, c2 := mk(), mk()
		c1.Step(0, 0)
		c2.Step(0, 0)

		for i := range c1.Bodies {
			Expect(c1.Bodies[i].Pos).To(Equal(c2.Bodies[i].Pos))
			Expect(c1.Bodies[i].Vel).To(Equal(c2.Bodies[i].Vel))
		}
	})
})

var _ = Describe("placement", func() {
	It("never places overlapping bodies", func() {
		c, err := newSeededCloud(25, 3)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < len(c.Bodies); i++ {
			for j := i + 1; j < len(c.Bodies); j++ {
				d := c.Bodies[i].Pos.Sub(c.Bodies[j].Pos).Len()
				Expect(d).To(BeNumerically(">", 2*c.Bodies[i].Radius))
			}
		}
	})

	It("gives every body the configured speed", func() {
		c, err := newSeededCloud(10, 5)
		Expect(err).NotTo(HaveOccurred())
		for _, b := range c.Bodies {
			Expect(b.Speed()).To(BeNumerically("~", 180, 1e-9))
		}
	})

	It("fails with ErrArenaFull when the arena cannot fit the radius", func() {
		_, err := NewCloud(Params{
			Bodies: 1,
			Radius: 300,
			Speed:  180,
			Arena:  Arena{Width: 900, Height: 600, Margin: 40},
		}, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(ErrArenaFull))
	})
})
