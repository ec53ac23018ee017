package softbody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/squishy/internal/softbody"
)

var _ = Describe("World scenarios", func() {
	var w *softbody.World

	BeforeEach(func() {
		w = softbody.NewWorld()
	})

	Context("a dented ring with no pressure", func() {
		It("springs back to its radius", func() {
			m := softbody.DefaultMaterial()
			m.Gravity = softbody.Vec{}
			m.Stiffness = 1
			m.Iterations = 5
			m.Fill, m.PressureGain = 0, 0
			// Edge links alone let a single ring fold; shape-matching
			// recovery is what restores the radius.
			m.Recovery = softbody.DefaultRecovery

			b, err := w.AddBody(softbody.RingConfig(softbody.V(0, 0), 60, 16), m)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.ApplyForce(softbody.ParticleRef{Body: b.ID, Index: 0}, softbody.V(-20, 0))).To(Succeed())

			w.Run(60)

			Expect(w.Valid()).To(BeTrue())
			Expect(b.MeanRadius()).To(BeNumerically("~", 60, 3))
		})
	})

	Context("a ring dropped onto the floor", func() {
		It("bounces, then comes to rest without sinking through", func() {
			w.Planes = []softbody.Plane{softbody.Floor(0)}
			m := softbody.DefaultMaterial()
			m.Restitution = 0.4
			m.Gravity = softbody.V(0, 0.2)

			b, err := w.AddBody(softbody.RingConfig(softbody.V(0, -100), 60, 16), m)
			Expect(err).NotTo(HaveOccurred())

			lowest, rebound := -100.0, 0.0
			for i := 0; i < 1500; i++ {
				w.Step()
				Expect(softbody.Penetration(b, w.Planes)).To(BeNumerically("<=", 1e-9))
				y := b.Centroid().Y
				if i < 200 {
					lowest = math.Max(lowest, y)
					rebound = math.Max(rebound, lowest-y)
				}
			}

			Expect(rebound).To(BeNumerically(">", 1))
			for _, p := range b.Particles {
				Expect(p.Pos.Y).To(BeNumerically("<=", 1e-9))
				Expect(p.Velocity().Length()).To(BeNumerically("<", 0.05))
			}
		})
	})

	Context("two overlapping rings", func() {
		It("are pushed apart to the sum of their particle radii in one pass", func() {
			cfg := func(x float64) softbody.BodyConfig {
				c := softbody.RingConfig(softbody.V(x, 0), 20, 16)
				c.ParticleRadius = 4
				return c
			}
			a, err := w.AddBody(cfg(0), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())
			b, err := w.AddBody(cfg(36), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())

			Expect(softbody.ResolveBodies(a, b)).To(BeNumerically(">", 1))

			for _, pa := range a.Particles {
				for _, pb := range b.Particles {
					Expect(pa.Pos.Distance(pb.Pos)).To(BeNumerically(">=", 8-1e-6))
				}
			}
		})
	})

	Context("two rings stacked in a narrow box", func() {
		It("never leaves a particle through the floor", func() {
			w.Planes = softbody.Box(-35, -400, 35, 0)
			bottom, err := w.AddBody(softbody.RingConfig(softbody.V(0, -30), 30, 16), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())
			top, err := w.AddBody(softbody.RingConfig(softbody.V(0, -110), 30, 16), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 600; i++ {
				w.Step()
				Expect(softbody.Penetration(bottom, w.Planes)).To(BeNumerically("<=", 1e-9))
				Expect(softbody.Penetration(top, w.Planes)).To(BeNumerically("<=", 1e-9))
			}

			Expect(w.Valid()).To(BeTrue())
			Expect(top.Centroid().Y).To(BeNumerically("<", bottom.Centroid().Y))
		})
	})

	Context("a hanging cloth", func() {
		It("keeps its pinned row in place", func() {
			cloth, err := w.AddBody(softbody.GridConfig(softbody.V(0, 0), 60, 40, 5, 7), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())
			top := append([]softbody.Vec(nil), cloth.Outline()[:7]...)

			w.Run(200)

			Expect(cloth.Outline()[:7]).To(Equal(top))
			Expect(cloth.Centroid().Y).To(BeNumerically(">", 0))
			Expect(w.Valid()).To(BeTrue())
		})
	})

	Context("plasticity", func() {
		squeeze := func(plasticity float64) float64 {
			world := softbody.NewWorld()
			m := softbody.DefaultMaterial()
			m.Gravity = softbody.Vec{}
			m.Plasticity = plasticity
			b, err := world.AddBody(softbody.RingConfig(softbody.V(0, 0), 40, 16), m)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 60; i++ {
				world.ApplyRadialForce(softbody.V(70, 0), 45, 3)
				world.Step()
			}
			world.Run(400)
			return b.Area()
		}

		It("leaves an elastic body round", func() {
			round := softbody.RegularPolygonArea(16, 40)
			Expect(squeeze(0)).To(BeNumerically("~", round, round*0.01))
		})

		It("leaves a permanent dent in a plastic body", func() {
			Expect(squeeze(1)).To(BeNumerically("<", squeeze(0)-50))
		})
	})

	Context("the frame counter", func() {
		It("advances once per step", func() {
			_, err := w.AddBody(softbody.RingConfig(softbody.V(0, 0), 10, 8), softbody.DefaultMaterial())
			Expect(err).NotTo(HaveOccurred())
			st := w.Run(7)
			Expect(st.Frame).To(Equal(7))
			Expect(w.Frame()).To(Equal(7))
			Expect(math.IsNaN(w.Bodies()[0].Centroid().X)).To(BeFalse())
		})
	})
})
