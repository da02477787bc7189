package render_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/render"
)

var _ = Describe("Camera", func() {
	var (
		target *cp.Body
		cam    *render.Camera
		opts   render.Options
	)

	BeforeEach(func() {
		target = cp.NewBody(1, 1)
		target.SetPosition(cp.Vector{X: 10, Y: 3})
		opts = render.Options{
			Scale:     8,
			MinZoom:   0.5,
			MaxZoom:   2.0,
			Damping:   0.25,
			Lookahead: cp.Vector{X: 2, Y: 1},
			Horizon:   0.4,
		}
		cam = render.NewCamera(opts, target)
	})

	Describe("zoom", func() {
		It("clamps AdjustZoom to the configured bounds", func() {
			cam.AdjustZoom(-10)
			Expect(cam.Zoom()).To(Equal(0.5))

			cam.AdjustZoom(+10)
			Expect(cam.Zoom()).To(Equal(2.0))
		})

		It("clamps SetZoom the same way", func() {
			cam.SetZoom(0.01)
			Expect(cam.Zoom()).To(Equal(0.5))

			cam.SetZoom(1.3)
			Expect(cam.Zoom()).To(Equal(1.3))
		})

		It("never leaves the bounds under mixed sequences", func() {
			deltas := []float64{0.3, -2, 5, -0.7, 0.05, -10, 3}
			for _, d := range deltas {
				cam.AdjustZoom(d)
				Expect(cam.Zoom()).To(And(
					BeNumerically(">=", opts.MinZoom),
					BeNumerically("<=", opts.MaxZoom),
				))
			}
		})
	})

	Describe("Reset", func() {
		It("snaps exactly to target position plus lookahead", func() {
			cam.Follow()
			target.SetPosition(cp.Vector{X: 50, Y: -2})
			cam.Reset()

			Expect(cam.Pos).To(Equal(cp.Vector{X: 52, Y: -1}))
		})

		It("restores zoom to exactly 1.0", func() {
			cam.SetZoom(1.7)
			cam.Reset()
			Expect(cam.Zoom()).To(Equal(1.0))
		})
	})

	Describe("SetTarget", func() {
		It("re-points and snaps to the new body", func() {
			other := cp.NewBody(1, 1)
			other.SetPosition(cp.Vector{X: -5, Y: 0})

			cam.SetTarget(other)

			Expect(cam.Target()).To(BeIdenticalTo(other))
			Expect(cam.Pos).To(Equal(cp.Vector{X: -3, Y: 1}))
		})
	})

	Describe("Follow", func() {
		It("moves a damping-sized fraction toward the aim point", func() {
			target.SetPosition(cp.Vector{X: 110, Y: 3})
			before := cam.Pos
			aim := target.Position().Add(opts.Lookahead)

			cam.Follow()

			want := before.Add(aim.Sub(before).Mult(opts.Damping))
			Expect(cam.Pos.X).To(BeNumerically("~", want.X, 1e-12))
			Expect(cam.Pos.Y).To(BeNumerically("~", want.Y, 1e-12))
		})

		It("converges toward the aim point over repeated frames", func() {
			target.SetPosition(cp.Vector{X: 200, Y: 10})
			aim := target.Position().Add(opts.Lookahead)

			for i := 0; i < 500; i++ {
				cam.Follow()
			}
			Expect(cam.Pos.X).To(BeNumerically("~", aim.X, 1e-6))
			Expect(cam.Pos.Y).To(BeNumerically("~", aim.Y, 1e-6))
		})

		It("stays put and stays finite without a target", func() {
			free := render.NewCamera(opts, nil)
			before := free.Pos

			free.Follow()

			Expect(free.Pos).To(Equal(before))
			Expect(math.IsNaN(free.Pos.X)).To(BeFalse())
		})
	})

	Describe("projection", func() {
		const pw, ph = 160, 88

		It("round-trips world points through Project and Unproject", func() {
			points := []cp.Vector{
				{X: 0, Y: 0},
				{X: 12.5, Y: -3.75},
				{X: -100, Y: 42},
				{X: 1e-3, Y: 1e3},
			}
			for _, p := range points {
				back := cam.Unproject(cam.Project(p, pw, ph), pw, ph)
				Expect(back.X).To(BeNumerically("~", p.X, 1e-9))
				Expect(back.Y).To(BeNumerically("~", p.Y, 1e-9))
			}
		})

		It("places the camera position at the screen center and horizon", func() {
			p := cam.Project(cam.Pos, pw, ph)
			Expect(p.X).To(BeNumerically("~", float64(pw)/2, 1e-12))
			Expect(p.Y).To(BeNumerically("~", float64(ph)*opts.Horizon, 1e-12))
		})

		It("inverts the world Y axis", func() {
			above := cam.Project(cam.Pos.Add(cp.Vector{Y: 1}), pw, ph)
			below := cam.Project(cam.Pos.Add(cp.Vector{Y: -1}), pw, ph)
			Expect(above.Y).To(BeNumerically("<", below.Y))
		})

		It("scales with zoom", func() {
			right := cam.Pos.Add(cp.Vector{X: 1})
			atOne := cam.Project(right, pw, ph).X - cam.Project(cam.Pos, pw, ph).X

			cam.SetZoom(2.0)
			atTwo := cam.Project(right, pw, ph).X - cam.Project(cam.Pos, pw, ph).X

			Expect(atTwo).To(BeNumerically("~", 2*atOne, 1e-9))
		})
	})
})
