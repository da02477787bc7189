// Package scene builds the physics world: gravity, a sine-hill terrain chain,
// and a two-wheeled car driven by constant-rate motors. Construction is
// deterministic and always succeeds for a valid config.
package scene

import (
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/config"
)

// Build constructs the space and returns it along with the chassis body,
// which callers follow with the camera and sample for telemetry.
func Build(cfg config.WorldConfig) (*cp.Space, *cp.Body) {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: -cfg.Gravity})

	buildTerrain(space, cfg.Terrain)
	chassis := buildCar(space, cfg)

	return space, chassis
}

// buildTerrain attaches the sampled terrain curve to the space's static body
// as an open chain of segment fixtures. Neighbor hints keep the car from
// snagging on interior joints.
func buildTerrain(space *cp.Space, t config.TerrainConfig) {
	points := TerrainPoints(t)
	for i := 0; i < len(points)-1; i++ {
		shape := space.AddShape(cp.NewSegment(space.StaticBody, points[i], points[i+1], 0))
		shape.SetFriction(t.Friction)

		seg := shape.Class.(*cp.Segment)
		prev, next := points[i], points[i+1]
		if i > 0 {
			prev = points[i-1]
		}
		if i+2 < len(points) {
			next = points[i+2]
		}
		seg.SetNeighbors(prev, next)
	}
}

func buildCar(space *cp.Space, cfg config.WorldConfig) *cp.Body {
	ch := cfg.Chassis
	start := cp.Vector{X: ch.StartX, Y: ch.StartY}

	mass := ch.Density * ch.Width * ch.Height
	chassis := space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, ch.Width, ch.Height)))
	chassis.SetPosition(start)

	box := space.AddShape(cp.NewBox(chassis, ch.Width, ch.Height, 0))
	box.SetFriction(ch.Friction)

	addWheel(space, chassis, cfg, cp.Vector{X: -cfg.Wheel.OffsetX, Y: cfg.Wheel.OffsetY})
	addWheel(space, chassis, cfg, cp.Vector{X: cfg.Wheel.OffsetX, Y: cfg.Wheel.OffsetY})

	return chassis
}

// addWheel creates one wheel at the given offset from the chassis and wires
// the drive: a pivot joint anchored at the wheel's own position plus a
// constant-rate motor capped at MaxTorque. No feedback control.
func addWheel(space *cp.Space, chassis *cp.Body, cfg config.WorldConfig, offset cp.Vector) *cp.Body {
	w := cfg.Wheel
	pos := chassis.Position().Add(offset)

	mass := w.Density * math.Pi * w.Radius * w.Radius
	wheel := space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, w.Radius, cp.Vector{})))
	wheel.SetPosition(pos)

	tire := space.AddShape(cp.NewCircle(wheel, w.Radius, cp.Vector{}))
	tire.SetFriction(w.Friction)

	space.AddConstraint(cp.NewPivotJoint(chassis, wheel, pos))
	motor := space.AddConstraint(cp.NewSimpleMotor(chassis, wheel, cfg.Motor.Rate))
	motor.SetMaxForce(cfg.Motor.MaxTorque)

	return wheel
}
