package render

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/config"
)

// Options are the camera knobs. Zero values fall back to the config defaults
// so a zero Options literal is usable in tests.
type Options struct {
	// Scale is the base subpixels-per-world-unit before zoom.
	Scale   float64
	MinZoom float64
	MaxZoom float64
	// InitialZoom is clamped into [MinZoom, MaxZoom] on construction.
	InitialZoom float64
	// Damping in (0, 1]: the fraction of the remaining distance to the aim
	// point covered each frame. 1 snaps instantly.
	Damping float64
	// Lookahead offsets the aim point from the target, in world units.
	Lookahead cp.Vector
	// Horizon maps the camera's world Y to this fraction of screen height.
	Horizon float64
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = config.DefaultScale
	}
	if o.MinZoom <= 0 {
		o.MinZoom = config.DefaultMinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = config.DefaultMaxZoom
	}
	if o.InitialZoom <= 0 {
		o.InitialZoom = 1.0
	}
	if o.Damping <= 0 {
		o.Damping = config.DefaultDamping
	}
	if o.Horizon <= 0 {
		o.Horizon = config.DefaultHorizon
	}
	return o
}

// OptionsFrom translates the yaml camera section into renderer options.
func OptionsFrom(cfg config.CameraConfig) Options {
	return Options{
		Scale:       cfg.Scale,
		MinZoom:     cfg.MinZoom,
		MaxZoom:     cfg.MaxZoom,
		InitialZoom: cfg.InitialZoom,
		Damping:     cfg.Damping,
		Lookahead:   cp.Vector{X: cfg.LookaheadX, Y: cfg.LookaheadY},
		Horizon:     cfg.Horizon,
	}
}

// Camera tracks a followed body with exponential smoothing and converts
// between world coordinates and canvas subpixels. The target reference is
// non-owning; it is re-pointed on every world reset.
type Camera struct {
	Pos    cp.Vector
	zoom   float64
	opts   Options
	target *cp.Body
}

func NewCamera(opts Options, target *cp.Body) *Camera {
	c := &Camera{opts: opts.withDefaults(), target: target}
	c.zoom = clamp(c.opts.InitialZoom, c.opts.MinZoom, c.opts.MaxZoom)
	c.Reset()
	return c
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) Target() *cp.Body { return c.target }

// AdjustZoom adds delta to the zoom factor, clamped to the configured bounds.
func (c *Camera) AdjustZoom(delta float64) {
	c.SetZoom(c.zoom + delta)
}

func (c *Camera) SetZoom(z float64) {
	c.zoom = clamp(z, c.opts.MinZoom, c.opts.MaxZoom)
}

// Reset snaps straight to the aim point, skipping damping, and restores
// zoom to 1.0. With no target the camera stays where it is.
func (c *Camera) Reset() {
	if c.target != nil {
		c.Pos = c.aim()
	}
	c.SetZoom(1.0)
}

// SetTarget switches the followed body and snaps to it.
func (c *Camera) SetTarget(b *cp.Body) {
	c.target = b
	c.Reset()
}

// Follow moves the camera a damping-sized fraction toward the aim point.
// Exponential smoothing, not a physical spring. No target, no movement.
func (c *Camera) Follow() {
	if c.target == nil {
		return
	}
	aim := c.aim()
	c.Pos = c.Pos.Add(aim.Sub(c.Pos).Mult(c.opts.Damping))
}

func (c *Camera) aim() cp.Vector {
	return c.target.Position().Add(c.opts.Lookahead)
}

// scale is the effective subpixels-per-world-unit.
func (c *Camera) scale() float64 {
	return c.opts.Scale * c.zoom
}

// Project maps a world point to canvas subpixels. Screen Y grows downward,
// so world Y is inverted around the camera; the camera's own world position
// lands at (pw/2, ph*Horizon).
func (c *Camera) Project(w cp.Vector, pw, ph int) cp.Vector {
	s := c.scale()
	cx := float64(pw) / 2
	cy := float64(ph) * c.opts.Horizon
	return cp.Vector{
		X: (w.X-c.Pos.X)*s + cx,
		Y: (c.Pos.Y-w.Y)*s + cy,
	}
}

// Unproject inverts Project for the same camera state.
func (c *Camera) Unproject(p cp.Vector, pw, ph int) cp.Vector {
	s := c.scale()
	cx := float64(pw) / 2
	cy := float64(ph) * c.opts.Horizon
	return cp.Vector{
		X: (p.X-cx)/s + c.Pos.X,
		Y: c.Pos.Y - (p.Y-cy)/s,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
