// Package engine owns the simulation session: the physics space, the fixed
// timestep accumulator, and the pause flag. All state lives on the Session
// struct so the loop can be driven and tested without ambient globals.
package engine

import (
	"errors"
	"math"
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/config"
	"github.com/Ali3noid/car-box-2d/internal/scene"
)

var ErrNoScene = errors.New("engine: session has no scene")

// Session holds everything the loop mutates between display frames. It is
// single-goroutine by construction: ticks and key events arrive serialized.
type Session struct {
	cfg     *config.Config
	space   *cp.Space
	chassis *cp.Body

	accumulator float64
	last        time.Time
	started     bool
	paused      bool
	simTime     float64
	steps       uint64

	// onStep fires after every fixed step with the post-step chassis state.
	onStep func(t float64, chassis *cp.Body)
	// onReset fires after the world has been rebuilt, with the new chassis.
	onReset func(chassis *cp.Body)
}

func NewSession(cfg *config.Config) *Session {
	s := &Session{cfg: cfg}
	s.space, s.chassis = scene.Build(cfg.World)
	return s
}

func (s *Session) Space() *cp.Space { return s.space }

func (s *Session) Chassis() *cp.Body { return s.chassis }

func (s *Session) Paused() bool { return s.paused }

func (s *Session) Time() float64 { return s.simTime }

func (s *Session) Steps() uint64 { return s.steps }

func (s *Session) OnStep(f func(t float64, chassis *cp.Body)) { s.onStep = f }

func (s *Session) OnReset(f func(chassis *cp.Body)) { s.onReset = f }

// step advances the physics world by exactly dt. Integration is entirely the
// engine's job; nothing here touches body state directly.
func (s *Session) step(dt float64) {
	s.space.Step(dt)
	s.simTime += dt
	s.steps++
	if s.onStep != nil {
		s.onStep(s.simTime, s.chassis)
	}
}

// Advance drains wall-clock time into fixed physics steps and returns how
// many were taken. The first call only records the timestamp. Per-frame time
// is clamped to MaxFrameTime so a stalled terminal cannot queue an unbounded
// catch-up burst.
func (s *Session) Advance(now time.Time) int {
	if !s.started {
		s.started = true
		s.last = now
		return 0
	}

	delta := now.Sub(s.last).Seconds()
	s.last = now

	// Paused sessions still consume the clock so unpausing does not replay
	// the pause as a catch-up burst.
	if s.paused {
		return 0
	}

	if delta < 0 {
		delta = 0
	}
	if max := s.cfg.Loop.MaxFrameTime; max > 0 && delta > max {
		delta = max
	}
	s.accumulator += delta

	fixed := s.cfg.Loop.FixedStep
	steps := 0
	for s.accumulator >= fixed {
		s.step(fixed)
		s.accumulator -= fixed
		steps++
	}
	return steps
}

func (s *Session) TogglePause() {
	s.paused = !s.paused
}

// Reset discards the current world and rebuilds it from config. The
// accumulator and clock restart from scratch and the session unpauses.
func (s *Session) Reset() {
	s.space, s.chassis = scene.Build(s.cfg.World)
	s.accumulator = 0
	s.started = false
	s.paused = false
	s.simTime = 0
	s.steps = 0
	if s.onReset != nil {
		s.onReset(s.chassis)
	}
}

// Accumulator exposes the residual for tests; it is always in [0, FixedStep)
// after an unpaused Advance.
func (s *Session) Accumulator() float64 { return s.accumulator }

// RunFor steps the simulation for the given span of simulated time without
// consulting the wall clock. Used by the headless runner.
func (s *Session) RunFor(seconds float64) error {
	if s.space == nil {
		return ErrNoScene
	}
	fixed := s.cfg.Loop.FixedStep
	steps := int(math.Ceil(seconds / fixed))
	for i := 0; i < steps; i++ {
		s.step(fixed)
	}
	return nil
}
