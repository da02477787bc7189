// Package telemetry observes the chassis once per fixed step and reduces the
// stream into summary metrics and a replayable recording.
package telemetry

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// Sample is one fixed-step observation of the chassis.
type Sample struct {
	T   float64
	Pos cp.Vector
	Vel cp.Vector
}

// Observer folds samples into a single named value.
type Observer interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Distance tracks net forward progress along x.
type Distance struct {
	start   float64
	current float64
	seen    bool
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(s Sample) {
	if !d.seen {
		d.start = s.Pos.X
		d.seen = true
	}
	d.current = s.Pos.X
}

func (d *Distance) Value() float64 {
	if !d.seen {
		return 0
	}
	return d.current - d.start
}

func (d *Distance) Reset() { *d = Distance{} }

// TopSpeed tracks the peak chassis speed.
type TopSpeed struct {
	max float64
}

func NewTopSpeed() *TopSpeed { return &TopSpeed{} }

func (t *TopSpeed) Name() string { return "top_speed" }

func (t *TopSpeed) Observe(s Sample) {
	if v := s.Vel.Length(); v > t.max {
		t.max = v
	}
}

func (t *TopSpeed) Value() float64 { return t.max }

func (t *TopSpeed) Reset() { t.max = 0 }

// AvgSpeed tracks mean chassis speed over all samples.
type AvgSpeed struct {
	total   float64
	samples int
}

func NewAvgSpeed() *AvgSpeed { return &AvgSpeed{} }

func (a *AvgSpeed) Name() string { return "avg_speed" }

func (a *AvgSpeed) Observe(s Sample) {
	a.total += s.Vel.Length()
	a.samples++
}

func (a *AvgSpeed) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.total / float64(a.samples)
}

func (a *AvgSpeed) Reset() { *a = AvgSpeed{} }

// AirTime estimates seconds spent ballistic: stretches where vertical speed
// exceeds a threshold, which on rolling terrain only happens off the ground.
type AirTime struct {
	threshold float64
	total     float64
	lastT     float64
	seen      bool
}

func NewAirTime(threshold float64) *AirTime {
	if threshold <= 0 {
		threshold = 2.0
	}
	return &AirTime{threshold: threshold}
}

func (a *AirTime) Name() string { return "air_time" }

func (a *AirTime) Observe(s Sample) {
	if a.seen && math.Abs(s.Vel.Y) > a.threshold {
		a.total += s.T - a.lastT
	}
	a.lastT = s.T
	a.seen = true
}

func (a *AirTime) Value() float64 { return a.total }

func (a *AirTime) Reset() { *a = AirTime{threshold: a.threshold} }
