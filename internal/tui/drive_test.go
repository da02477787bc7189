package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ali3noid/car-box-2d/internal/config"
)

func testModel() *Model {
	cfg := config.Default()
	cfg.World.Terrain.XMin = -10
	cfg.World.Terrain.XMax = 10
	return NewModel(cfg)
}

func (m *Model) tickAt(t time.Time) {
	m.Update(tickMsg(t))
}

func TestTicksAdvanceSimulation(t *testing.T) {
	m := testModel()

	now := time.Now()
	m.tickAt(now)
	m.tickAt(now.Add(100 * time.Millisecond))

	if m.session.Steps() == 0 {
		t.Error("expected physics steps after ticks")
	}
}

func TestSpaceKeyPausesStepping(t *testing.T) {
	m := testModel()

	now := time.Now()
	m.tickAt(now)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if !m.session.Paused() {
		t.Fatal("expected session paused")
	}

	before := m.session.Steps()
	m.tickAt(now.Add(200 * time.Millisecond))
	if m.session.Steps() != before {
		t.Error("paused session still stepped")
	}

	// The frozen frame still renders.
	if m.View() == "" {
		t.Error("expected a view while paused")
	}
}

func TestResetKeyRebuildsWorld(t *testing.T) {
	m := testModel()

	now := time.Now()
	m.tickAt(now)
	m.tickAt(now.Add(500 * time.Millisecond))

	oldChassis := m.session.Chassis()
	m.Update(runeKey('r'))

	if m.session.Chassis() == oldChassis {
		t.Error("expected a fresh chassis after reset")
	}
	if m.renderer.Camera().Target() != m.session.Chassis() {
		t.Error("camera should follow the new chassis")
	}
	if m.session.Time() != 0 {
		t.Errorf("expected simulation clock reset, got %g", m.session.Time())
	}
}

func TestZoomKeys(t *testing.T) {
	m := testModel()
	cam := m.renderer.Camera()

	start := cam.Zoom()
	m.Update(runeKey('+'))
	if cam.Zoom() <= start {
		t.Error("expected zoom in")
	}
	m.Update(runeKey('-'))
	m.Update(runeKey('-'))
	if cam.Zoom() >= start {
		t.Error("expected zoom out below start")
	}
}

func TestEditModeSuppressesDriveKeys(t *testing.T) {
	m := testModel()

	m.Update(runeKey('m'))
	if !m.editing {
		t.Fatal("expected edit mode")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.session.Paused() {
		t.Error("space while editing should not pause")
	}

	// Type a new rate and apply it.
	m.editBuf = ""
	for _, r := range "-3.5" {
		m.Update(runeKey(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.editing {
		t.Error("enter should close edit mode")
	}
	if m.cfg.World.Motor.Rate != -3.5 {
		t.Errorf("expected motor rate -3.5, got %g", m.cfg.World.Motor.Rate)
	}
}

func TestEditModeEscapeCancels(t *testing.T) {
	m := testModel()
	oldRate := m.cfg.World.Motor.Rate

	m.Update(runeKey('m'))
	m.Update(runeKey('9'))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.editing {
		t.Error("esc should close edit mode")
	}
	if m.cfg.World.Motor.Rate != oldRate {
		t.Errorf("esc should not apply the buffer, rate became %g", m.cfg.World.Motor.Rate)
	}
}

func TestWindowResize(t *testing.T) {
	m := testModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	now := time.Now()
	m.tickAt(now)
	m.tickAt(now.Add(50 * time.Millisecond))

	if m.View() == "" {
		t.Error("expected a view after resize")
	}
}
