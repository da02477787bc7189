package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Actions are the caller-supplied callbacks behind the drive-mode keys.
type Actions struct {
	TogglePause func()
	Reset       func()
	ZoomIn      func()
	ZoomOut     func()
}

// Controls maps key presses to actions. The bindings are part of the
// program's external contract: Space pauses, r/R resets, +/= zooms in,
// -/_ zooms out.
type Controls struct {
	Actions Actions

	// TextFocused reports whether a text entry currently has focus; while it
	// returns true every binding is suppressed so editing works normally.
	TextFocused func() bool
}

// Handle dispatches one key press and reports whether it was consumed, so
// the host knows not to give the key any further meaning.
func (c Controls) Handle(msg tea.KeyMsg) bool {
	if c.TextFocused != nil && c.TextFocused() {
		return false
	}

	switch msg.String() {
	case " ":
		call(c.Actions.TogglePause)
	case "r", "R":
		call(c.Actions.Reset)
	case "+", "=":
		call(c.Actions.ZoomIn)
	case "-", "_":
		call(c.Actions.ZoomOut)
	default:
		return false
	}
	return true
}

func call(f func()) {
	if f != nil {
		f()
	}
}
