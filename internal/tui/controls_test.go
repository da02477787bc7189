package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type actionCounts struct {
	pause, reset, zoomIn, zoomOut int
}

func countingControls(counts *actionCounts) Controls {
	return Controls{
		Actions: Actions{
			TogglePause: func() { counts.pause++ },
			Reset:       func() { counts.reset++ },
			ZoomIn:      func() { counts.zoomIn++ },
			ZoomOut:     func() { counts.zoomOut++ },
		},
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestControlsDispatch(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		handled bool
		check   func(c actionCounts) bool
	}{
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace}, true, func(c actionCounts) bool { return c.pause == 1 }},
		{"lowercase r resets", runeKey('r'), true, func(c actionCounts) bool { return c.reset == 1 }},
		{"uppercase R resets", runeKey('R'), true, func(c actionCounts) bool { return c.reset == 1 }},
		{"plus zooms in", runeKey('+'), true, func(c actionCounts) bool { return c.zoomIn == 1 }},
		{"equals zooms in", runeKey('='), true, func(c actionCounts) bool { return c.zoomIn == 1 }},
		{"minus zooms out", runeKey('-'), true, func(c actionCounts) bool { return c.zoomOut == 1 }},
		{"underscore zooms out", runeKey('_'), true, func(c actionCounts) bool { return c.zoomOut == 1 }},
		{"unbound key is a no-op", runeKey('x'), false, func(c actionCounts) bool { return c == actionCounts{} }},
		{"arrows are a no-op", tea.KeyMsg{Type: tea.KeyUp}, false, func(c actionCounts) bool { return c == actionCounts{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counts actionCounts
			controls := countingControls(&counts)

			if got := controls.Handle(tt.msg); got != tt.handled {
				t.Errorf("handled = %v, want %v", got, tt.handled)
			}
			if !tt.check(counts) {
				t.Errorf("unexpected action counts %+v", counts)
			}
		})
	}
}

func TestControlsDispatchExactlyOnce(t *testing.T) {
	var counts actionCounts
	controls := countingControls(&counts)

	controls.Handle(runeKey('='))
	if counts.zoomIn != 1 {
		t.Errorf("zoomIn fired %d times, want 1", counts.zoomIn)
	}
	if counts.pause != 0 || counts.reset != 0 || counts.zoomOut != 0 {
		t.Errorf("unrelated actions fired: %+v", counts)
	}
}

func TestControlsSuppressedWhileTextFocused(t *testing.T) {
	var counts actionCounts
	controls := countingControls(&counts)
	focused := true
	controls.TextFocused = func() bool { return focused }

	keys := []tea.KeyMsg{
		{Type: tea.KeySpace},
		runeKey('r'),
		runeKey('='),
		runeKey('-'),
	}
	for _, msg := range keys {
		if controls.Handle(msg) {
			t.Errorf("key %q handled while text focused", msg.String())
		}
	}
	if counts != (actionCounts{}) {
		t.Errorf("actions fired while text focused: %+v", counts)
	}

	// Focus released: same keys dispatch again.
	focused = false
	controls.Handle(runeKey('='))
	if counts.zoomIn != 1 {
		t.Errorf("zoomIn fired %d times after focus release, want 1", counts.zoomIn)
	}
}

func TestControlsNilCallbacksAreSafe(t *testing.T) {
	controls := Controls{}
	if !controls.Handle(tea.KeyMsg{Type: tea.KeySpace}) {
		t.Error("bound key should report handled even with nil callback")
	}
}
