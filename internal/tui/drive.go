// Package tui hosts the interactive drive mode: a Bubble Tea program that
// ticks the simulation session at display rate, renders the Braille canvas,
// and maps keys onto session actions.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakecoffman/cp/v2"

	"github.com/Ali3noid/car-box-2d/internal/config"
	"github.com/Ali3noid/car-box-2d/internal/engine"
	"github.com/Ali3noid/car-box-2d/internal/render"
	"github.com/Ali3noid/car-box-2d/internal/telemetry"
)

const zoomStep = 0.1

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	editStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

type tickMsg time.Time

// Model drives one session. All mutation happens in Update; Bubble Tea
// serializes ticks and key events onto a single goroutine.
type Model struct {
	cfg      *config.Config
	session  *engine.Session
	renderer *render.Renderer
	controls Controls

	topSpeed *telemetry.TopSpeed
	distance *telemetry.Distance

	width, height int
	editing       bool
	editBuf       string
}

func NewModel(cfg *config.Config) *Model {
	session := engine.NewSession(cfg)
	cam := render.NewCamera(render.OptionsFrom(cfg.Camera), session.Chassis())
	renderer := render.New(session.Space(), cam, 80, 22)

	m := &Model{
		cfg:      cfg,
		session:  session,
		renderer: renderer,
		topSpeed: telemetry.NewTopSpeed(),
		distance: telemetry.NewDistance(),
	}

	session.OnStep(func(t float64, chassis *cp.Body) {
		s := telemetry.Sample{T: t, Pos: chassis.Position(), Vel: chassis.Velocity()}
		m.topSpeed.Observe(s)
		m.distance.Observe(s)
	})
	session.OnReset(func(chassis *cp.Body) {
		renderer.SetSpace(session.Space())
		cam.SetTarget(chassis)
		m.topSpeed.Reset()
		m.distance.Reset()
	})

	m.controls = Controls{
		Actions: Actions{
			TogglePause: session.TogglePause,
			Reset:       session.Reset,
			ZoomIn:      func() { cam.AdjustZoom(zoomStep) },
			ZoomOut:     func() { cam.AdjustZoom(-zoomStep) },
		},
		TextFocused: func() bool { return m.editing },
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.Loop.FPS), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Physics first, then the frame, so the image reflects post-step state.
		m.session.Advance(time.Time(msg))
		m.renderer.Frame()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := msg.Width - 4
		h := msg.Height - 6
		m.renderer.Resize(w, h)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}
	if m.controls.Handle(msg) {
		return m, nil
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.cfg.World.Motor.Rate, 'f', 1, 64)
	}
	return m, nil
}

// editKey is the motor-rate entry field; while it is open the drive bindings
// are suppressed and keys edit the buffer instead. The new rate takes effect
// on the next reset.
func (m *Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
			m.cfg.World.Motor.Rate = v
		}
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += s
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("CAR-BOX-2D") + "\n")
	b.WriteString(frameStyle.Render(strings.TrimRight(m.renderer.View(), "\n")) + "\n")
	b.WriteString(" " + m.statusLine() + "\n")
	if m.editing {
		b.WriteString(" " + editStyle.Render("motor rate: "+m.editBuf+"_") + helpStyle.Render("  enter apply (on reset)  esc cancel") + "\n")
	} else {
		b.WriteString(" " + helpStyle.Render("space pause  r reset  +/- zoom  m motor  q quit") + "\n")
	}
	return b.String()
}

func (m *Model) statusLine() string {
	cam := m.renderer.Camera()
	pos := m.session.Chassis().Position()
	status := fmt.Sprintf("t=%6.1fs  x=%7.1f  dist=%7.1f  top=%5.1f m/s  zoom=%.1f",
		m.session.Time(), pos.X, m.distance.Value(), m.topSpeed.Value(), cam.Zoom())
	if m.session.Paused() {
		return pausedStyle.Render("PAUSED") + "  " + statusStyle.Render(status)
	}
	return statusStyle.Render(status)
}

// Run starts the drive mode in the alternate screen.
func Run(cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	return err
}
