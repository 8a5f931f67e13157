package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/ble"
	"github.com/SeamusWaldron/gocube3d/internal/raster"
	"github.com/SeamusWaldron/gocube3d/internal/recorder"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type bleEventMsg struct{ ev ble.Event }
type bleConnectedMsg struct{ name string }
type bleErrorMsg struct{ err error }

// holdWindow is how long an arrow press keeps the camera moving. Terminal
// key repeat refreshes it while the key is held.
const holdWindow = 150 * time.Millisecond

// netWidth is the width of the net panel in columns.
const netWidth = 26

// viewerModel drives a Viewer from the bubbletea loop. One tick is one
// animation step and one frame.
type viewerModel struct {
	viewer  *gocube3d.Viewer
	script  *gocube3d.Script
	session *recorder.Session
	palette render.Palette
	canvas  *raster.Canvas

	title    string
	fps      int
	step     float64
	readOnly bool
	// reset runs after the cube is reset with "0".
	reset func() error
	// onScriptDone runs once, after the last scripted turn commits.
	onScriptDone func() error

	held      gocube3d.CameraDelta
	heldUntil time.Time

	// Smart cube
	device  string
	battery int

	// outOfSync is set once a mirrored rotation was lost; cleared by reset.
	outOfSync bool

	// UI
	frame    string
	showNet  bool
	lastTurn string
	width    int
	height   int
	err      error
	quitting bool
}

func newViewerModel(title string, v *gocube3d.Viewer, palette render.Palette) *viewerModel {
	return &viewerModel{
		viewer:  v,
		script:  gocube3d.NewScript(nil),
		palette: palette,
		canvas:  raster.NewCanvas(80, 48),
		title:   title,
		fps:     cfg.FPS,
		step:    cfg.CameraStep,
		battery: -1,
		showNet: true,
		width:   80,
		height:  30,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *viewerModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		m.tick(time.Time(msg))
		return m, m.tickCmd()

	case bleConnectedMsg:
		m.device = msg.name

	case bleErrorMsg:
		m.err = msg.err

	case bleEventMsg:
		m.handleCubeEvent(msg.ev)
	}

	return m, nil
}

func (m *viewerModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return tea.Quit

	case "esc":
		if m.viewer.Abort() {
			m.lastTurn = "aborted"
		}

	case "0":
		m.script.Clear()
		m.viewer.Reset()
		m.lastTurn = ""
		m.outOfSync = false
		if m.reset != nil {
			if err := m.reset(); err != nil {
				m.err = err
			}
		}

	case "s":
		m.viewer.SnapCamera()

	case "c":
		m.viewer.ResetCamera()

	case "n":
		m.showNet = !m.showNet
		m.resize()

	default:
		if d, ok := arrowDelta(key, m.step); ok {
			m.viewer.Rotate(d)
			m.held = d
			m.heldUntil = time.Now().Add(holdWindow)
			return nil
		}
		if m.readOnly {
			return nil
		}
		if cmd, ok := keyTurn(key); ok {
			if err := m.viewer.Turn(cmd); err != nil {
				if errors.Is(err, gocube3d.ErrAnimationConflict) {
					m.lastTurn = "busy: " + cmd.Notation()
					return nil
				}
				m.err = err
			}
		}
	}
	return nil
}

func (m *viewerModel) handleCubeEvent(ev ble.Event) {
	if ev.Dropped > 0 {
		m.outOfSync = true
	}
	for _, t := range ev.Turns {
		m.script.Append(gocube3d.CommandFor(t))
	}
	if ev.Orientation != nil {
		m.viewer.SetCubeOrientation(ev.Orientation.Quat)
	}
	if ev.Battery != nil {
		m.battery = ev.Battery.Level
	}
}

// tick advances the animation and repaints the frame.
func (m *viewerModel) tick(now time.Time) {
	if _, err := m.script.Feed(m.viewer); err != nil {
		m.err = err
	}
	if now.Before(m.heldUntil) {
		m.viewer.Rotate(m.held)
	}
	if ev, ok := m.viewer.Tick(); ok {
		m.lastTurn = ev.Turn.Notation()
	}
	if m.onScriptDone != nil && m.script.Done() && !m.viewer.Animating() {
		done := m.onScriptDone
		m.onScriptDone = nil
		if err := done(); err != nil {
			m.err = err
		}
	}

	frame, err := m.viewer.Frame()
	if err != nil {
		log.WithError(err).WithField("clamped", frame.Clamped).Debug("frame projection clamped")
	}
	m.frame = halfBlocks(m.canvas.Paint(frame))
}

// resize fits the canvas to the terminal, leaving room for the text
// lines and the net panel.
func (m *viewerModel) resize() {
	w := m.width
	if m.showNet {
		w -= netWidth
	}
	rows := m.height - 5
	w = max(w, 10)
	rows = max(rows, 5)

	m.canvas = raster.NewCanvas(w, rows*2)
	m.viewer.SetViewport(float64(w), float64(rows*2))
}

func (m *viewerModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	if m.device != "" {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  %s", m.device)))
		if m.battery >= 0 {
			sb.WriteString(statusStyle.Render(fmt.Sprintf("  battery %d%%", m.battery)))
		}
	}
	sb.WriteString("\n")

	body := m.frame
	if m.showNet {
		net := colorNet(m.viewer.Cube(), m.palette)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", net)
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.help()))

	return sb.String()
}

func (m *viewerModel) statusLine() string {
	c := m.viewer.Cube()
	parts := []string{phaseStyle.Render(c.DetectPhase().DisplayName())}
	if m.outOfSync {
		parts = append(parts, errorStyle.Render("out of sync: solve the cube and press 0"))
	}

	if a, ok := m.viewer.Active(); ok {
		parts = append(parts, moveStyle.Render(fmt.Sprintf("%s %3.0f°", a.Turn.Notation(), a.Angle())))
	} else if m.lastTurn != "" {
		parts = append(parts, moveStyle.Render(m.lastTurn))
	}
	if n := m.script.Remaining(); n > 0 {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%d queued", n)))
	}
	if m.session != nil && m.session.State() == recorder.StateRecording {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%d turns  best: %s",
			m.session.TurnCount(), m.session.HighestPhase().DisplayName())))
	}
	return strings.Join(parts, "  ")
}

func (m *viewerModel) help() string {
	if m.readOnly {
		return "arrows: camera  s: snap  c: home  esc: abort  0: reset  n: net  q: quit"
	}
	return "f r u l b d: turn  shift: ccw  alt: double  arrows: camera  s: snap  esc: abort  0: reset  n: net  q: quit"
}
