package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/recorder"
	"github.com/SeamusWaldron/gocube3d/internal/render"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube from the keyboard",
	Long: `Start the interactive viewer. Every committed turn is recorded to the
current session; an interrupted session is resumed on the next start.

Keyboard shortcuts:
  f r u l b d   - Turn a face clockwise
  F R U L B D   - Turn a face counter-clockwise
  alt+<face>    - Half turn
  arrows        - Rotate the camera
  s             - Snap the camera to the nearest axis view
  c             - Return the camera to its starting view
  esc           - Abort the turn in flight
  0             - Reset to a solved cube and start a new session
  n             - Toggle the net
  q             - Quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// newViewer builds a viewer from the configuration.
func newViewer(extra ...gocube3d.Option) (*gocube3d.Viewer, render.Palette, error) {
	rc, err := cfg.RenderConfig()
	if err != nil {
		return nil, render.Palette{}, err
	}
	opts, err := cfg.ViewerOptions(log)
	if err != nil {
		return nil, render.Palette{}, err
	}
	v, err := gocube3d.New(append(opts, extra...)...)
	if err != nil {
		return nil, render.Palette{}, err
	}
	return v, rc.Palette, nil
}

// startSession resumes the active session from the state file or starts a
// new one. It returns the cube the session is at.
func startSession(session *recorder.Session, sf *recorder.StateFile, source string) (cube.Cube, error) {
	if sf.HasActiveSession() {
		id := sf.ActiveSessionID()
		current, err := session.Resume(id)
		if err == nil {
			return current, nil
		}
		log.WithError(err).WithField("session", id).Warn("could not resume session, starting a new one")
		if err := sf.ClearActiveSession(""); err != nil {
			return cube.Cube{}, err
		}
	}

	start := cube.New()
	if _, err := session.Start(source, start, ""); err != nil {
		return cube.Cube{}, err
	}
	return start, nil
}

// endSession ends the session, if one is running.
func endSession(session *recorder.Session) {
	if err := session.End(); err != nil && !errors.Is(err, recorder.ErrNoSession) {
		log.WithError(err).Error("failed to end session")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, sf, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	session := recorder.NewSession(db, sf, log)
	current, err := startSession(session, sf, storage.SourcePlay)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer endSession(session)

	v, palette, err := newViewer(gocube3d.WithState(current))
	if err != nil {
		return err
	}
	v.OnCommit(session.Hook())

	m := newViewerModel("gocube3d", v, palette)
	m.session = session
	m.reset = func() error {
		endSession(session)
		_, err := session.Start(storage.SourcePlay, cube.New(), "")
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
