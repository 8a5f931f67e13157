package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/recorder"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a recorded session",
	Long: `Re-animate a recorded session turn by turn from its starting state.
Without a session ID the most recent session is replayed.

Usage:
  gocube3d replay                     # Replay the last session
  gocube3d replay <session-id>        # Replay a specific session
  gocube3d replay --speed 2.0         # Replay at 2x speed
  gocube3d replay --continue          # Keep turning once the replay ends`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replaySpeed    float64
	replayContinue bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayContinue, "continue", false, "Record a new session from the final state once the replay ends")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replaySpeed <= 0 {
		return fmt.Errorf("speed must be positive")
	}

	db, sf, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	rec, err := recorder.Load(db, id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	v, palette, err := newViewer(
		gocube3d.WithState(rec.Start),
		gocube3d.WithSpeed(cfg.TurnSpeed*replaySpeed),
	)
	if err != nil {
		return err
	}

	cmds := make([]gocube3d.TurnCommand, len(rec.Turns))
	for i, t := range rec.Turns {
		cmds[i] = gocube3d.CommandFor(t)
	}

	m := newViewerModel(fmt.Sprintf("replay %s", shortID(rec.Session.SessionID)), v, palette)
	m.readOnly = true
	m.script = gocube3d.NewScript(cmds)
	m.reset = func() error {
		v.ResetTo(rec.Start)
		m.script = gocube3d.NewScript(cmds)
		return nil
	}

	if replayContinue {
		session := recorder.NewSession(db, sf, log)
		defer endSession(session)
		m.session = session
		m.onScriptDone = func() error {
			if _, err := session.Start(storage.SourceReplay, v.Cube(), "continued from "+rec.Session.SessionID); err != nil {
				return err
			}
			v.OnCommit(session.Hook())
			m.readOnly = false
			m.reset = func() error {
				endSession(session)
				_, err := session.Start(storage.SourcePlay, v.Cube(), "")
				return err
			}
			return nil
		}
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
