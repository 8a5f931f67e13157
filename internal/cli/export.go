package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export the turns of a session",
	Long: `Export the turn sequence of a session as notation, spoken phrases or JSON.
Without a session ID the most recent session is exported.

Examples:
  gocube3d export
  gocube3d export <session-id> --format json
  gocube3d export --format spoken
  gocube3d export <session-id> --format txt -o turns.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, spoken, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// turnJSON is the exported form of one turn.
type turnJSON struct {
	TurnIndex int    `json:"turn_index"`
	TsMs      int64  `json:"ts_ms"`
	Face      string `json:"face"`
	Direction int    `json:"direction"`
	Notation  string `json:"notation"`
}

// sessionJSON is the exported form of a session.
type sessionJSON struct {
	SessionID    string     `json:"session_id"`
	Source       string     `json:"source"`
	StartedAt    string     `json:"started_at"`
	StartState   string     `json:"start_state"`
	EndState     *string    `json:"end_state,omitempty"`
	HighestPhase *string    `json:"highest_phase,omitempty"`
	Turns        []turnJSON `json:"turns"`
}

func formatExport(sess *storage.Session, turns []storage.TurnRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		notations := make([]string, len(turns))
		for i, t := range turns {
			notations[i] = t.Notation
		}
		return strings.Join(notations, " "), nil

	case "spoken":
		parsed, err := storage.ToTurns(turns)
		if err != nil {
			return "", err
		}
		return cube.FormatSpoken(parsed), nil

	case "json":
		out := sessionJSON{
			SessionID:    sess.SessionID,
			Source:       sess.Source,
			StartedAt:    sess.StartedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			StartState:   sess.StartState,
			EndState:     sess.EndState,
			HighestPhase: sess.HighestPhase,
			Turns:        make([]turnJSON, len(turns)),
		}
		for i, t := range turns {
			out.Turns[i] = turnJSON{
				TurnIndex: t.TurnIndex,
				TsMs:      t.TsMs,
				Face:      t.Face,
				Direction: t.Direction,
				Notation:  t.Notation,
			}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt, spoken or json)", format)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	var sess *storage.Session
	if len(args) > 0 {
		sess, err = sessionRepo.Get(args[0])
	} else {
		sess, err = sessionRepo.GetLast()
	}
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	turns, err := storage.NewTurnRepository(db).GetBySession(sess.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get turns: %w", err)
	}

	output, err := formatExport(sess, turns, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported %d turns to %s\n", len(turns), exportOutput)
	return nil
}
