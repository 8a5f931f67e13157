package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long:  `List recorded sessions, newest first, with their turn counts and the furthest solving phase reached.`,
	RunE:  runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum sessions to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, sf, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	sessions, err := sessionRepo.List(historyLimit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		fmt.Println("  (Use 'gocube3d play' or 'gocube3d mirror' to start one)")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-6s  %5s  %9s  %s\n", "ID", "Started", "Source", "Turns", "Duration", "Best phase")
	for _, s := range sessions {
		turns, err := sessionRepo.GetTurnCount(s.SessionID)
		if err != nil {
			return err
		}

		duration := "-"
		if s.DurationMs != nil {
			duration = (time.Duration(*s.DurationMs) * time.Millisecond).Round(time.Second).String()
		} else if s.SessionID == sf.ActiveSessionID() {
			duration = "active"
		}
		best := "-"
		if s.HighestPhase != nil {
			best = *s.HighestPhase
		}

		fmt.Printf("%-36s  %-19s  %-6s  %5d  %9s  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			turns,
			duration,
			best,
		)
	}
	return nil
}
