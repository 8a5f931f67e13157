package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/analysis"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [session-id]",
	Short: "Show statistics for a session",
	Long: `Show turn counts, pauses, phase splits and repeated turn sequences for a
session. Without a session ID the most recent session is used; with --all
repeated sequences are mined across every session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var (
	statsAll  bool
	statsJSON bool
	statsTopK int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsAll, "all", false, "Mine repeated sequences across all sessions")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
	statsCmd.Flags().IntVar(&statsTopK, "top", 5, "Sequences to show per length")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsTopK < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", statsTopK)
	}

	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if statsAll {
		return statsAcrossSessions(db)
	}

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

	turns, err := loadTimedTurns(db, sess.SessionID)
	if err != nil {
		return err
	}
	marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(sess.SessionID)
	if err != nil {
		return err
	}

	summary := analysis.Summarize(*sess, turns, marks)
	ngrams := analysis.MineNGrams(turns, 2, 8, statsTopK)

	if statsJSON {
		return printJSON(struct {
			Summary *analysis.SessionSummary `json:"summary"`
			NGrams  *analysis.NGramReport    `json:"ngrams"`
		}{summary, ngrams})
	}

	fmt.Printf("Session %s (%s)\n", summary.SessionID, sess.Source)
	fmt.Println(strings.Repeat("=", 8+len(summary.SessionID)+len(sess.Source)+3))
	fmt.Printf("Started:        %s\n", summary.StartedAt)
	fmt.Printf("Duration:       %s\n", (time.Duration(summary.DurationMs) * time.Millisecond).Round(time.Millisecond))
	fmt.Printf("Turns:          %d (%d after merging)\n", summary.TotalTurns, summary.MergedTurns)
	fmt.Printf("TPS:            %.2f\n", summary.TPS)
	fmt.Printf("Avg turn gap:   %.0fms\n", summary.AvgTurnDurationMs)
	fmt.Printf("Longest pause:  %dms (%d over %dms)\n", summary.LongestPauseMs, summary.PauseCount, analysis.PauseThresholdMs)
	if summary.Profile.MostUsedFace != "" {
		fmt.Printf("Most used face: %s  pairs: %s\n", summary.Profile.MostUsedFace, strings.Join(summary.Profile.TopPairs(3), " "))
	}

	if len(summary.Phases) > 0 {
		fmt.Println()
		fmt.Println("Phases:")
		for _, p := range summary.Phases {
			fmt.Printf("  %-26s %8s  turn %d\n", p.DisplayName,
				(time.Duration(p.AtMs) * time.Millisecond).Round(100*time.Millisecond), p.TurnCount)
		}
	}

	printNGrams(ngrams)
	return nil
}

func statsAcrossSessions(db *storage.DB) error {
	sessions, err := storage.NewSessionRepository(db).List(0)
	if err != nil {
		return err
	}

	reports := make(map[string]*analysis.NGramReport, len(sessions))
	for _, s := range sessions {
		turns, err := loadTimedTurns(db, s.SessionID)
		if err != nil {
			return err
		}
		reports[s.SessionID] = analysis.MineNGrams(turns, 2, 8, statsTopK*2)
	}
	merged := analysis.MergeReports(reports, statsTopK)

	if statsJSON {
		return printJSON(merged)
	}
	fmt.Printf("Repeated sequences across %d sessions\n", len(sessions))
	printNGrams(merged)
	return nil
}

func loadTimedTurns(db *storage.DB, sessionID string) ([]analysis.TimedTurn, error) {
	records, err := storage.NewTurnRepository(db).GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	return analysis.FromRecords(records)
}

func printNGrams(report *analysis.NGramReport) {
	if len(report.TopNGrams) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Repeated sequences:")
	for n := 2; n <= 14; n++ {
		for _, ng := range report.TopNGrams[n] {
			fmt.Printf("  %3dx  %s\n", ng.Count, ng.Sequence)
		}
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
