package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration, sessions and device history",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, sf, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	state := sf.State()

	fmt.Println("gocube3d Status")
	fmt.Println("===============")
	fmt.Println()

	fmt.Printf("Config:   %s\n", cfg.Dir)
	fmt.Printf("Database: %s\n", db.Path())
	if version, err := db.CurrentVersion(); err == nil {
		fmt.Printf("Schema:   v%d\n", version)
	}
	fmt.Printf("Log:      %s\n", cfg.LogPath())
	fmt.Println()

	sessionRepo := storage.NewSessionRepository(db)
	if last, err := sessionRepo.GetLast(); err == nil {
		fmt.Printf("Last session: %s (%s)\n", last.StartedAt.Local().Format(time.RFC3339), last.SessionID)
	}
	if all, err := sessionRepo.List(0); err == nil {
		fmt.Printf("Total sessions: %d\n", len(all))
	}
	fmt.Println()

	if state.ActiveSessionID != "" {
		fmt.Printf("Active session: %s\n", state.ActiveSessionID)
		fmt.Println("  (Use 'gocube3d play' to continue it)")
	} else {
		fmt.Println("No active session")
	}
	if state.LastCube != "" {
		if c, err := cube.Decode(state.LastCube); err == nil {
			fmt.Printf("Last cube: %s\n", c.DetectPhase().DisplayName())
		}
	}
	fmt.Println()

	if state.LastDeviceAddress != "" {
		fmt.Printf("Last device: %s (%s)\n", state.LastDeviceName, state.LastDeviceAddress)
	} else {
		fmt.Println("No device history")
	}
	return nil
}
