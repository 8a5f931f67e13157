// Package cli implements the command-line interface for gocube3d.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/config"
	"github.com/SeamusWaldron/gocube3d/internal/recorder"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

const version = "0.2.0"

var (
	// Global flags
	configDir string
	dbPath    string
	verbose   bool
	logStderr bool

	cfg *config.Config
	log = logrus.New()

	logFile io.Closer
)

// rootCmd is the base command. Without a subcommand it starts play mode.
var rootCmd = &cobra.Command{
	Use:   "gocube3d",
	Short: "3D Rubik's Cube viewer",
	Long: `gocube3d - An animated 3D Rubik's Cube in your terminal.

Turn faces from the keyboard, mirror a GoCube smart cube over Bluetooth,
and replay recorded sessions turn by turn.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: runPlay,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: ~/.gocube3d)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: <config-dir>/gocube3d.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "Log to stderr instead of the log file")
}

// setup loads the configuration and points the logger at the log file.
func setup(cmd *cobra.Command, args []string) error {
	if configDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	loaded, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if dbPath != "" {
		loaded.DBPath = dbPath
	}
	cfg = loaded

	log.SetLevel(cfg.LogLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logStderr {
		log.SetOutput(os.Stderr)
		return nil
	}

	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logFile = f
	return nil
}

// openStore opens the database and the state file.
func openStore() (*storage.DB, *recorder.StateFile, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	sf, err := recorder.NewStateFile(recorder.DefaultStatePath(cfg.Dir))
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load state: %w", err)
	}
	return db, sf, nil
}
