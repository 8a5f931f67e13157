package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/gocube3d/internal/ble"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/recorder"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and animate every physical turn.
The cube's orientation sensor turns the view with the cube.

The viewer starts solved: solve the physical cube first, or pass --reset
to tell the cube its current state is solved.`,
	RunE: runMirror,
}

var (
	mirrorTimeout time.Duration
	mirrorReset   bool
)

func init() {
	rootCmd.AddCommand(mirrorCmd)
	mirrorCmd.Flags().DurationVarP(&mirrorTimeout, "timeout", "t", 10*time.Second, "Scan timeout")
	mirrorCmd.Flags().BoolVar(&mirrorReset, "reset", false, "Mark the cube's current state as solved")
}

// closeStaleSession ends a session left open by an earlier run.
func closeStaleSession(session *recorder.Session, sf *recorder.StateFile) {
	if !sf.HasActiveSession() {
		return
	}
	if _, err := session.Resume(sf.ActiveSessionID()); err != nil {
		log.WithError(err).Warn("could not close stale session")
		sf.ClearActiveSession("")
		return
	}
	endSession(session)
}

// pickDevice prefers the last connected device.
func pickDevice(results []ble.ScanResult, lastAddress string) ble.ScanResult {
	for _, r := range results {
		if r.Address.String() == lastAddress {
			return r
		}
	}
	return results[0]
}

func runMirror(cmd *cobra.Command, args []string) error {
	db, sf, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	session := recorder.NewSession(db, sf, log)
	closeStaleSession(session, sf)
	if _, err := session.Start(storage.SourceMirror, cube.New(), ""); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer endSession(session)

	client, err := ble.NewClient(log)
	if err != nil {
		return err
	}
	defer client.Disconnect()

	v, palette, err := newViewer()
	if err != nil {
		return err
	}
	v.OnCommit(session.Hook())

	m := newViewerModel("gocube3d mirror", v, palette)
	m.session = session
	m.readOnly = true
	m.reset = func() error {
		if client.IsConnected() {
			if err := client.ResetSolved(); err != nil {
				return err
			}
		}
		endSession(session)
		_, err := session.Start(storage.SourceMirror, cube.New(), "")
		return err
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := connectCube(ctx, client, sf, prog); err != nil {
			prog.Send(bleErrorMsg{err: err})
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-client.Events():
				prog.Send(bleEventMsg{ev: ev})
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// connectCube scans, connects and enables the orientation sensor.
func connectCube(ctx context.Context, client *ble.Client, sf *recorder.StateFile, prog *tea.Program) error {
	results, err := client.Scan(ctx, mirrorTimeout)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return ble.ErrDeviceNotFound
	}

	target := pickDevice(results, sf.LastDeviceAddress())
	if err := client.Connect(ctx, target); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if err := sf.SetLastDevice(client.Address(), client.DeviceName()); err != nil {
		log.WithError(err).Warn("failed to update state file")
	}

	if mirrorReset {
		if err := client.ResetSolved(); err != nil {
			log.WithError(err).Warn("reset solved failed")
		}
	}
	if err := client.EnableOrientation(); err != nil {
		log.WithError(err).Warn("orientation not available")
	}

	prog.Send(bleConnectedMsg{name: client.DeviceName()})
	return nil
}
