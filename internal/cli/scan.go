package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/ble"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube devices",
	RunE:  runScan,
}

var scanTimeout time.Duration

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVarP(&scanTimeout, "timeout", "t", 5*time.Second, "Scan timeout")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GoCube devices...")

	client, err := ble.NewClient(log)
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	results, err := client.Scan(cmd.Context(), scanTimeout)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No GoCube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Ensure your GoCube is powered on")
		fmt.Println("  - Move the cube to wake it up")
		fmt.Println("  - Disconnect it from the phone app")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(results))
	for _, r := range results {
		fmt.Printf("  - %s (%s, RSSI: %d)\n", r.Name, r.Address.String(), r.RSSI)
	}
	return nil
}
