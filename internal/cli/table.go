package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Export or verify the move table",
	Long: `The move table lists, for every face turn, where each of the 54 facelets
moves to. A verified table can be set as table_file in config.yaml.`,
}

var tableExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in move table as YAML",
	Args:  cobra.NoArgs,
	RunE:  runTableExport,
}

var tableVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check a move table file against the cube geometry",
	Args:  cobra.ExactArgs(1),
	RunE:  runTableVerify,
}

var tableOut string

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableExportCmd)
	tableCmd.AddCommand(tableVerifyCmd)
	tableExportCmd.Flags().StringVarP(&tableOut, "out", "o", "", "Output file (default: stdout)")
}

func runTableExport(cmd *cobra.Command, args []string) error {
	var w io.Writer = os.Stdout
	if tableOut != "" {
		f, err := os.Create(tableOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", tableOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := cube.WriteTable(w, cube.DefaultTable()); err != nil {
		return err
	}
	if tableOut != "" {
		fmt.Printf("Wrote %s\n", tableOut)
	}
	return nil
}

func runTableVerify(cmd *cobra.Command, args []string) error {
	table, err := cube.LoadTableFile(args[0])
	if err != nil {
		return err
	}
	if err := table.Verify(); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", args[0])
	return nil
}
