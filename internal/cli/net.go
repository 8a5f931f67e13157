package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

var netCmd = &cobra.Command{
	Use:   "net",
	Short: "Print the unfolded cube after a move sequence",
	Long: `Apply a move sequence to a solved cube and print the unfolded net:
U on top, L F R B across the middle and D below.`,
	RunE: runNet,
}

var (
	netMoves string
	netPlain bool
)

func init() {
	rootCmd.AddCommand(netCmd)
	netCmd.Flags().StringVarP(&netMoves, "moves", "m", "", "Move sequence in standard notation")
	netCmd.Flags().BoolVar(&netPlain, "plain", false, "Print color letters instead of colored cells")
}

func runNet(cmd *cobra.Command, args []string) error {
	c, err := cube.Scramble(netMoves)
	if err != nil {
		return err
	}

	if netPlain {
		fmt.Print(c.String())
	} else {
		rc, err := cfg.RenderConfig()
		if err != nil {
			return err
		}
		fmt.Println(colorNet(c, rc.Palette))
	}

	fmt.Println()
	fmt.Printf("Phase: %s\n", c.DetectPhase().DisplayName())
	fmt.Printf("State: %s\n", c.Encode())
	return nil
}
