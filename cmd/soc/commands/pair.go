package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/discovery"
)

// pairCmd represents the pair command
var pairCmd = &cobra.Command{
	Use:   "pair <aqua-dir> <viirs-dir>",
	Short: "Pair MODIS-Aqua and VIIRS files by period",
	Long: `Scans two directories for files named with yyyyddd date codes
(A20170012017031..., V20170012017031...) and matches them in sorted order.

Example:
  go run ./cmd/soc pair data/aqua data/viirs`,
	Args: cobra.ExactArgs(2),
	RunE: runPair,
}

func init() {
	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	pairs, err := discovery.PairDirs(args[0], args[1])
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("%d file pair(s)", len(pairs)))
	for _, p := range pairs {
		fmt.Printf("[%s] %s\n", p.Key, p.Label)
		PrintKeyValue("MC", p.Aqua, 2)
		PrintKeyValue("MO", p.VIIRS, 2)
		PrintSeparator()
	}

	if len(pairs) == 0 {
		PrintWarning("no files with date codes found")
	}
	return nil
}
