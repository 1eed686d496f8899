package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/anomaly"
)

// anomalyCmd represents the anomaly command
var anomalyCmd = &cobra.Command{
	Use:   "anomaly <file>",
	Short: "Add anomaly columns to a record file",
	Long: `Computes the monthly climatology of a record file and prints every row
with its absolute and percentage anomaly.

With --strict a zero climatological mean is an error instead of an
undefined percentage.

Example:
  go run ./cmd/soc anomaly data/aqua.txt --start 2003 --end 2012 --limit 24`,
	Args: cobra.ExactArgs(1),
	RunE: runAnomaly,
}

var (
	anomalyStrict bool
	anomalyLimit  int
)

func init() {
	rootCmd.AddCommand(anomalyCmd)

	addWindowFlags(anomalyCmd)
	anomalyCmd.Flags().BoolVar(&anomalyStrict, "strict", false, "fail on a zero climatological mean")
	anomalyCmd.Flags().IntVar(&anomalyLimit, "limit", 0, "print at most N rows (0 = all)")
}

func runAnomaly(cmd *cobra.Command, args []string) error {
	table, clim, err := loadClimatology(args[0])
	if err != nil {
		return err
	}

	policy := anomaly.PolicyUndefined
	if anomalyStrict {
		policy = anomaly.PolicyStrict
	}
	if err := anomaly.ApplyWithPolicy(table, clim, clim.Column, policy); err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Anomalies %s (%s, %d-%d)", table.Name, clim.Column, clim.YearStart, clim.YearEnd))
	labels := []string{string(clim.Column), clim.Column.AnomalyLabel(), clim.Column.PercentAnomalyLabel()}
	if err := printTable(table, labels, anomalyLimit); err != nil {
		return err
	}
	printSpan(table)
	return nil
}
