package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/climatology"
	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/loader"
)

// climatologyCmd represents the climatology command
var climatologyCmd = &cobra.Command{
	Use:   "climatology <file>",
	Short: "Compute the monthly climatology of a record file",
	Long: `Averages a column per calendar month over an inclusive window of years.
Without --start/--end the window spans every year in the file.

Example:
  go run ./cmd/soc climatology data/aqua.txt --start 2003 --end 2012`,
	Args: cobra.ExactArgs(1),
	RunE: runClimatology,
}

var (
	climStart  int
	climEnd    int
	climColumn string
)

func init() {
	rootCmd.AddCommand(climatologyCmd)

	addWindowFlags(climatologyCmd)
}

// addWindowFlags registers the reference window flags shared with anomaly
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&climStart, "start", 0, "first year of the reference window (0 = earliest in data)")
	cmd.Flags().IntVar(&climEnd, "end", 0, "last year of the reference window (0 = latest in data)")
	cmd.Flags().StringVar(&climColumn, "column", string(contracts.ColumnMean), "column to average")
}

// loadClimatology loads file and computes its climatology from the window flags
func loadClimatology(path string) (*contracts.Table, *contracts.Climatology, error) {
	column := contracts.Column(climColumn)
	table, err := loader.LoadFile(path, loader.Options{Minimal: column == contracts.ColumnMean})
	if err != nil {
		return nil, nil, err
	}

	clim, err := climatology.MonthlyMeans(table, column, climatology.Window{YearStart: climStart, YearEnd: climEnd})
	if err != nil {
		return nil, nil, err
	}
	return table, clim, nil
}

func runClimatology(cmd *cobra.Command, args []string) error {
	table, clim, err := loadClimatology(args[0])
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Climatology %s (%s, %d-%d)", table.Name, clim.Column, clim.YearStart, clim.YearEnd))
	printClimatology(clim)
	return nil
}

func printClimatology(clim *contracts.Climatology) {
	columns := []string{"Month", "Mean", "Count"}
	widths := []int{10, 12, 6}
	PrintTableHeader(columns, widths)

	for _, m := range clim.Months {
		PrintTableRow([]string{m.Month.String(), FormatValue(m.Mean), fmt.Sprint(m.Count)}, widths)
	}

	if missing := clim.MissingMonths(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, m.String())
		}
		PrintWarning(fmt.Sprintf("no data for %d month(s)", len(missing)))
		PrintList(names)
	}
}
