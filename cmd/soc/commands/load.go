package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/loader"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a record file into a Time-Indexed Table",
	Long: `Parses a whitespace-delimited record file (time nbins mean median stdv)
and prints the resulting table. By default only chl_a_mean is kept.

Example:
  go run ./cmd/soc load data/aqua.txt
  go run ./cmd/soc load data/aqua.txt --full --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

var (
	loadFull  bool
	loadLimit int
)

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadFull, "full", false, "keep nbins, median and stdv")
	loadCmd.Flags().IntVar(&loadLimit, "limit", 0, "print at most N rows (0 = all)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	table, err := loader.LoadFile(args[0], loader.Options{Minimal: !loadFull})
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Table %s", table.Name))
	if err := printTable(table, table.Labels(), loadLimit); err != nil {
		return err
	}
	printSpan(table)
	return nil
}

// printTable prints the given labels of every row, up to limit rows
func printTable(table *contracts.Table, labels []string, limit int) error {
	columns := append([]string{"timestamp"}, labels...)
	widths := widthsFor(columns, 12)
	widths[0] = 19
	PrintTableHeader(columns, widths)

	for i, row := range table.Rows {
		if limit > 0 && i >= limit {
			fmt.Printf("... %d more rows\n", table.Len()-limit)
			break
		}

		values := []string{FormatTimestamp(row.Timestamp)}
		for _, label := range labels {
			v, err := table.Lookup(i, label)
			if err != nil {
				return err
			}
			values = append(values, FormatValue(v))
		}
		PrintTableRow(values, widths)
	}
	return nil
}

func printSpan(table *contracts.Table) {
	PrintSeparator()
	lo, hi, ok := table.YearSpan()
	if !ok {
		PrintWarning("table is empty")
		return
	}
	PrintKeyValue("Rows", fmt.Sprint(table.Len()), 8)
	PrintKeyValue("Years", fmt.Sprintf("%d - %d", lo, hi), 8)
}
