package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// meiCmd represents the mei command
var meiCmd = &cobra.Command{
	Use:   "mei",
	Short: "Fetch the Multivariate ENSO Index table",
	Long: `Downloads the NOAA MEI table (MEI_URL) and prints one row per year with
twelve bimonthly values. Missing values print as "-".

Example:
  go run ./cmd/soc mei
  go run ./cmd/soc mei --url https://psl.noaa.gov/enso/mei.old/table.html`,
	RunE: runMEI,
}

var meiURL string

func init() {
	rootCmd.AddCommand(meiCmd)

	meiCmd.Flags().StringVar(&meiURL, "url", "", "MEI table URL (default MEI_URL)")
}

func runMEI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if meiURL != "" {
		cfg.MEI.URL = meiURL
	}

	table, err := newMEIClient(cfg, log).FetchMEI(context.Background())
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("MEI (%d years)", len(table.Years)))

	columns := append([]string{"YEAR"}, table.Columns...)
	widths := widthsFor(columns, 7)
	PrintTableHeader(columns, widths)

	for _, y := range table.Years {
		values := []string{fmt.Sprint(y.Year)}
		for _, v := range y.Values {
			values = append(values, FormatValue(v))
		}
		PrintTableRow(values, widths)
	}
	return nil
}
