package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/timeconv"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <seconds>...",
	Short: "Convert seconds since 2000-01-01 to timestamps",
	Long: `Converts elapsed seconds since 2000-01-01T00:00:00Z to UTC timestamps
and 0-based fractional day of year (Jan 1 00:00 is 0.0).

Example:
  go run ./cmd/soc convert 0 86400 31622400.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	columns := []string{"Seconds", "Timestamp (UTC)", "Day of year"}
	widths := []int{16, 32, 12}
	PrintTableHeader(columns, widths)

	for _, arg := range args {
		sec, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid seconds %q: %w", arg, err)
		}

		PrintTableRow([]string{
			arg,
			timeconv.ToTimestamp(sec).Format("2006-01-02T15:04:05.999999999Z07:00"),
			strconv.FormatFloat(timeconv.DayOfYear(sec), 'f', 6, 64),
		}, widths)
	}

	return nil
}
