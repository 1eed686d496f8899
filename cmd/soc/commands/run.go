package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/contracts"
	"github.com/madHatter106/state-of-the-climate/internal/pipeline"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	Long: `Runs load → climatology → anomaly → quality for every sensor, fetches
the MEI table and optionally renders a plot.

Sensors come from SOC_SENSORS (name=path,...) and --sensor flags.

Example:
  go run ./cmd/soc run --sensor aqua=data/aqua.txt --sensor viirs=data/viirs.txt
  go run ./cmd/soc run --plot soc.png --labels chl_a_mean,chl_a_mean_anomaly
  go run ./cmd/soc run --no-mei`,
	RunE: runPipeline,
}

var (
	runSensors []string
	runPlot    string
	runLabels  []string
	runNoMEI   bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVar(&runSensors, "sensor", nil, "sensor record file as name=path (repeatable)")
	runCmd.Flags().StringVar(&runPlot, "plot", "", "write a PNG plot to this path (default PLOT_OUTPUT)")
	runCmd.Flags().StringSliceVar(&runLabels, "labels", nil, "labels to plot, one panel each (default PLOT_LABELS)")
	runCmd.Flags().BoolVar(&runNoMEI, "no-mei", false, "skip fetching the MEI table")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if err := applySensorFlags(cfg, runSensors); err != nil {
		return err
	}

	runner, prof, err := newRunner(cfg, log, !runNoMEI)
	if err != nil {
		return err
	}

	PrintHeader("Pipeline run")
	start := time.Now()

	result, err := runner.Run(context.Background())
	if err != nil {
		PrintError(err.Error())
		return err
	}
	PrintKeyValue("Run", result.RunID, 8)
	PrintKeyValue("Profile", fmt.Sprintf("%s (%s)", result.Snapshot.ProfileID, result.Snapshot.ProfileHash[:12]), 8)
	PrintSeparator()

	stages := result.Stages
	plotPath := runPlot
	if plotPath == "" {
		plotPath = cfg.Plot.Output
	}
	if plotPath != "" {
		rec, err := runner.Plot(result, plotPath, plotLabels(prof, runLabels), prof.Style())
		stages = append(stages, rec)
		if err != nil {
			printStages(stages)
			return err
		}
	}

	printStages(stages)
	printQuality(result)

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Pipeline completed in %.2fs", time.Since(start).Seconds()))
	if plotPath != "" {
		PrintInfo("Plot written to " + plotPath)
	}
	return nil
}

func printStages(stages []contracts.PipelineResult) {
	columns := []string{"Stage", "Source", "In", "Out", "ms", "Status"}
	widths := []int{16, 24, 8, 8, 6, 8}
	PrintTableHeader(columns, widths)

	for _, s := range stages {
		status := "ok"
		if !s.Success {
			status = "FAILED"
		}
		PrintTableRow([]string{
			string(s.Stage),
			s.Source,
			fmt.Sprint(s.InputCount),
			fmt.Sprint(s.OutputCount),
			fmt.Sprint(s.Duration),
			status,
		}, widths)
	}
}

func printQuality(result *pipeline.Result) {
	fmt.Println()
	PrintSeparator()
	for _, name := range result.SensorNames() {
		q := result.Sensors[name].Quality
		line := fmt.Sprintf("%s: score %.2f, %d/%d rows in %d-%d",
			name, q.QualityScore, q.WindowRows, q.TotalRows, q.YearStart, q.YearEnd)
		if q.Passed {
			PrintSuccess(line)
		} else {
			PrintWarning(line + " (coverage below threshold)")
		}
	}
}
