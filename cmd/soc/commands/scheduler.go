package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/pipeline"
	"github.com/madHatter106/state-of-the-climate/internal/profile"
	"github.com/madHatter106/state-of-the-climate/internal/scheduler"
	"github.com/madHatter106/state-of-the-climate/internal/scheduler/jobs"
	"github.com/madHatter106/state-of-the-climate/pkg/config"
	"github.com/madHatter106/state-of-the-climate/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the pipeline scheduler",
	Long: `Starts the scheduler or inspects its jobs.

Subcommands:
  start   - start the scheduler
  list    - list registered jobs
  run     - run a job immediately

Example:
  go run ./cmd/soc scheduler start
  go run ./cmd/soc scheduler list
  go run ./cmd/soc scheduler run pipeline_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		Long: `Starts the scheduler and registers every job.

Registered jobs:
- pipeline_refresh: SCHEDULE (default 06:00 daily), re-runs the pipeline
  and writes PLOT_OUTPUT when set

A tick is skipped while the previous run is still going.
Stop with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	sched, _, _, err := initScheduler(cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	fmt.Println()
	PrintSuccess("Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	PrintList(sched.GetAllJobs())
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	sched, _, _, err := initScheduler(cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for name, stat := range sched.GetJobStats() {
		PrintKeyValue(name, stat.Schedule, 18)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	sched, _, _, err := initScheduler(cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Printf("Running job: %s\n", jobName)
	result, err := sched.RunJob(context.Background(), jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		PrintError(fmt.Sprintf("%s failed after %s: %s", jobName, result.Duration, result.Error))
		return fmt.Errorf("job %s failed", jobName)
	}
	PrintSuccess(fmt.Sprintf("%s completed in %s", jobName, result.Duration))
	return nil
}

// initScheduler registers every job; the returned store receives the result
// of each pipeline run
func initScheduler(cfg *config.Config, log *logger.Logger) (*scheduler.Scheduler, *pipeline.Store, *profile.Profile, error) {
	runner, prof, err := newRunner(cfg, log, true)
	if err != nil {
		return nil, nil, nil, err
	}

	store := pipeline.NewStore()
	job := jobs.NewPipelineJob(runner, store, cfg.Schedule, log)
	if cfg.Plot.Output != "" {
		job.WithPlot(cfg.Plot.Output, prof.Plot.Labels, prof.Style())
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return nil, nil, nil, err
	}

	return sched, store, prof, nil
}
