package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/madHatter106/state-of-the-climate/internal/api"
	"github.com/madHatter106/state-of-the-climate/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Runs the pipeline once and serves its result over HTTP for external
renderers.

Endpoints:
  GET  /health                              - Health check
  GET  /api/sensors                         - Sensors and their labels
  GET  /api/sensors/{sensor}/series         - Rows (?labels=a,b)
  GET  /api/sensors/{sensor}/climatology    - Monthly climatology
  GET  /api/sensors/{sensor}/quality        - Coverage snapshot
  GET  /api/pipeline/run                    - Run id and profile snapshot
  GET  /api/pipeline/stages                 - Stage records of the last run
  GET  /api/plot/style                      - Plot colours and sizes

With --refresh the scheduler re-runs the pipeline on SCHEDULE and the
server switches to each new result.

Example:
  go run ./cmd/soc serve
  go run ./cmd/soc serve --port 8080 --refresh`,
	RunE: runServe,
}

var (
	servePort    string
	serveRefresh bool
	serveSensors []string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default PORT)")
	serveCmd.Flags().BoolVar(&serveRefresh, "refresh", false, "re-run the pipeline on SCHEDULE")
	serveCmd.Flags().StringArrayVar(&serveSensors, "sensor", nil, "sensor record file as name=path (repeatable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== State of the Climate API Server ===")

	// 1. Load config and logger
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if err := applySensorFlags(cfg, serveSensors); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 2. Scheduler owns the pipeline job and its result store
	sched, store, prof, err := initScheduler(cfg, log)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// 3. First run before serving
	result, err := sched.RunJob(context.Background(), "pipeline_refresh")
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("initial pipeline run failed: %s", result.Error)
	}

	// 4. Handlers, router, server
	sensorHandler := handlers.NewSensorHandler(store, log)
	plotHandler := handlers.NewPlotHandler(prof.Style(), prof.Plot.Labels)
	router := api.NewRouter(sensorHandler, plotHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	if serveRefresh {
		sched.Start()
		defer sched.Stop()
	}

	log.Info("API server started successfully")
	fmt.Println()
	PrintSuccess(fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
