package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nextbus/internal/config"
	"nextbus/internal/metrics"
	"nextbus/internal/report"
	"nextbus/internal/schedule"
)

var version = "dev"

// now is replaced in tests.
var now = time.Now

// app carries what every subcommand needs once the root command has run.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func main() {
	err := newRootCmd().Execute()
	report.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var dataDir, realtimeURL string

	root := &cobra.Command{
		Use:           "nextbus",
		Short:         "Info about scheduled buses",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("realtime") {
				cfg.RealtimeURL = realtimeURL
			}

			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			a.metrics = metrics.New()

			if err := report.Setup(cfg.SentryDSN, cfg.Environment, version); err != nil {
				a.logger.Warn("error reporting disabled", "error", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.metrics.WriteFile(a.cfg.MetricsFile, now()); err != nil {
				a.logger.Warn("failed to write metrics", "path", a.cfg.MetricsFile, "error", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data", "", "Directory or zip archive holding the schedule tables (default $NEXTBUS_DATA)")
	root.PersistentFlags().StringVar(&realtimeURL, "realtime", "", "URL or path of a GTFS-Realtime trip updates feed (default $NEXTBUS_REALTIME_URL)")

	root.AddCommand(newStopCmd(a), newSearchCmd(a))
	return root
}

// loadSchedule loads the static schedule, reporting failures. Load errors
// are fatal for every subcommand.
func (a *app) loadSchedule() (*schedule.Store, error) {
	start := time.Now()
	store, err := schedule.Load(a.cfg.DataDir, a.logger)
	if err != nil {
		ev := report.Event{
			Component: "schedule",
			Extra:     map[string]any{"data_dir": a.cfg.DataDir},
		}
		var le *schedule.LoadError
		if errors.As(err, &le) {
			ev.Tags = map[string]string{"file": le.File}
			ev.Extra["column"] = le.Column
			ev.Extra["line"] = le.Line
		}
		report.Report(err, ev)
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	a.metrics.ObserveLoad(time.Since(start), store.NumStops())
	return store, nil
}
