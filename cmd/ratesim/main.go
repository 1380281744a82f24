package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/logger"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/storage"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	log       *logger.Logger

	// run
	params     config.Params
	configFile string
	preset     string
	noSave     bool
	showPaths  int

	// plot and export-svg
	width  int
	height int

	// serve
	addr      string
	timeout   time.Duration
	maxPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ratesim",
		Short:         "Monte Carlo simulation of mean-reverting CEV short rates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = logger.New(&logger.Config{Level: logLevel, Format: logFormat})
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ratesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate an ensemble and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	bindParamFlags(runCmd, &params)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&showPaths, "show-paths", 0, "draw this many sample paths")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot median and confidence band of a run (default: latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&width, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&height, "height", 15, "chart height")
	plotCmd.Flags().IntVar(&showPaths, "show-paths", 0, "draw this many sample paths")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the paths table of a run to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [run_id]",
		Short: "write the median/band table of a run to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSummary,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write the run report as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write a fan chart of the run as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 400, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-18s %s\n", name, viz.Subtle.Render(viz.Specification(*config.GetPreset(name))))
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of runs and sweeps",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure throughput for increasing worker counts",
		Args:  cobra.NoArgs,
		RunE:  benchWorkers,
	}
	bindParamFlags(benchCmd, &params)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the simulator over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request simulation timeout")
	serveCmd.Flags().IntVar(&maxPoints, "max-points", 5_000_000, "max nPaths*(steps+1) per request, 0 for no limit")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, summaryCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, batchCmd, benchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// resolveRun returns the run named in args, or the latest one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) == 0 || args[0] == "latest" {
		return st.Latest()
	}
	return args[0], nil
}
