// Command turnout merges AEC turnout-by-state CSV exports into a single
// Year,State,TurnoutPct file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"auelect/internal/config"
	"auelect/internal/infrastructure"
	"auelect/internal/metrics"
	"auelect/internal/turnout"
	"auelect/pkg/contracts"
)

const command = "turnout"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.SetOutput(stderr)
	in := flags.String("in", "", "directory of AEC turnout CSV exports (defaults to data/raw)")
	out := flags.String("out", "", "merged output CSV (defaults to data/turnout_by_state.csv)")
	configFile := flags.String("config", "", "YAML config file")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString(command))
		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	paths := cfg.Paths.Resolve()
	if *in == "" {
		*in = paths.RawDir
	}
	if *out == "" {
		*out = paths.TurnoutCSV
	}
	if cfg.Logging.Output != "console" && cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath(command + ".log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)
	paths.LogPathResolution(logger)
	tracing, err := infrastructure.InitializeTracing(infrastructure.TracingFromConfig(cfg.Telemetry, command), logger)
	if err != nil {
		infrastructure.WithError(logger, err).WarnContext(ctx, "Tracing disabled")
	}
	defer tracing.Shutdown(context.Background())

	logger.InfoContext(ctx, "Starting turnout merge",
		slog.String("input_dir", *in),
		slog.String("output_file", *out),
		slog.String("version", config.AppVersion))

	rec := metrics.NewRecorder(command)
	started := time.Now()
	merger := turnout.NewMerger(logger, rec, stdout, turnout.Options{
		BOMPrefix: cfg.Export.BOMPrefix,
		XLSXCopy:  cfg.Export.XLSXCopy,
	})
	summary, err := merger.Run(ctx, *in, *out)

	rec.Finish(started, err == nil)
	if werr := rec.WriteTextfile(cfg.Telemetry.MetricsTextfile); werr != nil {
		infrastructure.WithError(logger, werr).WarnContext(ctx, "Failed to write metrics")
	}

	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Turnout merge failed")
		fmt.Fprintf(stderr, "turnout: %v\n", err)
		return 1
	}

	logger.InfoContext(ctx, "Turnout merge finished",
		slog.Int("rows", summary.Rows),
		slog.Duration("elapsed", time.Since(started)))
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
