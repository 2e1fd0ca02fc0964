// Command agebin re-bins the age by income census table into coarse bins
// with a national AUS aggregate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"auelect/internal/agebin"
	"auelect/internal/config"
	"auelect/internal/infrastructure"
	"auelect/internal/metrics"
	"auelect/pkg/contracts"
)

const command = "agebin"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.SetOutput(stderr)
	src := flags.String("src", "", "age/income source CSV (defaults to data/age_income_by_state.csv)")
	dest := flags.String("dest", "", "binned output CSV (defaults to data/age_income_binned.csv)")
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
	if *src == "" {
		*src = paths.AgeIncomeCSV
	}
	if *dest == "" {
		*dest = paths.AgeIncomeBinnedCSV
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

	logger.InfoContext(ctx, "Starting age/income binning",
		slog.String("source", *src),
		slog.String("output_file", *dest),
		slog.String("version", config.AppVersion))

	rec := metrics.NewRecorder(command)
	started := time.Now()
	runner := agebin.NewRunner(logger, rec, stdout, agebin.Options{
		BOMPrefix: cfg.Export.BOMPrefix,
		XLSXCopy:  cfg.Export.XLSXCopy,
	})
	summary, err := runner.Run(ctx, *src, *dest)

	rec.Finish(started, err == nil)
	if werr := rec.WriteTextfile(cfg.Telemetry.MetricsTextfile); werr != nil {
		infrastructure.WithError(logger, werr).WarnContext(ctx, "Failed to write metrics")
	}

	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Age/income binning failed")
		if errors.Is(err, agebin.ErrSourceNotFound) {
			fmt.Fprintf(stderr, "Source CSV not found: %s\n", *src)
		} else {
			fmt.Fprintf(stderr, "agebin: %v\n", err)
		}
		return 1
	}

	logger.InfoContext(ctx, "Age/income binning finished",
		slog.Int("cells", summary.Cells),
		slog.Duration("elapsed", time.Since(started)))
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
