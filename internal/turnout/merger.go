package turnout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "auelect/internal/errors"
	"auelect/internal/exporter"
	"auelect/internal/files"
	"auelect/internal/infrastructure"
	"auelect/internal/metrics"
	"auelect/internal/validation"
	"auelect/pkg/contracts/domain"
)

// Options controls output side effects of a merge run
type Options struct {
	BOMPrefix bool
	XLSXCopy  bool
}

// Summary describes a completed run
type Summary struct {
	FilesFound   int
	FilesParsed  int
	FilesSkipped int
	Rows         int
	Skipped      map[SkipReason]int
	OutputPath   string
	XLSXPath     string
}

// Merger reads every turnout export in a directory and writes one merged CSV
type Merger struct {
	logger    *slog.Logger
	validator *validation.FileValidator
	writer    *exporter.CSVWriter
	metrics   *metrics.Recorder
	progress  io.Writer
	opts      Options
}

// NewMerger creates a Merger. progress receives the human-readable run
// report and defaults to stdout; rec may be nil.
func NewMerger(logger *slog.Logger, rec *metrics.Recorder, progress io.Writer, opts Options) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	if progress == nil {
		progress = os.Stdout
	}
	logger = infrastructure.WithComponent(logger, "turnout")
	return &Merger{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
		writer:    exporter.NewCSVWriter(logger),
		metrics:   rec,
		progress:  progress,
		opts:      opts,
	}
}

// Run merges inputDir/*.csv into outputPath. Only failing to create or write
// the output is returned as an error; bad files and rows are skipped.
func (m *Merger) Run(ctx context.Context, inputDir, outputPath string) (*Summary, error) {
	ctx, span := infrastructure.StartSpan(ctx, "turnout.Run",
		attribute.String("input_dir", inputDir),
		attribute.String("output_path", outputPath))
	defer span.End()

	summary := &Summary{Skipped: make(map[SkipReason]int), OutputPath: outputPath}

	if err := m.validator.ValidateOutputDirectory(filepath.Dir(outputPath)); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	sources := m.discover(ctx, inputDir)
	summary.FilesFound = len(sources)
	if len(sources) == 0 {
		fmt.Fprintf(m.progress, "No CSVs found in %s. Put the AEC files there and re-run.\n", inputDir)
	}

	var results []*FileResult
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := m.parseFile(ctx, src)
		if err != nil {
			summary.FilesSkipped++
			m.metrics.FileSkipped()
			continue
		}
		summary.FilesParsed++
		m.metrics.FileProcessed()
		for reason, n := range result.Skipped {
			summary.Skipped[reason] += n
			m.metrics.RowsSkipped(string(reason), n)
		}
		results = append(results, result)
	}

	merged := Merge(results)
	records := Records(merged)
	if err := m.writer.WriteSimpleCSV(outputPath, domain.TurnoutHeaders, records, m.opts.BOMPrefix); err != nil {
		storageErr := apperrors.NewStorageError("failed to write output", err).
			WithContext("path", outputPath)
		infrastructure.RecordError(ctx, storageErr)
		return nil, storageErr
	}
	summary.Rows = len(merged)
	m.metrics.RowsWritten(summary.Rows)

	if m.opts.XLSXCopy {
		xlsx := exporter.XLSXPath(outputPath)
		if err := exporter.WriteXLSX(xlsx, "Turnout", domain.TurnoutHeaders, records); err != nil {
			infrastructure.WithError(m.logger, err).WarnContext(ctx, "Failed to write XLSX copy",
				slog.String("path", xlsx))
		} else {
			summary.XLSXPath = xlsx
		}
	}

	fmt.Fprintf(m.progress, "Saved %s with %d rows.\n", outputPath, summary.Rows)
	m.logger.InfoContext(ctx, "Turnout merge complete",
		slog.Int("files_found", summary.FilesFound),
		slog.Int("files_parsed", summary.FilesParsed),
		slog.Int("files_skipped", summary.FilesSkipped),
		slog.Int("rows", summary.Rows),
		slog.String("output", outputPath))
	return summary, nil
}

// discover lists the sources to merge. An unreadable or missing directory
// yields none.
func (m *Merger) discover(ctx context.Context, inputDir string) []files.FileInfo {
	if err := m.validator.ValidateInputDirectory(inputDir); err != nil {
		infrastructure.WithError(m.logger, err).WarnContext(ctx, "Input directory unusable, merging nothing",
			slog.String("dir", inputDir))
		return nil
	}

	sources, err := files.FindCSVFiles(inputDir)
	if err != nil {
		infrastructure.WithError(m.logger, err).WarnContext(ctx, "Failed to list input directory",
			slog.String("dir", inputDir))
		return nil
	}
	m.logger.DebugContext(ctx, "Discovered turnout sources",
		slog.String("dir", inputDir),
		slog.Any("files", files.Names(sources)))
	return sources
}

func (m *Merger) parseFile(ctx context.Context, src files.FileInfo) (*FileResult, error) {
	ctx, span := infrastructure.StartSpan(ctx, "turnout.ParseSource",
		attribute.String("file", src.Name))
	defer span.End()

	rc, err := files.OpenSource(src.Path)
	if err != nil {
		m.fileSkipped(ctx, src.Name, err)
		return nil, err
	}
	defer rc.Close()

	result, err := ParseSource(src.Name, rc)
	if err != nil {
		var colErr *ColumnsError
		if errors.As(err, &colErr) {
			fmt.Fprintf(m.progress, "Skipping (columns not found): %s\n", src.Name)
			fmt.Fprintf(m.progress, "  Headers seen: %v\n", colErr.Headers)
		}
		m.fileSkipped(ctx, src.Name, err)
		return nil, err
	}

	year := "unknown"
	if result.YearKnown {
		year = strconv.Itoa(result.Year)
	}
	fmt.Fprintf(m.progress, "Parsed %s: %d rows (Year=%s)\n", src.Name, len(result.Records), year)
	if n := result.SkippedTotal(); n > 0 {
		fmt.Fprintf(m.progress, "  Skipped %d rows (%s)\n", n, formatSkips(result.Skipped))
	}

	span.SetAttributes(
		attribute.Int("rows", len(result.Records)),
		attribute.Int("rows_skipped", result.SkippedTotal()))
	m.logger.InfoContext(ctx, "Parsed turnout source",
		slog.String("file", src.Name),
		slog.Int64("size", src.Size),
		slog.String("year", year),
		slog.String("state_column", result.StateColumn),
		slog.String("turnout_column", result.TurnoutColumn),
		slog.Int("rows", len(result.Records)),
		slog.Int("rows_skipped", result.SkippedTotal()))
	return result, nil
}

func (m *Merger) fileSkipped(ctx context.Context, name string, err error) {
	infrastructure.RecordError(ctx, err)
	infrastructure.WithError(m.logger, err).WarnContext(ctx, "Skipping turnout source",
		slog.String("file", name))
}

func formatSkips(skipped map[SkipReason]int) string {
	var parts []string
	for _, reason := range SkipReasons {
		if n := skipped[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, n))
		}
	}
	return strings.Join(parts, " ")
}
