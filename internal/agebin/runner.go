package agebin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
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

// ErrSourceNotFound is returned by Run when the source CSV does not exist
var ErrSourceNotFound = errors.New("source CSV not found")

// Options controls output side effects of a binning run
type Options struct {
	BOMPrefix bool
	XLSXCopy  bool
}

// Summary describes a completed run
type Summary struct {
	RowsRead   int
	RowsBinned int
	Skipped    map[SkipReason]int
	Cells      int
	OutputPath string
	XLSXPath   string
}

// Runner bins one age/income source file into the coarse output table
type Runner struct {
	logger    *slog.Logger
	validator *validation.FileValidator
	writer    *exporter.CSVWriter
	metrics   *metrics.Recorder
	progress  io.Writer
	opts      Options
}

// NewRunner creates a Runner. progress receives the human-readable run
// report and defaults to stdout; rec may be nil.
func NewRunner(logger *slog.Logger, rec *metrics.Recorder, progress io.Writer, opts Options) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if progress == nil {
		progress = os.Stdout
	}
	logger = infrastructure.WithComponent(logger, "agebin")
	return &Runner{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
		writer:    exporter.NewCSVWriter(logger),
		metrics:   rec,
		progress:  progress,
		opts:      opts,
	}
}

// Run bins src into dest. A missing src returns an error wrapping
// ErrSourceNotFound; unusable rows are skipped and counted.
func (r *Runner) Run(ctx context.Context, src, dest string) (*Summary, error) {
	ctx, span := infrastructure.StartSpan(ctx, "agebin.Run",
		attribute.String("source", src),
		attribute.String("dest", dest))
	defer span.End()

	if err := r.validator.ValidateFile(src); err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			err = fmt.Errorf("%w: %s: %w", ErrSourceNotFound, src, err)
		}
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	binner, rowsRead, err := r.readSource(ctx, src)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	cells := binner.Cells()
	records := Records(cells)

	if err := r.validator.ValidateOutputDirectory(filepath.Dir(dest)); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	if err := r.writer.WriteSimpleCSV(dest, domain.AgeIncomeHeaders, records, r.opts.BOMPrefix); err != nil {
		storageErr := apperrors.NewStorageError("failed to write output", err).WithContext("path", dest)
		infrastructure.RecordError(ctx, storageErr)
		return nil, storageErr
	}

	summary := &Summary{
		RowsRead:   rowsRead,
		RowsBinned: binner.Aggregated(),
		Skipped:    binner.Skipped(),
		Cells:      len(cells),
		OutputPath: dest,
	}
	for reason, n := range summary.Skipped {
		r.metrics.RowsSkipped(string(reason), n)
	}
	r.metrics.RowsWritten(summary.Cells)

	if r.opts.XLSXCopy {
		xlsx := exporter.XLSXPath(dest)
		if err := exporter.WriteXLSX(xlsx, "AgeIncome", domain.AgeIncomeHeaders, records); err != nil {
			infrastructure.WithError(r.logger, err).WarnContext(ctx, "Failed to write XLSX copy",
				slog.String("path", xlsx))
		} else {
			summary.XLSXPath = xlsx
		}
	}

	fmt.Fprintf(r.progress, "Wrote %s with %d rows (aggregated incl. AUS)\n", dest, summary.Cells)
	if skips := formatSkips(summary.Skipped); skips != "" {
		fmt.Fprintf(r.progress, "  Skipped rows: %s\n", skips)
	}
	span.SetAttributes(attribute.Int("cells", summary.Cells))
	r.logger.InfoContext(ctx, "Age/income binning complete",
		slog.String("source", src),
		slog.String("output", dest),
		slog.Int("rows_read", summary.RowsRead),
		slog.Int("rows_binned", summary.RowsBinned),
		slog.Int("cells", summary.Cells))
	return summary, nil
}

func (r *Runner) readSource(ctx context.Context, src string) (*Binner, int, error) {
	rc, err := files.OpenSource(src)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("failed to open source", err).WithContext("path", src)
	}
	defer rc.Close()

	rows, malformed, err := ReadRows(rc)
	if err != nil {
		return nil, 0, apperrors.NewParsingError("failed to read source", err).WithContext("path", src)
	}

	binner := NewBinner()
	binner.Skip(SkipMalformed, malformed)
	for _, row := range rows {
		binner.Add(row)
	}
	r.metrics.FileProcessed()

	r.logger.DebugContext(ctx, "Read age/income source",
		slog.String("source", src),
		slog.Int("rows", len(rows)),
		slog.Int("malformed", malformed))
	return binner, len(rows) + malformed, nil
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
