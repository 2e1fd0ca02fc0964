package agebin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "auelect/internal/errors"
	"auelect/internal/metrics"
	"auelect/internal/shared/testutil"
)

const sampleSource = "\ufeffState,AgeGroup,IncomeBracket,Count\n" +
	"NSW,15-19 years,$1-$149,10\n" +
	"VIC,20-24 years,$150-$299,5\n" +
	"QLD,Total,$1-$149,999\n" +
	"NSW,15-19 years,Personal income not stated,3\n" +
	"AUS,15-19 years,$1-$149,500\n" +
	"WA,85 years and over,\"$3,500 or more\",\"1,200\"\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerRun(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "age_income_by_state.csv")
	dest := filepath.Join(base, "out", "age_income_binned.csv")
	testutil.WriteFiles(t, base, map[string]string{"age_income_by_state.csv": sampleSource})

	var progress bytes.Buffer
	summary, err := NewRunner(quietLogger(), nil, &progress, Options{}).Run(context.Background(), src, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "State,AgeBin,IncomeBin,Count\r\n"+
		"NSW,15-24,Negative/Nil to $649,10\r\n"+
		"VIC,15-24,Negative/Nil to $649,5\r\n"+
		"WA,85 years and over,\"$3,000 and above\",1200\r\n"+
		"AUS,15-24,Negative/Nil to $649,15\r\n"+
		"AUS,85 years and over,\"$3,000 and above\",1200\r\n", string(data))

	assert.Equal(t, 6, summary.RowsRead)
	assert.Equal(t, 3, summary.RowsBinned)
	assert.Equal(t, 5, summary.Cells)
	assert.Equal(t, map[SkipReason]int{SkipTotal: 1, SkipNotStated: 1, SkipNational: 1}, summary.Skipped)
	assert.Contains(t, progress.String(), "Wrote "+dest+" with 5 rows (aggregated incl. AUS)")
	assert.Contains(t, progress.String(), "Skipped rows: total=1 not_stated=1 national_row=1")
}

func TestRunnerRun_SourceNotFound(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "out.csv")

	_, err := NewRunner(quietLogger(), nil, io.Discard, Options{}).
		Run(context.Background(), filepath.Join(base, "missing.csv"), dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no output on fatal error")
}

func TestRunnerRun_HeaderOnlySource(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "in.csv")
	dest := filepath.Join(base, "out.csv")
	testutil.WriteFiles(t, base, map[string]string{"in.csv": "State,AgeGroup,IncomeBracket,Count\n"})

	summary, err := NewRunner(quietLogger(), nil, io.Discard, Options{}).Run(context.Background(), src, dest)
	require.NoError(t, err)
	assert.Zero(t, summary.Cells)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "State,AgeBin,IncomeBin,Count\r\n", string(data))
}

func TestRunnerRun_Idempotent(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "in.csv")
	dest := filepath.Join(base, "out.csv")
	testutil.WriteFiles(t, base, map[string]string{"in.csv": sampleSource})

	runner := NewRunner(quietLogger(), nil, io.Discard, Options{})
	_, err := runner.Run(context.Background(), src, dest)
	require.NoError(t, err)
	first, err := os.ReadFile(dest)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), src, dest)
	require.NoError(t, err)
	second, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunnerRun_XLSXCopyAndMetrics(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "in.csv")
	dest := filepath.Join(base, "binned.csv")
	testutil.WriteFiles(t, base, map[string]string{"in.csv": sampleSource})

	rec := metrics.NewRecorder("agebin")
	summary, err := NewRunner(quietLogger(), rec, io.Discard, Options{XLSXCopy: true}).
		Run(context.Background(), src, dest)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "binned.xlsx"), summary.XLSXPath)

	f, err := excelize.OpenFile(summary.XLSXPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("AgeIncome")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"State", "AgeBin", "IncomeBin", "Count"}, rows[0])
	assert.Equal(t, []string{"AUS", "15-24", "Negative/Nil to $649", "15"}, rows[4])

	n, err := promtestutil.GatherAndCount(rec.Gatherer(), "auelect_rows_skipped_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunnerRun_LogsSummary(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "in.csv")
	testutil.WriteFiles(t, base, map[string]string{"in.csv": sampleSource})

	logger, logs := testutil.NewCaptureLogger()
	_, err := NewRunner(logger, nil, io.Discard, Options{}).
		Run(context.Background(), src, filepath.Join(base, "out.csv"))
	require.NoError(t, err)

	r, ok := logs.Find(slog.LevelInfo, "Age/income binning complete")
	require.True(t, ok)
	assert.Equal(t, "agebin", r.Attrs["component"])
	assert.Equal(t, int64(5), r.Attrs["cells"])
	assert.Equal(t, int64(3), r.Attrs["rows_binned"])
}
