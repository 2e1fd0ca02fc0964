package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder("turnout")

	r.FileProcessed()
	r.FileProcessed()
	r.FileSkipped()
	r.RowsSkipped("invalid_state", 3)
	r.RowsSkipped("invalid_state", 2)
	r.RowsSkipped("bad_turnout", 0)
	r.RowsWritten(16)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.files.WithLabelValues("processed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.files.WithLabelValues("skipped")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.rowsSkipped.WithLabelValues("invalid_state")))
	assert.Equal(t, 16.0, testutil.ToFloat64(r.rowsWritten))
	// zero adds create no series
	assert.Equal(t, 1, testutil.CollectAndCount(r.rowsSkipped))
}

func TestRecorder_Finish(t *testing.T) {
	r := NewRecorder("agebin")

	r.Finish(time.Now().Add(-2*time.Second), false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(r.duration), 2.0)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastSuccess))

	r.Finish(time.Now(), true)
	assert.Greater(t, testutil.ToFloat64(r.lastSuccess), 0.0)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder("agebin")
	r.RowsWritten(45)

	path := filepath.Join(t.TempDir(), "textfile", "auelect_agebin.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), `auelect_rows_written{command="agebin"} 45`))

	assert.NoError(t, r.WriteTextfile(""))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder

	r.FileProcessed()
	r.FileSkipped()
	r.RowsSkipped("x", 1)
	r.RowsWritten(1)
	r.Finish(time.Now(), true)
	assert.NoError(t, r.WriteTextfile("/nonexistent/x.prom"))
}
