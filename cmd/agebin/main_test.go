package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auelect/internal/infrastructure"
)

func TestRun(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "age_income_by_state.csv")
	dest := filepath.Join(base, "age_income_binned.csv")
	require.NoError(t, os.WriteFile(src, []byte("State,AgeGroup,IncomeBracket,Count\n"+
		"NSW,15-19 years,$1-$149,10\n"+
		"VIC,20-24 years,$150-$299,5\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-src", src, "-dest", dest}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "State,AgeBin,IncomeBin,Count\r\n"+
		"NSW,15-24,Negative/Nil to $649,10\r\n"+
		"VIC,15-24,Negative/Nil to $649,5\r\n"+
		"AUS,15-24,Negative/Nil to $649,15\r\n", string(data))
	assert.Contains(t, stdout.String(), "Wrote "+dest+" with 3 rows (aggregated incl. AUS)")
}

func TestRun_PathsFromConfigFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "data", "age_income_by_state.csv"),
		[]byte("State,AgeGroup,IncomeBracket,Count\nNT,85 years and over,\"$3,000-$3,499\",2\n"), 0644))

	cfgPath := filepath.Join(base, "auelect.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("paths:\n  base_dir: "+base+"\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfgPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	_, err := os.Stat(filepath.Join(base, "data", "age_income_binned.csv"))
	assert.NoError(t, err)
}

func TestRun_FileLoggingWithoutPath(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	base := t.TempDir()
	src := filepath.Join(base, "in.csv")
	dest := filepath.Join(base, "custom", "binned.csv")
	require.NoError(t, os.WriteFile(src, []byte("State,AgeGroup,IncomeBracket,Count\nSA,15-19 years,$1-$149,4\n"), 0644))
	t.Setenv("AUELECT_LOGGING_OUTPUT", "file")
	t.Setenv("AUELECT_PATHS_LOGS_DIR", filepath.Join(base, "logs"))
	t.Setenv("AUELECT_PATHS_AGE_INCOME_CSV", src)
	t.Setenv("AUELECT_PATHS_AGE_INCOME_BINNED_CSV", dest)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "State,AgeBin,IncomeBin,Count\r\n"+
		"SA,15-24,Negative/Nil to $649,4\r\n"+
		"AUS,15-24,Negative/Nil to $649,4\r\n", string(data))

	logs, err := os.ReadFile(filepath.Join(base, "logs", "agebin.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Age/income binning complete")
}

func TestRun_SourceNotFound(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "missing.csv")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-src", src, "-dest", filepath.Join(base, "out.csv")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "Source CSV not found: "+src+"\n", stderr.String())
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "agebin v")
}
