package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVWriter(t *testing.T) {
	writer := NewCSVWriter(nil)

	assert.NotNil(t, writer)
	assert.NotNil(t, writer.logger)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		validate func(t *testing.T, content []byte)
	}{
		{
			name: "basic write with headers",
			options: WriteOptions{
				Headers: []string{"Year", "State", "TurnoutPct"},
				Records: [][]string{
					{"2016", "NSW", "91.5"},
					{"2016", "VIC", "91.2"},
				},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "Year,State,TurnoutPct\r\n2016,NSW,91.5\r\n2016,VIC,91.2\r\n", string(content))
			},
		},
		{
			name: "header only",
			options: WriteOptions{
				Headers: []string{"Year", "State", "TurnoutPct"},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "Year,State,TurnoutPct\r\n", string(content))
			},
		},
		{
			name: "write with BOM prefix",
			options: WriteOptions{
				Headers:   []string{"State", "Count"},
				Records:   [][]string{{"NSW", "10"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
				assert.Equal(t, "State,Count\r\nNSW,10\r\n", string(content[3:]))
			},
		},
		{
			name: "fields needing quotes",
			options: WriteOptions{
				Headers: []string{"State", "AgeBin", "IncomeBin", "Count"},
				Records: [][]string{{"NSW", "15-24", "$650-$1,499", "7"}},
			},
			validate: func(t *testing.T, content []byte) {
				lines := strings.Split(strings.TrimSpace(string(content)), "\r\n")
				assert.Equal(t, `NSW,15-24,"$650-$1,499",7`, lines[1])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "file.csv")

			require.NoError(t, NewCSVWriter(nil).WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestCSVWriter_TruncatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteSimpleCSV(path, []string{"A"}, [][]string{{"1"}, {"2"}, {"3"}}, false))
	require.NoError(t, w.WriteSimpleCSV(path, []string{"A"}, [][]string{{"9"}}, false))
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"A"}, Records: [][]string{{"10"}}, Append: true}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\r\n9\r\n10\r\n", string(content))
}

func TestCSVWriter_Idempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(nil)
	records := [][]string{{"NSW", "1"}, {"AUS", "1"}}

	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, w.WriteSimpleCSV(first, []string{"State", "Count"}, records, false))
	require.NoError(t, w.WriteSimpleCSV(second, []string{"State", "Count"}, records, false))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCSVWriter_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil).WriteSimpleCSV(filepath.Join(blocker, "out.csv"), []string{"A"}, nil, false)
	assert.Error(t, err)
}
