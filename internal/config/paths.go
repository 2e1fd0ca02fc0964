package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system paths used by both tools
type Paths struct {
	BaseDir            string
	DataDir            string
	RawDir             string
	LogsDir            string
	TurnoutCSV         string
	AgeIncomeCSV       string
	AgeIncomeBinnedCSV string
}

// Resolve turns the configured paths into a Paths value
func (c PathsConfig) Resolve() *Paths {
	return &Paths{
		BaseDir:            c.BaseDir,
		DataDir:            c.join(c.DataDir),
		RawDir:             c.join(c.RawDir),
		LogsDir:            c.join(c.LogsDir),
		TurnoutCSV:         c.join(c.TurnoutCSV),
		AgeIncomeCSV:       c.join(c.AgeIncomeCSV),
		AgeIncomeBinnedCSV: c.join(c.AgeIncomeBinnedCSV),
	}
}

func (c PathsConfig) join(p string) string {
	if c.BaseDir == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.BaseDir, p)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	wd, _ := os.Getwd()

	logger.Debug("Path resolution summary",
		slog.String("working_dir", wd),
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("raw", p.RawDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("turnout_csv", p.TurnoutCSV),
			slog.String("age_income_csv", p.AgeIncomeCSV),
			slog.String("age_income_binned_csv", p.AgeIncomeBinnedCSV),
		))
}
