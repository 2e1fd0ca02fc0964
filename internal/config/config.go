package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "auelect/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration. An empty FilePath with file
// output is filled in by the command from Paths.LogsDir.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration.
// Relative paths are resolved against BaseDir, or the working directory when BaseDir is empty.
type PathsConfig struct {
	BaseDir            string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir            string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	RawDir             string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	LogsDir            string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
	TurnoutCSV         string `yaml:"turnout_csv" envconfig:"TURNOUT_CSV" validate:"required"`
	AgeIncomeCSV       string `yaml:"age_income_csv" envconfig:"AGE_INCOME_CSV" validate:"required"`
	AgeIncomeBinnedCSV string `yaml:"age_income_binned_csv" envconfig:"AGE_INCOME_BINNED_CSV" validate:"required"`
}

// ExportConfig controls output file variants
type ExportConfig struct {
	BOMPrefix bool `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
	XLSXCopy  bool `yaml:"xlsx_copy" envconfig:"XLSX_COPY"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter   string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load loads configuration from the first config file found and the environment
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom builds configuration from defaults, then the YAML file at filePath
// (skipped when empty), then environment variables. Later sources win.
func LoadFrom(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from "+filePath, err)
		}
	}

	// No default tags: envconfig only overwrites fields whose variables are set
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks struct tags and normalizes aliases
func (c *Config) validate() error {
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"auelect.yaml",
		"configs/auelect.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
		Paths: PathsConfig{
			DataDir:            DefaultDataDir,
			RawDir:             DefaultRawDir,
			LogsDir:            DefaultLogsDir,
			TurnoutCSV:         DefaultTurnoutCSV,
			AgeIncomeCSV:       DefaultAgeIncomeCSV,
			AgeIncomeBinnedCSV: DefaultAgeIncomeBinnedCSV,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
