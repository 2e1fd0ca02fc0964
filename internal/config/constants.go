package config

import "auelect/pkg/contracts"

// Application constants
const (
	AppName    = "auelect"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. AUELECT_LOGGING_LEVEL
	EnvPrefix = "AUELECT"

	// File Paths (relative to the base directory)
	DefaultDataDir            = "data"
	DefaultRawDir             = "data/raw"
	DefaultLogsDir            = "logs"
	DefaultTurnoutCSV         = "data/turnout_by_state.csv"
	DefaultAgeIncomeCSV       = "data/age_income_by_state.csv"
	DefaultAgeIncomeBinnedCSV = "data/age_income_binned.csv"

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
)
