// Package config provides configuration management for the auelect tools.
// It loads settings from defaults, an optional YAML file and the environment,
// validates them, and resolves the data paths both commands read and write.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default values (reproduce data/raw, data/turnout_by_state.csv, ...)
//	2. YAML file: $AUELECT_CONFIG_FILE, auelect.yaml or configs/auelect.yaml
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern AUELECT_<SECTION>_<FIELD>:
//
//	AUELECT_LOGGING_LEVEL=debug
//	AUELECT_LOGGING_OUTPUT=both
//	AUELECT_PATHS_BASE_DIR=/srv/elections
//	AUELECT_EXPORT_XLSX_COPY=true
//	AUELECT_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/auelect.prom
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := cfg.Paths.Resolve()
package config
