// Package config provides configuration loading and path resolution for the
// survey exporter.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML file named by SURVEY_CONFIG_FILE, or config.yaml when present
//  3. Default values (lowest priority)
//
// With no file and no variables the exporter reads data.json and writes under
// data/csv, which is the fixed layout the tool has always produced.
//
// # Environment Variables
//
// All environment variables follow the pattern SURVEY_<SECTION>_<KEY>:
//
//	SURVEY_PATHS_BASE_DIR=/srv/survey
//	SURVEY_PATHS_INPUT_FILE=data.json
//	SURVEY_PATHS_OUTPUT_DIR=data/csv
//	SURVEY_OUTPUT_BOM=true
//	SURVEY_OUTPUT_WORKBOOK=true
//	SURVEY_LOGGING_LEVEL=debug
//	SURVEY_TELEMETRY_TRACE_EXPORTER=stdout
//	SURVEY_TELEMETRY_METRICS_FILE=metrics.prom
//
// # Path Management
//
// Paths resolves every configured location against the base directory:
//
//	paths, err := config.NewPaths(cfg)
//	numeric := paths.GetReportPath("BE")     // <output>/be.csv
//	text := paths.GetTextReportPath("BE")    // <output>/text/be_text.csv
package config
