package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"digsite/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths   PathConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// PathConfig holds the source files read by the report
type PathConfig struct {
	ArtifactsFile string
	LocationsFile string
	JournalFile   string
}

// ReportConfig holds output settings
type ReportConfig struct {
	PreviewRows int
}

// LoggingConfig holds slog settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	previewRows, err := getEnvInt("PREVIEW_ROWS", 5)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report configuration")
	}

	config := &Config{
		Paths: PathConfig{
			ArtifactsFile: getEnvOrDefault("ARTIFACTS_FILE", "artifacts.xlsx"),
			LocationsFile: getEnvOrDefault("LOCATIONS_FILE", "locations.tsv"),
			JournalFile:   getEnvOrDefault("JOURNAL_FILE", "journal.txt"),
		},
		Report: ReportConfig{
			PreviewRows: previewRows,
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "warn"),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Report.PreviewRows < 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must not be negative")
	}
	switch config.Logging.Format {
	case "text", "json":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("LOG_FORMAT must be text or json, got %q", config.Logging.Format))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}
