// internal/config/validation.go - Configuration validation
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Supported option values
var (
	SourceTypes   = []string{"auto", "file", "http", "stdin"}
	OutputFormats = []string{"geojson", "json", "wkt", "yaml", "wkb"}
	LogLevels     = []string{"debug", "info", "warn", "error", "fatal", "panic"}
	LogFormats    = []string{"text", "json"}
	LogOutputs    = []string{"stdout", "stderr"}
)

// Validate validates the configuration structure and values
func Validate(config *Config) error {
	if err := validateSource(&config.Source); err != nil {
		return fmt.Errorf("source configuration invalid: %w", err)
	}

	if err := validateServer(&config.Server); err != nil {
		return fmt.Errorf("server configuration invalid: %w", err)
	}

	if err := validateOutput(&config.Output); err != nil {
		return fmt.Errorf("output configuration invalid: %w", err)
	}

	if err := validateGeometry(&config.Geometry); err != nil {
		return fmt.Errorf("geometry configuration invalid: %w", err)
	}

	if err := validateBatch(&config.Batch); err != nil {
		return fmt.Errorf("batch configuration invalid: %w", err)
	}

	if err := validateNetwork(&config.Network); err != nil {
		return fmt.Errorf("network configuration invalid: %w", err)
	}

	if err := validateLogging(&config.Logging); err != nil {
		return fmt.Errorf("logging configuration invalid: %w", err)
	}

	return nil
}

func validateSource(config *SourceConfig) error {
	if !contains(SourceTypes, config.Type) {
		return fmt.Errorf("invalid type: %s, must be one of %v", config.Type, SourceTypes)
	}
	return nil
}

// validateServer validates HTTP source parameters
func validateServer(config *ServerConfig) error {
	if config.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if config.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative")
	}

	return nil
}

// validateOutput validates output configuration parameters
func validateOutput(config *OutputConfig) error {
	if !contains(OutputFormats, config.Format) {
		return fmt.Errorf("invalid format: %s, must be one of %v", config.Format, OutputFormats)
	}

	if !config.Stdout && config.Directory == "" && config.Filename == "" {
		return fmt.Errorf("directory or filename is required when not using stdout")
	}

	return nil
}

func validateGeometry(config *GeometryConfig) error {
	if config.Simplify < 0 {
		return fmt.Errorf("simplify must be non-negative")
	}

	if config.GeoHashPrecision < 1 || config.GeoHashPrecision > 12 {
		return fmt.Errorf("geohash_precision must be between 1 and 12")
	}

	return nil
}

// validateBatch validates batch processing configuration parameters
func validateBatch(config *BatchConfig) error {
	if config.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}

	if config.Concurrency > 1000 {
		return fmt.Errorf("concurrency must not exceed 1000")
	}

	if config.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}

	if _, err := filepath.Match(config.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", config.Pattern, err)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

// validateNetwork validates network configuration parameters
func validateNetwork(config *NetworkConfig) error {
	if config.ProxyURL != "" {
		if _, err := url.Parse(config.ProxyURL); err != nil {
			return fmt.Errorf("invalid proxy_url: %w", err)
		}
	}

	if config.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must be non-negative")
	}

	if config.UserAgent == "" {
		return fmt.Errorf("user_agent cannot be empty")
	}

	if config.KeepAlive < 0 {
		return fmt.Errorf("keep_alive must be non-negative")
	}

	if config.IdleConnTimeout < 0 {
		return fmt.Errorf("idle_conn_timeout must be non-negative")
	}

	return nil
}

// validateLogging validates logging configuration parameters
func validateLogging(config *LoggingConfig) error {
	if !contains(LogLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of %v", config.Level, LogLevels)
	}

	if !contains(LogFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of %v", config.Format, LogFormats)
	}

	if !contains(LogOutputs, config.Output) {
		return fmt.Errorf("invalid log output: %s, must be one of %v", config.Output, LogOutputs)
	}

	return nil
}

// contains checks if a string slice contains a specific string (case-insensitive)
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
