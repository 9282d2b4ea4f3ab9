// internal/config/config.go - Configuration management
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/geomkit/internal"
)

// Config represents the complete application configuration
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Server   ServerConfig   `mapstructure:"server"`
	Output   OutputConfig   `mapstructure:"output"`
	Geometry GeometryConfig `mapstructure:"geometry"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Network  NetworkConfig  `mapstructure:"network"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourceConfig determines where documents are read from
type SourceConfig struct {
	Type       string `mapstructure:"type"`
	Compressed bool   `mapstructure:"compressed"`
}

// ServerConfig contains settings for HTTP sources
type ServerConfig struct {
	APIKey     string            `mapstructure:"api_key"`
	Headers    map[string]string `mapstructure:"headers"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	MaxRetries int               `mapstructure:"max_retries"`
	RetryDelay time.Duration     `mapstructure:"retry_delay"`
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	Directory   string `mapstructure:"directory"`
	Filename    string `mapstructure:"filename"`
	Compression bool   `mapstructure:"compression"`
	Pretty      bool   `mapstructure:"pretty"`
	Stdout      bool   `mapstructure:"stdout"`
	Metadata    bool   `mapstructure:"metadata"`
	WKBHex      bool   `mapstructure:"wkb_hex"`
}

// GeometryConfig contains processing applied to every decoded geometry
type GeometryConfig struct {
	Simplify         float64 `mapstructure:"simplify"`
	GeoHashPrecision uint    `mapstructure:"geohash_precision"`
}

// BatchConfig contains batch processing configuration
type BatchConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Pattern     string        `mapstructure:"pattern"`
	Recursive   bool          `mapstructure:"recursive"`
	Timeout     time.Duration `mapstructure:"timeout"`
	FailOnError bool          `mapstructure:"fail_on_error"`
}

// NetworkConfig contains network-related configuration
type NetworkConfig struct {
	ProxyURL         string        `mapstructure:"proxy_url"`
	UserAgent        string        `mapstructure:"user_agent"`
	KeepAlive        time.Duration `mapstructure:"keep_alive"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	IdleConnTimeout  time.Duration `mapstructure:"idle_conn_timeout"`
	DisableKeepAlive bool          `mapstructure:"disable_keep_alive"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load loads configuration from the global viper instance
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration from v, filling in defaults first
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, internal.NewError(internal.ErrorCodeConfig, "failed to unmarshal configuration", err)
	}

	if err := Validate(&config); err != nil {
		return nil, internal.NewError(internal.ErrorCodeConfig, "configuration validation failed", err)
	}

	return &config, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.type", "auto")
	v.SetDefault("source.compressed", false)

	// Server defaults
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.max_retries", 3)
	v.SetDefault("server.retry_delay", time.Second)

	// Output defaults
	v.SetDefault("output.format", "geojson")
	v.SetDefault("output.pretty", true)
	v.SetDefault("output.compression", false)
	v.SetDefault("output.stdout", true)
	v.SetDefault("output.metadata", false)
	v.SetDefault("output.wkb_hex", true)

	// Geometry defaults
	v.SetDefault("geometry.simplify", 0.0)
	v.SetDefault("geometry.geohash_precision", 12)

	// Batch defaults
	v.SetDefault("batch.concurrency", 10)
	v.SetDefault("batch.pattern", "*.geojson")
	v.SetDefault("batch.recursive", false)
	v.SetDefault("batch.timeout", 5*time.Minute)
	v.SetDefault("batch.fail_on_error", false)

	// Network defaults
	v.SetDefault("network.user_agent", "geomkit/1.0")
	v.SetDefault("network.keep_alive", 30*time.Second)
	v.SetDefault("network.max_idle_conns", 100)
	v.SetDefault("network.idle_conn_timeout", 90*time.Second)
	v.SetDefault("network.disable_keep_alive", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.verbose", false)
}

// DetermineSourceType resolves the source type for location. With type
// "auto", "-" means stdin, http(s) URLs mean HTTP and anything else a file.
func (c *Config) DetermineSourceType(location string) internal.SourceType {
	switch c.Source.Type {
	case "http":
		return internal.SourceTypeHTTP
	case "file":
		return internal.SourceTypeFile
	case "stdin":
		return internal.SourceTypeStdin
	}

	lower := strings.ToLower(location)
	switch {
	case location == "" || location == "-":
		return internal.SourceTypeStdin
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return internal.SourceTypeHTTP
	default:
		return internal.SourceTypeFile
	}
}
