// cmd/root.go - Root command implementation
package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "geomkit",
	Short: "Read, inspect and convert 2D geometries",
	Long: `geomkit reads GeoJSON geometries, features and feature collections and
converts them to WKT, WKB, GeoJSON, YAML or an inspection report.

Data Sources:
- Local files, optionally gzip compressed
- Remote documents via HTTP/HTTPS
- Standard input ("-")

Features:
- Canonical WKT rendering with point counts and centers
- Affine transforms and Douglas-Peucker simplification
- Great-circle distances, ring circumference and geohashes
- Concurrent conversion of whole directories

Examples:
  # Convert a file to WKT
  geomkit convert roads.geojson --format wkt

  # Inspect a remote document
  geomkit inspect https://example.com/parcels.geojson

  # Convert a directory to YAML reports
  geomkit batch --input-dir ./in --output-dir ./out --format yaml

  # Encode a coordinate as a geohash
  geomkit geohash encode --x -5.6 --y 42.6 --precision 5`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Str("code", internal.ErrorCodeOf(err)).Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.geomkit.yaml)")

	// Source configuration flags
	rootCmd.PersistentFlags().String("source-type", "auto", "data source type (auto, file, http, stdin)")
	rootCmd.PersistentFlags().String("api-key", "", "API key for authentication (HTTP source)")

	// Output flags
	rootCmd.PersistentFlags().StringP("format", "f", "geojson", "output format (geojson, json, wkt, yaml, wkb)")
	rootCmd.PersistentFlags().Bool("pretty", true, "pretty print JSON output")
	rootCmd.PersistentFlags().Bool("compression", false, "compress output files")

	// Geometry flags
	rootCmd.PersistentFlags().Float64("simplify", 0, "Douglas-Peucker tolerance applied to lines and rings (0 disables)")
	rootCmd.PersistentFlags().Uint("precision", 12, "geohash precision for point reports")

	// Processing flags
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().Int("concurrency", 10, "number of concurrent conversions")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "request timeout (HTTP source)")
	rootCmd.PersistentFlags().Int("retries", 3, "number of retry attempts")

	// Bind flags to viper
	viper.BindPFlag("source.type", rootCmd.PersistentFlags().Lookup("source-type"))
	viper.BindPFlag("server.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output.pretty", rootCmd.PersistentFlags().Lookup("pretty"))
	viper.BindPFlag("output.compression", rootCmd.PersistentFlags().Lookup("compression"))
	viper.BindPFlag("geometry.simplify", rootCmd.PersistentFlags().Lookup("simplify"))
	viper.BindPFlag("geometry.geohash_precision", rootCmd.PersistentFlags().Lookup("precision"))
	viper.BindPFlag("logging.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("batch.concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
	viper.BindPFlag("server.timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("server.max_retries", rootCmd.PersistentFlags().Lookup("retries"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory and the working directory with name ".geomkit"
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".geomkit")
	}

	// Environment variables: GEOMKIT_OUTPUT_FORMAT overrides output.format
	viper.SetEnvPrefix("GEOMKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// loadConfig loads the configuration and configures logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		return nil, internal.NewError(internal.ErrorCodeConfig, "failed to configure logging", err)
	}

	return cfg, nil
}
