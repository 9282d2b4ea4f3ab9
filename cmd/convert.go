// cmd/convert.go - Single document conversion command
package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/internal/output"
	"github.com/valpere/geomkit/internal/source"
	"github.com/valpere/geomkit/pkg/geometry"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file | url | -]",
	Short: "Convert a single geometry document",
	Long: `Convert a single GeoJSON geometry, feature or feature collection to the
selected output format.

The document is read from the given path, URL or standard input ("-", the
default). Transforms are applied to every geometry in the order translate,
rotate, scale; rotation and scaling pivot on each geometry's own center.

Examples:
  # Convert a file to WKT on stdout
  geomkit convert roads.geojson --format wkt

  # Convert a remote document to a compressed GeoJSON file
  geomkit convert --url "https://example.com/roads.geojson" --output roads.geojson --compression

  # Shift and simplify before writing WKB hex
  cat roads.geojson | geomkit convert --translate 10,0 --simplify 0.001 --format wkb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Source flags
	convertCmd.Flags().String("file", "", "path to the input document")
	convertCmd.Flags().String("url", "", "URL of the input document")

	// Output flags
	convertCmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")
	convertCmd.Flags().Bool("metadata", false, "include document metadata in output")

	addTransformFlags(convertCmd.Flags())

	convertCmd.MarkFlagsMutuallyExclusive("file", "url")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	location, err := inputLocation(cmd, args)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	metadata, _ := cmd.Flags().GetBool("metadata")

	transform, err := transformFromFlags(cmd.Flags())
	if err != nil {
		return internal.NewError(internal.ErrorCodeValidation, "invalid transform", err)
	}

	doc, err := loadDocument(cmd, cfg, location)
	if err != nil {
		return err
	}

	if transform != nil {
		doc, err = doc.Map(transform)
		if err != nil {
			return internal.NewError(internal.ErrorCodeProcessing, "transform failed", err)
		}
	}

	writerConfig, err := writerConfigFrom(cfg)
	if err != nil {
		return err
	}
	writerConfig.Metadata = metadata

	var writer output.Writer
	if outputPath == "" || outputPath == "-" {
		writer, err = output.NewStreamWriter(writerConfig, cmd.OutOrStdout())
	} else {
		writer, err = output.NewFileWriter(writerConfig, outputPath)
	}
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}
	defer writer.Close()

	if err := writer.Write(doc); err != nil {
		return internal.NewError(internal.ErrorCodeProcessing, "failed to write output", err)
	}

	log.Debug().
		Str("source", location).
		Str("format", writerConfig.Format.String()).
		Int("features", len(doc.Features)).
		Int("points", doc.PointCount()).
		Msg("document converted")

	return nil
}

// inputLocation picks the document location from flags or the positional argument
func inputLocation(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")

	var candidates []string
	for _, s := range []string{file, url} {
		if s != "" {
			candidates = append(candidates, s)
		}
	}
	if len(args) == 1 {
		candidates = append(candidates, args[0])
	}

	switch len(candidates) {
	case 0:
		return "-", nil
	case 1:
		return candidates[0], nil
	default:
		return "", internal.NewError(internal.ErrorCodeValidation, "specify a single input: argument, --file or --url", nil)
	}
}

// loadDocument reads location and applies the configured simplification
func loadDocument(cmd *cobra.Command, cfg *config.Config, location string) (*source.Document, error) {
	loader := source.NewLoader(cfg, nil).WithStdin(cmd.InOrStdin())

	doc, err := loader.Load(cmd.Context(), location)
	if err != nil {
		return nil, err
	}

	doc, err = doc.Simplify(cfg.Geometry.Simplify)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeProcessing, "simplification failed", err)
	}
	return doc, nil
}

// writerConfigFrom builds the writer settings from configuration
func writerConfigFrom(cfg *config.Config) (*output.WriterConfig, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeValidation, "invalid output format", err)
	}
	return &output.WriterConfig{
		Format:      format,
		Pretty:      cfg.Output.Pretty,
		Compression: cfg.Output.Compression,
		Metadata:    cfg.Output.Metadata,
		WKBHex:      cfg.Output.WKBHex,
		Precision:   cfg.Geometry.GeoHashPrecision,
	}, nil
}

// addTransformFlags registers the affine transform flags on flags
func addTransformFlags(flags *pflag.FlagSet) {
	flags.String("translate", "", "translate by 'dx,dy'")
	flags.Float64("rotate", 0, "rotate by degrees around each geometry's center")
	flags.String("scale", "", "scale by 'sx,sy' around each geometry's center")
}

// transformFromFlags composes the requested affine transforms, or returns nil
// when none was requested
func transformFromFlags(flags *pflag.FlagSet) (func(geometry.Geometry) (geometry.Geometry, error), error) {
	translate, _ := flags.GetString("translate")
	degrees, _ := flags.GetFloat64("rotate")
	scale, _ := flags.GetString("scale")

	var steps []func(geometry.Geometry) geometry.Geometry

	if translate != "" {
		dx, dy, err := parsePair(translate)
		if err != nil {
			return nil, fmt.Errorf("--translate: %w", err)
		}
		steps = append(steps, func(g geometry.Geometry) geometry.Geometry {
			return geometry.Translate(g, dx, dy)
		})
	}

	if degrees != 0 {
		steps = append(steps, func(g geometry.Geometry) geometry.Geometry {
			return geometry.RotateAboutCenter(g, degrees)
		})
	}

	if scale != "" {
		sx, sy, err := parsePair(scale)
		if err != nil {
			return nil, fmt.Errorf("--scale: %w", err)
		}
		steps = append(steps, func(g geometry.Geometry) geometry.Geometry {
			return geometry.ScaleAboutCenter(g, sx, sy)
		})
	}

	if len(steps) == 0 {
		return nil, nil
	}

	return func(g geometry.Geometry) (geometry.Geometry, error) {
		for _, step := range steps {
			g = step(g)
		}
		return g, nil
	}, nil
}

// parsePair parses "a,b" into two finite numbers
func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two comma-separated numbers, got %q", s)
	}

	values := make([]float64, 2)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("invalid number: %s", part)
		}
		values[i] = v
	}
	return values[0], values[1], nil
}
