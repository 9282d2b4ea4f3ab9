// cmd/inspect.go - Document inspection command
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/geomkit/internal/output"
	"github.com/valpere/geomkit/pkg/codec"
	"github.com/valpere/geomkit/pkg/geometry"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file | url | -]",
	Short: "Summarise the geometries of a document",
	Long: `Print one line per feature with its type, point count, center, bounding box
and the geohash (points) or circumference (rings and polygons).

Examples:
  # Inspect a local file
  geomkit inspect parcels.geojson

  # Full report as JSON, WKT included
  geomkit inspect parcels.geojson --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "print the full report as JSON")
	inspectCmd.Flags().Bool("wkt", false, "include WKT in the table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	location := "-"
	if len(args) == 1 {
		location = args[0]
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	withWKT, _ := cmd.Flags().GetBool("wkt")

	doc, err := loadDocument(cmd, cfg, location)
	if err != nil {
		return err
	}

	report, err := output.NewReport(doc, codec.Default(), cfg.Geometry.GeoHashPrecision)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	return printReport(cmd.OutOrStdout(), report, withWKT)
}

// printReport renders report as an aligned table
func printReport(w io.Writer, report *output.Report, withWKT bool) error {
	fmt.Fprintf(w, "Source: %s (%s, %d features)\n\n", report.Source, report.Kind, len(report.Features))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "#\tTYPE\tPOINTS\tCENTER\tBBOX\tDETAIL"
	if withWKT {
		header += "\tWKT"
	}
	fmt.Fprintln(tw, header)

	for i, fr := range report.Features {
		row := fmt.Sprintf("%d\t%s\t%d\t%s\t%s\t%s", i, fr.Type, fr.PointCount, centerText(fr.Center), bboxText(fr.BBox), detailText(fr))
		if withWKT {
			row += "\t" + fr.WKT
		}
		fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

func centerText(p *geometry.Point) string {
	if p == nil {
		return "-"
	}
	return geometry.FormatCoordinate(p.X) + " " + geometry.FormatCoordinate(p.Y)
}

func bboxText(bbox []float64) string {
	if len(bbox) == 0 {
		return "-"
	}
	parts := make([]string, len(bbox))
	for i, v := range bbox {
		parts[i] = geometry.FormatCoordinate(v)
	}
	return strings.Join(parts, ",")
}

func detailText(fr *output.FeatureReport) string {
	switch {
	case fr.GeoHash != "":
		return "geohash=" + fr.GeoHash
	case fr.CircumferenceKm > 0:
		return "circumference=" + strconv.FormatFloat(fr.CircumferenceKm, 'f', 3, 64) + "km"
	default:
		return "-"
	}
}
