// cmd/geohash.go - Geohash encode and decode commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/pkg/geometry"
)

// geohashCmd groups the geohash subcommands
var geohashCmd = &cobra.Command{
	Use:   "geohash",
	Short: "Encode and decode geohashes",
}

var geohashEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a point as a geohash",
	Long: `Encode the point (x, y), longitude and latitude, as a geohash.

Examples:
  geomkit geohash encode --x -5.6 --y 42.6 --precision 5`,
	Args: cobra.NoArgs,
	RunE: runGeohashEncode,
}

var geohashDecodeCmd = &cobra.Command{
	Use:   "decode HASH",
	Short: "Decode a geohash into the center of its cell",
	Long: `Decode a geohash into the point at the center of the cell it denotes.

Examples:
  geomkit geohash decode ezs42
  geomkit geohash decode ezs42 --wkt`,
	Args: cobra.ExactArgs(1),
	RunE: runGeohashDecode,
}

func init() {
	rootCmd.AddCommand(geohashCmd)
	geohashCmd.AddCommand(geohashEncodeCmd, geohashDecodeCmd)

	geohashEncodeCmd.Flags().Float64("x", 0, "longitude")
	geohashEncodeCmd.Flags().Float64("y", 0, "latitude")
	_ = geohashEncodeCmd.MarkFlagRequired("x")
	_ = geohashEncodeCmd.MarkFlagRequired("y")

	geohashDecodeCmd.Flags().Bool("wkt", false, "print the point as WKT")
}

func runGeohashEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	x, _ := cmd.Flags().GetFloat64("x")
	y, _ := cmd.Flags().GetFloat64("y")
	if x < -180 || x > 180 || y < -90 || y > 90 {
		return internal.NewError(internal.ErrorCodeValidation,
			fmt.Sprintf("coordinate out of range: x=%v y=%v", x, y), nil)
	}

	fmt.Fprintln(cmd.OutOrStdout(), geometry.XY(x, y).GeoHash(cfg.Geometry.GeoHashPrecision))
	return nil
}

func runGeohashDecode(cmd *cobra.Command, args []string) error {
	asWKT, _ := cmd.Flags().GetBool("wkt")

	p, err := geometry.PointFromGeoHash(args[0])
	if err != nil {
		return internal.NewError(internal.ErrorCodeValidation, "invalid geohash", err)
	}

	if asWKT {
		fmt.Fprintln(cmd.OutOrStdout(), p.WKT())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), geometry.FormatCoordinate(p.X), geometry.FormatCoordinate(p.Y))
	}
	return nil
}
