// cmd/batch.go - Batch processing command
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/valpere/geomkit/internal/batch"
	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/internal/source"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every geometry document in a directory",
	Long: `Convert every document in an input directory whose file name matches a
pattern, writing one output file per input into the output directory.

Files are processed concurrently. A failing file is reported and the rest of
the batch continues, unless --fail-on-error is given.

Examples:
  # Convert all GeoJSON files to WKT
  geomkit batch --input-dir ./data --output-dir ./out --format wkt

  # Walk subdirectories, simplify and compress
  geomkit batch --input-dir ./data --output-dir ./out --recursive --simplify 0.0001 --compression

  # Stop at the first invalid document
  geomkit batch --input-dir ./data --output-dir ./out --pattern "*.json" --fail-on-error`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("input-dir", "", "directory to read documents from")
	batchCmd.Flags().String("output-dir", "./output", "directory to write converted documents to")
	batchCmd.Flags().String("pattern", "", "file name pattern (default from config: *.geojson)")
	batchCmd.Flags().Bool("recursive", false, "descend into subdirectories")
	batchCmd.Flags().Bool("fail-on-error", false, "stop processing on first error")
	batchCmd.Flags().Bool("metadata", false, "include document metadata in output")

	_ = batchCmd.MarkFlagRequired("input-dir")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if cmd.Flags().Changed("pattern") {
		cfg.Batch.Pattern, _ = cmd.Flags().GetString("pattern")
	}
	if cmd.Flags().Changed("recursive") {
		cfg.Batch.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if cmd.Flags().Changed("fail-on-error") {
		cfg.Batch.FailOnError, _ = cmd.Flags().GetBool("fail-on-error")
	}
	if cmd.Flags().Changed("metadata") {
		cfg.Output.Metadata, _ = cmd.Flags().GetBool("metadata")
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	jobConfig, err := batch.NewJobConfig(cfg, inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("invalid batch configuration: %w", err)
	}

	processor := batch.NewProcessor(source.NewLoader(cfg, nil), nil)
	job := batch.NewJob(generateJobID(), jobConfig)

	if err := processor.Process(cmd.Context(), job); err != nil {
		printSummary(cmd.ErrOrStderr(), job)
		return fmt.Errorf("batch processing failed: %w", err)
	}

	printSummary(cmd.OutOrStdout(), job)

	if job.Error != nil {
		for _, e := range multierr.Errors(job.Error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", e)
		}
	}

	return nil
}

// printSummary writes the outcome of job to w
func printSummary(w io.Writer, job *batch.Job) {
	progress := job.Progress
	elapsed := job.Stats().Duration().Round(time.Millisecond)

	fmt.Fprintf(w, "Job %s %s\n", job.ID, job.Status)
	fmt.Fprintf(w, "Processed: %d of %d files\n", progress.ProcessedFiles.Load(), progress.TotalFiles.Load())
	fmt.Fprintf(w, "Success: %d, Failed: %d\n", progress.SuccessFiles.Load(), progress.FailedFiles.Load())
	fmt.Fprintf(w, "Features: %d, Points: %d\n", progress.Features.Load(), progress.Points.Load())
	fmt.Fprintf(w, "Duration: %v\n", elapsed)
	fmt.Fprintf(w, "Throughput: %.2f files/second\n", progress.Throughput())
}

// generateJobID creates a unique job identifier
func generateJobID() string {
	return fmt.Sprintf("batch-%d", time.Now().UnixNano())
}
