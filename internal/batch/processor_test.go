// internal/batch/processor_test.go - Unit tests for batch processing
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/internal/output"
	"github.com/valpere/geomkit/internal/source"
)

type recordingReporter struct {
	mu       sync.Mutex
	files    []string
	complete int
	failed   []error
}

func (r *recordingReporter) ReportFile(_ *Job, result *WorkResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, filepath.Base(result.Input))
}

func (r *recordingReporter) ReportJobComplete(*Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complete++
}

func (r *recordingReporter) ReportJobFailed(_ *Job, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, err)
}

func setup(t *testing.T, files map[string]string) (*config.Config, string, string) {
	t.Helper()
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	cfg.Output.Format = "wkt"
	cfg.Batch.Concurrency = 2

	in := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(data), 0o644))
	}
	return cfg, in, filepath.Join(t.TempDir(), "out")
}

func newJob(t *testing.T, cfg *config.Config, in, out string) *Job {
	t.Helper()
	jobCfg, err := NewJobConfig(cfg, in, out)
	require.NoError(t, err)
	return NewJob("test", jobCfg)
}

var inputs = map[string]string{
	"a.geojson":  `{"type":"Point","coordinates":[1,2]}`,
	"b.geojson":  `{"type":"LineString","coordinates":[[0,0],[1,0.01],[2,0]]}`,
	"c.geojson":  `{"type":"Point","coordinates":[1]}`,
	"readme.txt": `not geometry`,
}

func TestProcessCollectsFailures(t *testing.T) {
	cfg, in, out := setup(t, inputs)
	job := newJob(t, cfg, in, out)
	reporter := &recordingReporter{}

	err := NewProcessor(source.NewLoader(cfg, nil), reporter).Process(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.True(t, job.IsComplete())
	assert.NotNil(t, job.CompletedAt)
	assert.Equal(t, int64(3), job.Progress.TotalFiles.Load())
	assert.Equal(t, int64(3), job.Progress.ProcessedFiles.Load())
	assert.Equal(t, int64(2), job.Progress.SuccessFiles.Load())
	assert.Equal(t, int64(1), job.Progress.FailedFiles.Load())
	assert.Equal(t, int64(4), job.Progress.Points.Load())
	assert.Equal(t, 100.0, job.Progress.CalculateProgress())

	stats := job.Stats()
	assert.Equal(t, int64(3), stats.TotalDocuments)
	assert.Equal(t, int64(1), stats.FailedDocuments)
	assert.False(t, stats.EndTime.Before(stats.StartTime))

	errs := multierr.Errors(job.Error)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "c.geojson")
	assert.Equal(t, internal.ErrorCodeProcessing, internal.ErrorCodeOf(errs[0]))

	assert.ElementsMatch(t, []string{"a.geojson", "b.geojson", "c.geojson"}, reporter.files)
	assert.Equal(t, 1, reporter.complete)

	data, err := os.ReadFile(filepath.Join(out, "a.wkt"))
	require.NoError(t, err)
	assert.Equal(t, "POINT (1 2)\n", string(data))
	assert.NoFileExists(t, filepath.Join(out, "c.wkt"))

	require.Len(t, job.Results, 3)
	assert.Equal(t, filepath.Join(in, "a.geojson"), job.Results[0].Input)
	assert.Equal(t, filepath.Join(out, "a.wkt"), job.Results[0].Output)
}

func TestProcessSimplifies(t *testing.T) {
	cfg, in, out := setup(t, inputs)
	cfg.Geometry.Simplify = 0.1
	cfg.Batch.Pattern = "b.*"

	job := newJob(t, cfg, in, out)
	require.NoError(t, NewProcessor(source.NewLoader(cfg, nil), &recordingReporter{}).Process(context.Background(), job))

	data, err := os.ReadFile(filepath.Join(out, "b.wkt"))
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING (0 0, 2 0)\n", string(data))
}

func TestProcessFailOnError(t *testing.T) {
	cfg, in, out := setup(t, inputs)
	cfg.Batch.FailOnError = true
	cfg.Batch.Concurrency = 1

	job := newJob(t, cfg, in, out)
	reporter := &recordingReporter{}

	err := NewProcessor(source.NewLoader(cfg, nil), reporter).Process(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.geojson")

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, err, job.Error)
	assert.Len(t, reporter.failed, 1)
	assert.Zero(t, reporter.complete)
}

func TestProcessMissingInput(t *testing.T) {
	cfg, _, out := setup(t, nil)
	job := newJob(t, cfg, filepath.Join(t.TempDir(), "missing"), out)

	err := NewProcessor(source.NewLoader(cfg, nil), &recordingReporter{}).Process(context.Background(), job)
	require.Error(t, err)
	assert.Equal(t, internal.ErrorCodeFileSystem, internal.ErrorCodeOf(err))
	assert.Equal(t, JobStatusFailed, job.Status)
}

func TestProcessCancelled(t *testing.T) {
	cfg, in, out := setup(t, inputs)
	job := newJob(t, cfg, in, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, NewProcessor(source.NewLoader(cfg, nil), &recordingReporter{}).Process(ctx, job))
	assert.Equal(t, JobStatusCanceled, job.Status)
	assert.Equal(t, int64(3), job.Progress.FailedFiles.Load())
	for _, err := range multierr.Errors(job.Error) {
		assert.Equal(t, internal.ErrorCodeTimeout, internal.ErrorCodeOf(err))
	}
}

func TestNewJobConfig(t *testing.T) {
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	cfg.Output.Format = "yaml"
	cfg.Geometry.GeoHashPrecision = 6

	jobCfg, err := NewJobConfig(cfg, "in", "out")
	require.NoError(t, err)
	assert.Equal(t, output.FormatYAML, jobCfg.Output.Format)
	assert.Equal(t, uint(6), jobCfg.Output.Precision)
	assert.Equal(t, 5*time.Minute, jobCfg.Timeout)

	cfg.Output.Format = "svg"
	_, err = NewJobConfig(cfg, "in", "out")
	assert.Error(t, err)
}
