// internal/batch/processor.go - Batch processing implementation
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/output"
	"github.com/valpere/geomkit/internal/source"
)

// ProgressReporter receives job events
type ProgressReporter interface {
	ReportFile(job *Job, result *WorkResult)
	ReportJobComplete(job *Job)
	ReportJobFailed(job *Job, err error)
}

// Processor converts every matching file of a job on a bounded worker pool
type Processor struct {
	loader   *source.Loader
	reporter ProgressReporter
}

// NewProcessor creates a batch processor. A nil reporter logs progress.
func NewProcessor(loader *source.Loader, reporter ProgressReporter) *Processor {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Processor{
		loader:   loader,
		reporter: reporter,
	}
}

// Process runs job to completion. Failed files are collected in job.Error and
// do not stop the job unless FailOnError is set, in which case the first
// failure cancels the remaining files and is returned.
func (bp *Processor) Process(ctx context.Context, job *Job) error {
	cfg := job.Config

	job.mu.Lock()
	job.Status = JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	job.Progress.StartTime = now
	job.mu.Unlock()

	files, err := source.ListFiles(cfg.InputDir, cfg.Pattern, cfg.Recursive)
	if err != nil {
		bp.completeJobWithError(job, err)
		return err
	}
	job.Progress.TotalFiles.Store(int64(len(files)))

	writer, err := output.NewMultiFileWriter(cfg.Output, cfg.OutputDir)
	if err != nil {
		err = internal.NewError(internal.ErrorCodeFileSystem, "failed to prepare output directory", err)
		bp.completeJobWithError(job, err)
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log.Info().
		Str("job", job.ID).
		Str("input", cfg.InputDir).
		Str("output", cfg.OutputDir).
		Int("files", len(files)).
		Int("concurrency", cfg.Concurrency).
		Msg("batch started")

	results := make([]*WorkResult, len(files))
	p := pool.New().WithMaxGoroutines(max(cfg.Concurrency, 1)).WithContext(ctx)
	if cfg.FailOnError {
		p = p.WithCancelOnError().WithFirstError()
	}

	for i, path := range files {
		p.Go(func(ctx context.Context) error {
			result := bp.processFile(ctx, writer, path, cfg.Simplify)
			results[i] = result
			bp.record(job, result)
			if result.Error != nil && cfg.FailOnError {
				return fmt.Errorf("%s: %w", path, result.Error)
			}
			return nil
		})
	}
	poolErr := p.Wait()

	var errs error
	for _, result := range results {
		if result.Error != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", result.Input, result.Error))
		}
	}

	job.mu.Lock()
	job.Results = results
	job.mu.Unlock()

	if cfg.FailOnError && poolErr != nil {
		bp.completeJobWithError(job, poolErr)
		return poolErr
	}

	status := JobStatusCompleted
	if errors.Is(ctx.Err(), context.Canceled) {
		status = JobStatusCanceled
	}
	bp.completeJob(job, status, errs)
	return nil
}

// processFile loads, simplifies and writes one file
func (bp *Processor) processFile(ctx context.Context, writer *output.MultiFileWriter, path string, simplify float64) *WorkResult {
	start := time.Now()
	result := &WorkResult{Input: path}
	defer func() { result.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		result.Error = internal.NewError(internal.ErrorCodeTimeout, "batch cancelled", err)
		return result
	}

	doc, err := bp.loader.Load(ctx, path)
	if err != nil {
		result.Error = err
		return result
	}

	doc, err = doc.Simplify(simplify)
	if err != nil {
		result.Error = internal.NewError(internal.ErrorCodeProcessing, "simplification failed", err)
		return result
	}

	out, err := writer.WriteFile(doc)
	if err != nil {
		result.Error = internal.NewError(internal.ErrorCodeFileSystem, "write failed", err)
		return result
	}

	result.Output = out
	result.Features = len(doc.Features)
	result.Points = doc.PointCount()
	return result
}

// record updates the job counters for a finished file
func (bp *Processor) record(job *Job, result *WorkResult) {
	job.Progress.ProcessedFiles.Inc()
	if result.Error != nil {
		job.Progress.FailedFiles.Inc()
	} else {
		job.Progress.SuccessFiles.Inc()
		job.Progress.Features.Add(int64(result.Features))
		job.Progress.Points.Add(int64(result.Points))
	}
	bp.reporter.ReportFile(job, result)
}

// completeJob marks the job as finished with status, keeping per-file
// failures in job.Error
func (bp *Processor) completeJob(job *Job, status JobStatus, errs error) {
	job.mu.Lock()
	job.Status = status
	job.Error = errs
	now := time.Now()
	job.CompletedAt = &now
	job.mu.Unlock()

	bp.reporter.ReportJobComplete(job)
}

// completeJobWithError marks the job as failed
func (bp *Processor) completeJobWithError(job *Job, err error) {
	job.mu.Lock()
	job.Status = JobStatusFailed
	job.Error = err
	now := time.Now()
	job.CompletedAt = &now
	job.mu.Unlock()

	bp.reporter.ReportJobFailed(job, err)
}

// LogReporter reports job events through the global zerolog logger
type LogReporter struct{}

// ReportFile logs a finished file
func (LogReporter) ReportFile(job *Job, result *WorkResult) {
	if result.Error != nil {
		log.Warn().Str("job", job.ID).Str("input", result.Input).Err(result.Error).Msg("file failed")
		return
	}
	log.Debug().
		Str("job", job.ID).
		Str("input", result.Input).
		Str("output", result.Output).
		Int("features", result.Features).
		Dur("duration", result.Duration).
		Float64("progress", job.Progress.CalculateProgress()).
		Msg("file converted")
}

// ReportJobComplete logs the job summary
func (LogReporter) ReportJobComplete(job *Job) {
	log.Info().
		Str("job", job.ID).
		Int64("files", job.Progress.TotalFiles.Load()).
		Int64("succeeded", job.Progress.SuccessFiles.Load()).
		Int64("failed", job.Progress.FailedFiles.Load()).
		Int64("features", job.Progress.Features.Load()).
		Float64("files_per_second", job.Progress.Throughput()).
		Msg("batch completed")
}

// ReportJobFailed logs the error that stopped the job
func (LogReporter) ReportJobFailed(job *Job, err error) {
	log.Error().Str("job", job.ID).Err(err).Msg("batch failed")
}
