// internal/batch/types.go - Batch processing types
package batch

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
	"github.com/valpere/geomkit/internal/output"
)

// Job represents a batch conversion of every matching file in a directory
type Job struct {
	ID          string        `json:"id"`
	Config      *JobConfig    `json:"config"`
	Status      JobStatus     `json:"status"`
	Progress    *JobProgress  `json:"progress"`
	Results     []*WorkResult `json:"results"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Error       error         `json:"-"`

	mu sync.Mutex
}

// JobConfig contains configuration for a batch processing job
type JobConfig struct {
	InputDir    string               `json:"input_dir"`
	OutputDir   string               `json:"output_dir"`
	Pattern     string               `json:"pattern"`
	Recursive   bool                 `json:"recursive"`
	Concurrency int                  `json:"concurrency"`
	Timeout     time.Duration        `json:"timeout"`
	FailOnError bool                 `json:"fail_on_error"`
	Simplify    float64              `json:"simplify"`
	Output      *output.WriterConfig `json:"output"`
}

// JobStatus represents the current status of a batch job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// JobProgress tracks the progress of a batch job. Counters are updated by
// concurrent workers.
type JobProgress struct {
	TotalFiles     atomic.Int64 `json:"total_files"`
	ProcessedFiles atomic.Int64 `json:"processed_files"`
	SuccessFiles   atomic.Int64 `json:"success_files"`
	FailedFiles    atomic.Int64 `json:"failed_files"`
	Features       atomic.Int64 `json:"features"`
	Points         atomic.Int64 `json:"points"`
	StartTime      time.Time    `json:"start_time"`
}

// WorkResult represents the outcome of converting one file
type WorkResult struct {
	Input    string        `json:"input"`
	Output   string        `json:"output,omitempty"`
	Features int           `json:"features"`
	Points   int           `json:"points"`
	Duration time.Duration `json:"duration"`
	Error    error         `json:"-"`
}

// NewJob creates a new batch processing job
func NewJob(id string, cfg *JobConfig) *Job {
	return &Job{
		ID:        id,
		Config:    cfg,
		Status:    JobStatusPending,
		Progress:  &JobProgress{},
		CreatedAt: time.Now(),
	}
}

// NewJobConfig builds a job configuration from the application configuration
func NewJobConfig(cfg *config.Config, inputDir, outputDir string) (*JobConfig, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &JobConfig{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Pattern:     cfg.Batch.Pattern,
		Recursive:   cfg.Batch.Recursive,
		Concurrency: cfg.Batch.Concurrency,
		Timeout:     cfg.Batch.Timeout,
		FailOnError: cfg.Batch.FailOnError,
		Simplify:    cfg.Geometry.Simplify,
		Output: &output.WriterConfig{
			Format:      format,
			Pretty:      cfg.Output.Pretty,
			Compression: cfg.Output.Compression,
			Metadata:    cfg.Output.Metadata,
			WKBHex:      cfg.Output.WKBHex,
			Precision:   cfg.Geometry.GeoHashPrecision,
		},
	}, nil
}

// IsComplete returns true if the job has finished (successfully or with error)
func (j *Job) IsComplete() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed || j.Status == JobStatusCanceled
}

// IsRunning returns true if the job is currently being processed
func (j *Job) IsRunning() bool {
	return j.Status == JobStatusRunning
}

// Stats snapshots the job counters
func (j *Job) Stats() internal.ProcessingStats {
	j.mu.Lock()
	defer j.mu.Unlock()

	stats := internal.ProcessingStats{
		TotalDocuments:     j.Progress.TotalFiles.Load(),
		ProcessedDocuments: j.Progress.ProcessedFiles.Load(),
		FailedDocuments:    j.Progress.FailedFiles.Load(),
		TotalGeometries:    j.Progress.Features.Load(),
		StartTime:          j.Progress.StartTime,
		EndTime:            time.Now(),
	}
	if j.CompletedAt != nil {
		stats.EndTime = *j.CompletedAt
	}
	return stats
}

// CalculateProgress calculates the completion percentage
func (p *JobProgress) CalculateProgress() float64 {
	total := p.TotalFiles.Load()
	if total == 0 {
		return 0
	}
	return float64(p.ProcessedFiles.Load()) / float64(total) * 100
}

// Throughput returns processed files per second since the job started
func (p *JobProgress) Throughput() float64 {
	elapsed := time.Since(p.StartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.ProcessedFiles.Load()) / elapsed
}

// String returns a string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}
