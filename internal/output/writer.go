// internal/output/writer.go - Output writing implementation
package output

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/valpere/geomkit/internal/source"
)

// FileWriter writes every document to a single file with optional compression
type FileWriter struct {
	formatter   Formatter
	destination Destination
}

// NewFileWriter creates a new file-based writer
func NewFileWriter(config *WriterConfig, destination string) (*FileWriter, error) {
	formatter, err := NewFormatter(config.formatterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	dest, err := newFileDestination(destination, config.Compression)
	if err != nil {
		return nil, fmt.Errorf("failed to create file destination: %w", err)
	}

	return &FileWriter{
		formatter:   formatter,
		destination: dest,
	}, nil
}

// Write writes a single document to the output destination
func (w *FileWriter) Write(doc *source.Document) error {
	data, err := w.formatter.Format(doc)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	if _, err := w.destination.Write(terminate(w.formatter, data)); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	return nil
}

// WriteBatch writes multiple documents as a batch operation
func (w *FileWriter) WriteBatch(docs []*source.Document) error {
	data, err := w.formatter.FormatBatch(docs)
	if err != nil {
		return fmt.Errorf("batch formatting failed: %w", err)
	}

	if _, err := w.destination.Write(terminate(w.formatter, data)); err != nil {
		return fmt.Errorf("batch write failed: %w", err)
	}

	return nil
}

// Name returns the path being written
func (w *FileWriter) Name() string {
	return w.destination.Name()
}

// Close closes the writer and underlying destination
func (w *FileWriter) Close() error {
	return w.destination.Close()
}

// StreamWriter writes output to a stream, os.Stdout by default
type StreamWriter struct {
	formatter Formatter
	out       io.Writer
}

// NewStdoutWriter creates a writer for standard output
func NewStdoutWriter(config *WriterConfig) (*StreamWriter, error) {
	return NewStreamWriter(config, os.Stdout)
}

// NewStreamWriter creates a writer for out
func NewStreamWriter(config *WriterConfig, out io.Writer) (*StreamWriter, error) {
	formatter, err := NewFormatter(config.formatterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	return &StreamWriter{formatter: formatter, out: out}, nil
}

// Write writes a single document
func (w *StreamWriter) Write(doc *source.Document) error {
	data, err := w.formatter.Format(doc)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	if _, err := w.out.Write(terminate(w.formatter, data)); err != nil {
		return fmt.Errorf("write to stream failed: %w", err)
	}
	return nil
}

// WriteBatch writes multiple documents
func (w *StreamWriter) WriteBatch(docs []*source.Document) error {
	data, err := w.formatter.FormatBatch(docs)
	if err != nil {
		return fmt.Errorf("batch formatting failed: %w", err)
	}

	if _, err := w.out.Write(terminate(w.formatter, data)); err != nil {
		return fmt.Errorf("batch write to stream failed: %w", err)
	}
	return nil
}

// Close is a no-op for stream writers
func (w *StreamWriter) Close() error {
	return nil
}

// MultiFileWriter writes each document to a separate file named after its source
type MultiFileWriter struct {
	formatter Formatter
	baseDir   string
	config    *WriterConfig
}

// NewMultiFileWriter creates a writer that outputs each document to a separate file
func NewMultiFileWriter(config *WriterConfig, baseDir string) (*MultiFileWriter, error) {
	formatter, err := NewFormatter(config.formatterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &MultiFileWriter{
		formatter: formatter,
		baseDir:   baseDir,
		config:    config,
	}, nil
}

// Write writes a single document to its own file
func (w *MultiFileWriter) Write(doc *source.Document) error {
	_, err := w.WriteFile(doc)
	return err
}

// WriteFile writes doc and returns the path it was written to
func (w *MultiFileWriter) WriteFile(doc *source.Document) (string, error) {
	data, err := w.formatter.Format(doc)
	if err != nil {
		return "", fmt.Errorf("formatting failed: %w", err)
	}

	dest, err := newFileDestination(w.Path(doc.Name), w.config.Compression)
	if err != nil {
		return "", fmt.Errorf("failed to create file destination: %w", err)
	}

	if _, err := dest.Write(terminate(w.formatter, data)); err != nil {
		dest.Close()
		return "", fmt.Errorf("write failed: %w", err)
	}

	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("close failed: %w", err)
	}
	return dest.Name(), nil
}

// WriteBatch writes each document in the batch to separate files
func (w *MultiFileWriter) WriteBatch(docs []*source.Document) error {
	for _, doc := range docs {
		if err := w.Write(doc); err != nil {
			return fmt.Errorf("failed to write %s: %w", doc.Name, err)
		}
	}
	return nil
}

// Close is a no-op for multi-file writer
func (w *MultiFileWriter) Close() error {
	return nil
}

// Path returns the output path for a document named name: its base name with
// the formatter's extension, inside the base directory
func (w *MultiFileWriter) Path(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	path := filepath.Join(w.baseDir, base+w.formatter.Extension())
	if w.config.Compression {
		path += ".gz"
	}
	return path
}

// terminate appends a newline to textual output for readability
func terminate(f Formatter, data []byte) []byte {
	if f.ContentType() == "application/octet-stream" || bytes.HasSuffix(data, []byte("\n")) {
		return data
	}
	return append(data, '\n')
}

// fileDestination implements the Destination interface for file output
type fileDestination struct {
	file   *os.File
	writer io.WriteCloser
	name   string
	size   int64
}

// newFileDestination creates a new file destination with optional compression
func newFileDestination(path string, compression bool) (*fileDestination, error) {
	if compression && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	var writer io.WriteCloser = file
	if compression {
		writer = gzip.NewWriter(file)
	}

	return &fileDestination{
		file:   file,
		writer: writer,
		name:   path,
	}, nil
}

// Write implements io.Writer
func (d *fileDestination) Write(p []byte) (n int, err error) {
	n, err = d.writer.Write(p)
	d.size += int64(n)
	return n, err
}

// Close implements io.Closer
func (d *fileDestination) Close() error {
	if d.writer != d.file {
		if err := d.writer.Close(); err != nil {
			d.file.Close()
			return err
		}
	}
	return d.file.Close()
}

// Name returns the destination file path
func (d *fileDestination) Name() string {
	return d.name
}

// Size returns the number of bytes written
func (d *fileDestination) Size() int64 {
	return d.size
}

// NewWriter creates the appropriate writer based on configuration. An empty
// destination or "-" selects stdout.
func NewWriter(config *WriterConfig, destination string, multiFile bool) (Writer, error) {
	if destination == "" || destination == "-" {
		return NewStdoutWriter(config)
	}

	if multiFile {
		return NewMultiFileWriter(config, destination)
	}

	return NewFileWriter(config, destination)
}
