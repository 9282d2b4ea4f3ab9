// internal/source/file_fetcher.go - Local file and stdin document fetching
package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
)

// gzipMagic is the two-byte header of a gzip stream
var gzipMagic = []byte{0x1f, 0x8b}

// FileFetcher implements the Fetcher interface for local files
type FileFetcher struct {
	compressed bool
}

// NewFileFetcher creates a new local file fetcher. With source.compressed set
// every file is gunzipped; otherwise only files ending in .gz are.
func NewFileFetcher(cfg *config.Config) *FileFetcher {
	return &FileFetcher{compressed: cfg.Source.Compressed}
}

// Fetch reads a document from the local file system
func (f *FileFetcher) Fetch(ctx context.Context, request *Request) (*Response, error) {
	start := time.Now()
	filePath := request.Location

	if err := ctx.Err(); err != nil {
		return nil, internal.NewError(internal.ErrorCodeTimeout, "fetch cancelled", err)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, internal.NewError(internal.ErrorCodeNotFound, fmt.Sprintf("file not found: %s", filePath), err)
		}
		if os.IsPermission(err) {
			return nil, internal.NewError(internal.ErrorCodePermission, fmt.Sprintf("permission denied: %s", filePath), err)
		}
		return nil, internal.NewError(internal.ErrorCodeFileSystem, fmt.Sprintf("cannot access file: %s", filePath), err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, internal.NewError(internal.ErrorCodeValidation, fmt.Sprintf("path is not a regular file: %s", filePath), nil)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeFileSystem, fmt.Sprintf("failed to open file: %s", filePath), err)
	}
	defer file.Close()

	compressed := f.compressed || isCompressedFile(filePath)
	data, err := readAll(file, compressed)
	if err != nil {
		code := internal.ErrorCodeFileSystem
		if compressed {
			code = internal.ErrorCodeProcessing
		}
		return nil, internal.NewError(code, fmt.Sprintf("failed to read file: %s", filePath), err)
	}

	return &Response{
		Request:    request,
		Data:       data,
		StatusCode: 200,
		Size:       len(data),
		FetchTime:  time.Since(start),
		Compressed: compressed,
	}, nil
}

// FetchWithRetry retries transient file system errors a few times
func (f *FileFetcher) FetchWithRetry(ctx context.Context, request *Request) (*Response, error) {
	const maxRetries = 3
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Debug().Str("location", request.Location).Int("attempt", attempt).Err(lastErr).Msg("retrying read")
			time.Sleep(time.Duration(attempt*100) * time.Millisecond)
		}

		response, err := f.Fetch(ctx, request)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if !shouldRetryFile(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastErr)
}

// ListFiles returns the regular files under root whose base name matches
// pattern, in lexical order. Subdirectories are descended only when recursive.
func ListFiles(root, pattern string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched && d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeFileSystem, fmt.Sprintf("failed to scan directory: %s", root), err)
	}

	return files, nil
}

// StdinFetcher reads a single document from a reader, os.Stdin by default.
// Gzip input is detected from its magic bytes.
type StdinFetcher struct {
	reader io.Reader
}

// NewStdinFetcher creates a fetcher reading from r, or os.Stdin when r is nil
func NewStdinFetcher(r io.Reader) *StdinFetcher {
	if r == nil {
		r = os.Stdin
	}
	return &StdinFetcher{reader: r}
}

// Fetch reads the whole input
func (f *StdinFetcher) Fetch(_ context.Context, request *Request) (*Response, error) {
	start := time.Now()

	data, err := io.ReadAll(f.reader)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeFileSystem, "failed to read stdin", err)
	}

	compressed := bytes.HasPrefix(data, gzipMagic)
	if compressed {
		data, err = readAll(bytes.NewReader(data), true)
		if err != nil {
			return nil, internal.NewError(internal.ErrorCodeProcessing, "failed to decompress stdin", err)
		}
	}

	return &Response{
		Request:    request,
		Data:       data,
		StatusCode: 200,
		Size:       len(data),
		FetchTime:  time.Since(start),
		Compressed: compressed,
	}, nil
}

// FetchWithRetry is Fetch; a consumed stream cannot be read twice
func (f *StdinFetcher) FetchWithRetry(ctx context.Context, request *Request) (*Response, error) {
	return f.Fetch(ctx, request)
}

func readAll(r io.Reader, compressed bool) ([]byte, error) {
	if !compressed {
		return io.ReadAll(r)
	}
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()
	return io.ReadAll(gzipReader)
}

// isCompressedFile determines if a file is compressed based on its extension
func isCompressedFile(filePath string) bool {
	return strings.HasSuffix(strings.ToLower(filePath), ".gz")
}

// shouldRetryFile reports whether a failed file access might be transient
func shouldRetryFile(err error) bool {
	switch internal.ErrorCodeOf(err) {
	case internal.ErrorCodeNotFound, internal.ErrorCodePermission, internal.ErrorCodeValidation,
		internal.ErrorCodeTimeout, internal.ErrorCodeProcessing:
		return false
	}
	return true
}
