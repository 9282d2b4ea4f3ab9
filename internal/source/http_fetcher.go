// internal/source/http_fetcher.go - HTTP document fetching
package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/valpere/geomkit/internal"
	"github.com/valpere/geomkit/internal/config"
)

// HTTPFetcher implements the Fetcher interface using HTTP requests
type HTTPFetcher struct {
	client    *http.Client
	config    *config.ServerConfig
	userAgent string
}

// NewHTTPFetcher creates a new HTTP-based document fetcher
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			KeepAlive: cfg.Network.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.Network.MaxIdleConns,
		IdleConnTimeout:     cfg.Network.IdleConnTimeout,
		DisableKeepAlives:   cfg.Network.DisableKeepAlive,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxConnsPerHost:     cfg.Batch.Concurrency,
	}

	// Configure proxy if specified
	if cfg.Network.ProxyURL != "" {
		if proxyURL, err := url.Parse(cfg.Network.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   cfg.Server.Timeout,
			Transport: transport,
		},
		config:    &cfg.Server,
		userAgent: cfg.Network.UserAgent,
	}
}

// Fetch retrieves a single document. A non-200 status is returned as an
// error together with the response so callers can inspect the status code.
func (f *HTTPFetcher) Fetch(ctx context.Context, request *Request) (*Response, error) {
	start := time.Now()

	req, err := f.buildHTTPRequest(ctx, request)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeValidation, "failed to build HTTP request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeNetwork, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	response := &Response{
		Request:    request,
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
	}

	// Handle compressed responses
	var reader io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			response.FetchTime = time.Since(start)
			return response, internal.NewError(internal.ErrorCodeProcessing, "failed to create gzip reader", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
		response.Compressed = true
	}

	data, err := io.ReadAll(reader)
	response.FetchTime = time.Since(start)
	if err != nil {
		return response, internal.NewError(internal.ErrorCodeNetwork, "failed to read response body", err)
	}
	response.Data = data
	response.Size = len(data)

	if resp.StatusCode != http.StatusOK {
		code := internal.ErrorCodeNetwork
		if resp.StatusCode == http.StatusNotFound {
			code = internal.ErrorCodeNotFound
		}
		return response, internal.NewError(code, fmt.Sprintf("HTTP %d fetching %s", resp.StatusCode, request.Location), nil)
	}

	return response, nil
}

// FetchWithRetry retries failed requests with quadratic backoff
func (f *HTTPFetcher) FetchWithRetry(ctx context.Context, request *Request) (*Response, error) {
	var lastResponse *Response
	var lastErr error

	for attempt := 0; attempt <= f.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoffDelay := time.Duration(attempt*attempt) * f.config.RetryDelay
			log.Debug().
				Str("location", request.Location).
				Int("attempt", attempt).
				Dur("backoff", backoffDelay).
				Err(lastErr).
				Msg("retrying fetch")

			select {
			case <-ctx.Done():
				return lastResponse, internal.NewError(internal.ErrorCodeTimeout, "fetch cancelled", ctx.Err())
			case <-time.After(backoffDelay):
			}
		}

		response, err := f.Fetch(ctx, request)
		if err == nil {
			return response, nil
		}

		lastResponse = response
		lastErr = err

		if !f.shouldRetry(ctx, response) {
			break
		}
	}

	return lastResponse, fmt.Errorf("failed after %d attempts: %w", f.config.MaxRetries+1, lastErr)
}

// buildHTTPRequest constructs an HTTP request from a document request
func (f *HTTPFetcher) buildHTTPRequest(ctx context.Context, request *Request) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, request.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	// Set default headers
	req.Header.Set("Accept", "application/geo+json, application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", f.userAgent)

	// Add authentication if configured
	if f.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.config.APIKey)
	}

	// Add server-level headers from configuration
	for key, value := range f.config.Headers {
		req.Header.Set(key, value)
	}

	// Add request-specific headers
	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// shouldRetry determines whether a failed request should be retried
func (f *HTTPFetcher) shouldRetry(ctx context.Context, response *Response) bool {
	if ctx.Err() != nil {
		return false
	}

	// Always retry on network errors
	if response == nil {
		return true
	}

	// Don't retry on client errors (4xx)
	if response.StatusCode >= 400 && response.StatusCode < 500 {
		return false
	}

	// Retry on server errors (5xx) and truncated reads
	return response.StatusCode >= 500 || response.StatusCode == http.StatusOK
}
