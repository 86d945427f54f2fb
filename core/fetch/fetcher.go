// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET with a browser User-Agent and decodes the
// body to UTF-8.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0 Safari/537.36"
)

var _ core.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches web pages via HTTP. It never retries.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    zerolog.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout bounds the whole request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l zerolog.Logger) Option {
	return func(f *HTTPFetcher) {
		f.logger = l
	}
}

// New creates an HTTPFetcher with DefaultTimeout and DefaultUserAgent.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves the HTML content of the given URL. Transport failures and
// non-2xx responses are returned as *core.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidURL, url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug().Str("url", url).Err(err).Dur("duration", time.Since(start)).Msg("fetch failed")
		return nil, &core.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("fetch rejected")
		return nil, &core.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &core.FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding body: %w", err)}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	f.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("fetch")

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(data),
	}, nil
}
