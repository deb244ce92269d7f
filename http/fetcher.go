// Package http provides an HTTP-based implementation of
// pageturner.Fetcher for fetching chapter pages and cover images.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pageturner"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// userAgent presents a realistic browser identity; some novel hosts
// refuse requests from default Go clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements pageturner.Fetcher at compile time.
var _ pageturner.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content from URLs using HTTP requests.
// The underlying client reuses connections across calls.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchText retrieves the body of the URL as text.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	body, err := f.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBytes retrieves the body of the URL as raw bytes.
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return f.fetch(ctx, url)
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pageturner.Errorf(pageturner.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pageturner.Errorf(pageturner.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pageturner.Errorf(pageturner.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pageturner.Errorf(pageturner.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return body, nil
}

// Close releases resources. The shared transport's idle connections
// are closed so a long crawl does not leak sockets.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
