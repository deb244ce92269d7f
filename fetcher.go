package pageturner

import "context"

// Fetcher retrieves page text and raw bytes from URLs.
// Implementations apply a bounded request timeout and present a
// realistic browser user agent. Errors carry EUNAVAILABLE; callers
// treat them as "page not reachable", never as a crash.
type Fetcher interface {
	// FetchText retrieves the body of the URL as text.
	// The context controls timeout and cancellation.
	FetchText(ctx context.Context, url string) (string, error)

	// FetchBytes retrieves the body of the URL as raw bytes,
	// e.g. for cover images.
	FetchBytes(ctx context.Context, url string) ([]byte, error)

	// Close releases any connection resources held across calls.
	Close() error
}
