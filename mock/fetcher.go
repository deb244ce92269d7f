package mock

import (
	"context"

	"github.com/fwojciec/pageturner"
)

var _ pageturner.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pageturner.Fetcher.
type Fetcher struct {
	FetchTextFn  func(ctx context.Context, url string) (string, error)
	FetchBytesFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn      func() error
}

func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.FetchTextFn(ctx, url)
}

func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return f.FetchBytesFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
