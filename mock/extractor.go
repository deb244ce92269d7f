package mock

import "github.com/fwojciec/pageturner"

var _ pageturner.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pageturner.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pageturner.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pageturner.ExtractResult, error) {
	return e.ExtractFn(html)
}
