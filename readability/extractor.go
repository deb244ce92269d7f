// Package readability provides an automatic implementation of
// pageturner.Extractor for pages where no CSS selector is known.
// It backs the "readability" content rule type.
package readability

import (
	"strings"

	"github.com/fwojciec/pageturner"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pageturner.Extractor at compile time.
var _ pageturner.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to locate the main content block
// without configured selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pageturner.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pageturner.Errorf(pageturner.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pageturner.ExtractResult{
		Title:        strings.TrimSpace(article.Title),
		ContentHTML:  article.Content,
		ContentFound: strings.TrimSpace(article.Content) != "",
	}, nil
}
