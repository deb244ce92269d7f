// Package goquery provides a selector-driven implementation of
// pageturner.Extractor. Content rules are applied in configured order
// and the first rule that matches wins; no further rules are tried.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pageturner"
)

// Ensure Extractor implements pageturner.Extractor at compile time.
var _ pageturner.Extractor = (*Extractor)(nil)

// Extractor locates chapter content and an optional title using CSS
// selectors. It is a pure function of the markup and its configured
// rules, aside from logging.
type Extractor struct {
	rules          []pageturner.SelectorRule
	removeElements []string
	titleSelector  string
	auto           pageturner.Extractor
	logger         *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRemoveElements sets CSS selectors for elements to strip from the
// located content subtree before serialization (ads, share widgets).
func WithRemoveElements(selectors []string) Option {
	return func(e *Extractor) {
		e.removeElements = selectors
	}
}

// WithTitleSelector sets the CSS selector for the chapter title.
// Absence of a match is not an error.
func WithTitleSelector(selector string) Option {
	return func(e *Extractor) {
		e.titleSelector = selector
	}
}

// WithAutoStrategy sets the extractor delegated to by rules of type
// "readability". Rules of that type are skipped with a warning when no
// strategy is configured.
func WithAutoStrategy(auto pageturner.Extractor) Option {
	return func(e *Extractor) {
		e.auto = auto
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor. The rule list must not be
// empty; an empty list is a configuration error.
func NewExtractor(rules []pageturner.SelectorRule, opts ...Option) (*Extractor, error) {
	if len(rules) == 0 {
		return nil, pageturner.Errorf(pageturner.ECONFIG, "content selector rules must not be empty")
	}

	e := &Extractor{rules: rules}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// Extract parses the page markup and returns the chapter title and the
// serialized content subtree. A page where no content rule matches
// yields ContentFound=false with whatever title was found; the caller
// decides how to proceed.
func (e *Extractor) Extract(html string) (*pageturner.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pageturner.Errorf(pageturner.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &pageturner.ExtractResult{}

	if e.titleSelector != "" {
		title := doc.Find(e.titleSelector).First()
		if title.Length() > 0 {
			result.Title = strings.TrimSpace(title.Text())
		}
	}

	for _, rule := range e.rules {
		switch rule.Type {
		case pageturner.SelectorCSS:
			if rule.Selector == "" {
				e.logger.Warn("content selector rule has no selector, skipping", "type", rule.Type)
				continue
			}
			sel := doc.Find(rule.Selector).First()
			if sel.Length() == 0 {
				continue
			}
			content, err := e.serialize(sel)
			if err != nil {
				return nil, err
			}
			result.ContentHTML = content
			result.ContentFound = true
			return result, nil

		case pageturner.SelectorReadability:
			if e.auto == nil {
				e.logger.Warn("no automatic extraction strategy configured, skipping rule", "type", rule.Type)
				continue
			}
			auto, err := e.auto.Extract(html)
			if err != nil {
				e.logger.Warn("automatic extraction failed, trying next rule", "err", err)
				continue
			}
			if !auto.ContentFound {
				continue
			}
			content, err := e.stripFragment(auto.ContentHTML)
			if err != nil {
				return nil, err
			}
			result.ContentHTML = content
			result.ContentFound = true
			return result, nil

		default:
			e.logger.Warn("unsupported content selector type, skipping", "type", rule.Type)
		}
	}

	return result, nil
}

// serialize removes unwanted descendants from the matched selection
// and returns its outer HTML. Removal mutates the parsed document,
// which is discarded after this call.
func (e *Extractor) serialize(sel *goquery.Selection) (string, error) {
	for _, remove := range e.removeElements {
		sel.Find(remove).Remove()
	}
	content, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", pageturner.Errorf(pageturner.EINTERNAL, "failed to serialize content: %v", err)
	}
	return content, nil
}

// stripFragment applies the remove-selectors to an HTML fragment
// produced by the automatic strategy.
func (e *Extractor) stripFragment(fragment string) (string, error) {
	if len(e.removeElements) == 0 {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", pageturner.Errorf(pageturner.EINVALID, "failed to parse extracted fragment: %v", err)
	}
	for _, remove := range e.removeElements {
		doc.Find(remove).Remove()
	}
	content, err := doc.Find("body").First().Html()
	if err != nil {
		return "", pageturner.Errorf(pageturner.EINTERNAL, "failed to serialize content: %v", err)
	}
	return content, nil
}
