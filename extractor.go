package pageturner

// ExtractResult holds the content extracted from a chapter page.
type ExtractResult struct {
	// Title is the trimmed text of the configured title selector's
	// first match, or empty if no title selector matched.
	Title string

	// ContentHTML is the serialized markup of the located content
	// subtree, with remove-selectors applied. Meaningful only when
	// ContentFound is true.
	ContentHTML string

	// ContentFound reports whether any configured content rule matched.
	// A page with no match counts toward the crawler's empty streak.
	ContentFound bool
}

// Extractor locates the main content block and an optional title in
// raw page markup. Implementations are pure functions of the markup
// and their configured rules, aside from logging.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
