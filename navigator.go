package pageturner

// Navigator computes the next chapter URL from the current one.
// The URL-increment implementation lives in regexp/; alternative
// strategies (e.g. "next" link discovery) can implement the same
// contract and be selected by configuration.
type Navigator interface {
	// StartURL returns the configured first chapter URL.
	StartURL() string

	// NextURL returns the URL of the chapter following current.
	// It returns ENOTFOUND when the sequence has ended (the pattern no
	// longer matches, or the computed URL would not change) and
	// EINVALID when the matched chapter token cannot be parsed as an
	// integer. Both conditions terminate traversal normally.
	NextURL(current string) (string, error)
}
