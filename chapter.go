package pageturner

import "context"

// Chapter is a single extracted chapter. Chapters are immutable once
// created and are accumulated in traversal order by the crawler.
type Chapter struct {
	// Title is the chapter title as it should appear in the table of
	// contents.
	Title string

	// HTML is the serialized markup of the chapter's main content
	// subtree, with remove-selectors already applied.
	HTML string
}

// Book holds the metadata for a generated e-book.
type Book struct {
	Title         string
	Author        string
	Language      string
	CoverImageURL string // optional; an unreachable cover is skipped, not fatal
}

// BookWriter assembles an ordered list of chapters into an e-book file.
type BookWriter interface {
	// AddChapters appends chapters in order. Table-of-contents entries
	// follow insertion order.
	AddChapters(chapters []Chapter)

	// Generate serializes the e-book to its output path. Write errors
	// propagate to the caller.
	Generate(ctx context.Context) error
}
