// Package pageturner converts sequentially-numbered web novels into
// EPUB files. It walks a chapter sequence by incrementing a numeric
// token in the URL, extracts each chapter's title and body with
// configurable selectors, and assembles the results into a single
// e-book with a navigable table of contents.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency
// (e.g., goquery/, http/, yaml/).
package pageturner
