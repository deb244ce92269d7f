package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pageturner"
	"github.com/fwojciec/pageturner/yaml"
)

// previewLength is how much extracted text the probe command shows.
const previewLength = 200

// Run executes the probe command. It fetches one page and reports
// the extraction outcome without writing anything.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.Load(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	pageURL := c.URL
	if pageURL == "" {
		pageURL = cfg.StartURL
	}

	fetcher := newFetcher(deps)
	defer fetcher.Close()

	extractor, err := newExtractor(cfg, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	html, err := fetcher.FetchText(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error fetching %s: %s\n", pageURL, pageturner.ErrorMessage(err))
		return err
	}

	result, err := extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error extracting: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "URL:     %s\n", pageURL)
	if result.Title != "" {
		fmt.Fprintf(deps.Stdout, "Title:   %s\n", result.Title)
	} else {
		fmt.Fprintln(deps.Stdout, "Title:   (none)")
	}

	if !result.ContentFound {
		fmt.Fprintln(deps.Stdout, "Content: not found (would count toward the empty streak)")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Content: %d bytes\n", len(result.ContentHTML))
	fmt.Fprintf(deps.Stdout, "Preview: %s\n", preview(result.ContentHTML))
	return nil
}

// preview flattens markup whitespace and truncates for display.
func preview(s string) string {
	flat := strings.Join(strings.Fields(s), " ")
	if len(flat) > previewLength {
		return flat[:previewLength] + "..."
	}
	return flat
}
