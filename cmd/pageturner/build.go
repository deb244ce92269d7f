package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pageturner"
	"github.com/fwojciec/pageturner/crawl"
	"github.com/fwojciec/pageturner/epub"
	ptgoquery "github.com/fwojciec/pageturner/goquery"
	pthttp "github.com/fwojciec/pageturner/http"
	"github.com/fwojciec/pageturner/readability"
	ptregexp "github.com/fwojciec/pageturner/regexp"
	ptslog "github.com/fwojciec/pageturner/slog"
	"github.com/fwojciec/pageturner/yaml"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.Load(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	fetcher := newFetcher(deps)
	defer fetcher.Close()

	extractor, err := newExtractor(cfg, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	navigator, err := ptregexp.NewNavigator(cfg.StartURL, *cfg.URLPatternRule())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageturner.ErrorMessage(err))
		return err
	}

	crawler := &crawl.Crawler{
		Fetcher:        fetcher,
		Extractor:      extractor,
		Navigator:      navigator,
		Limiter:        crawl.NewLimiter(time.Duration(cfg.RequestIntervalMS) * time.Millisecond),
		EmptyThreshold: cfg.EmptyThreshold,
		Logger:         deps.Logger,
	}

	fmt.Fprintf(deps.Stdout, "Crawling %q from %s\n", cfg.NovelTitle, cfg.StartURL)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressChapter:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Index, event.Title)
		case crawl.ProgressEmpty:
			fmt.Fprintf(deps.Stdout, "  skip %s: no content\n", event.URL)
		case crawl.ProgressFinished:
			fmt.Fprintf(deps.Stdout, "Traversal ended: %s\n", event.Reason)
		}
	}

	result, err := crawler.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if len(result.Chapters) == 0 {
		fmt.Fprintln(deps.Stdout, "No chapters collected; no EPUB generated.")
		return nil
	}

	output := c.Output
	if output == "" {
		output = epub.Filename(cfg.NovelTitle)
	}

	book := pageturner.Book{
		Title:         cfg.NovelTitle,
		Author:        cfg.NovelAuthor,
		Language:      cfg.Language,
		CoverImageURL: cfg.CoverImageURL,
	}

	writer := epub.NewWriter(book, output,
		epub.WithCoverFetcher(fetcher),
		epub.WithLogger(deps.Logger),
	)
	writer.AddChapters(result.Chapters)

	if err := writer.Generate(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing EPUB: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d chapters to %s\n", len(result.Chapters), output)
	return nil
}

// newFetcher builds the HTTP fetcher wrapped with request logging.
func newFetcher(deps *Dependencies) pageturner.Fetcher {
	return ptslog.NewLoggingFetcher(pthttp.NewFetcher(), deps.Logger)
}

// newExtractor builds the selector-driven extractor from config, with
// the readability strategy available as a rule type.
func newExtractor(cfg *pageturner.Config, deps *Dependencies) (pageturner.Extractor, error) {
	return ptgoquery.NewExtractor(cfg.ContentSelectors,
		ptgoquery.WithRemoveElements(cfg.RemoveElements),
		ptgoquery.WithTitleSelector(cfg.ChapterTitleSelector),
		ptgoquery.WithAutoStrategy(readability.NewExtractor()),
		ptgoquery.WithLogger(deps.Logger),
	)
}
