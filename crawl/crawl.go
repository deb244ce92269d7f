// Package crawl provides the chapter traversal orchestration. It
// drives the fetch→extract→advance cycle, owns loop-termination policy
// and accumulates the ordered chapter list handed to the book writer.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/pageturner"
)

// Reason identifies why a traversal ended. Every reason is a normal,
// successful termination; only unexpected internal errors surface as
// errors from Run.
type Reason string

// Termination reasons.
const (
	ReasonNavigatorEnd Reason = "navigator-end"
	ReasonLoopDetected Reason = "url-loop-detected"
	ReasonFetchFailed  Reason = "fetch-failed"
	ReasonEmptyStreak  Reason = "empty-streak-exhausted"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressChapter ProgressType = iota
	ProgressEmpty
	ProgressFinished
)

// ProgressEvent reports progress during a traversal.
type ProgressEvent struct {
	Type   ProgressType
	Index  int
	URL    string
	Title  string
	Reason Reason
}

// ProgressFunc is a callback for reporting traversal progress.
type ProgressFunc func(event ProgressEvent)

// Result holds the outcome of a traversal.
type Result struct {
	// Chapters in traversal order.
	Chapters []pageturner.Chapter

	// Reason the traversal ended.
	Reason Reason

	// Visited is the number of URLs visited.
	Visited int

	// Empty is the number of successfully fetched pages that yielded
	// no extractable content.
	Empty int
}

// Crawler walks the chapter sequence. State (visited set, chapter
// index, empty streak) is owned exclusively by Run for the lifetime of
// one traversal; loop detection matches exact URL strings only, so
// cycles longer than one revisit of a fetched URL or near-duplicate
// URLs (trailing slash variants) are not detected.
type Crawler struct {
	Fetcher   pageturner.Fetcher
	Extractor pageturner.Extractor
	Navigator pageturner.Navigator

	// Limiter, when set, paces successive page requests.
	Limiter *Limiter

	// EmptyThreshold terminates traversal after this many consecutive
	// content-less pages. Defaults to pageturner.DefaultEmptyThreshold.
	EmptyThreshold int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run traverses the chapter sequence from the navigator's start URL
// until a termination condition is met. Expected end-of-sequence
// conditions produce a Result with a Reason and no error; context
// cancellation and extraction failures are returned as errors.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	threshold := c.EmptyThreshold
	if threshold <= 0 {
		threshold = pageturner.DefaultEmptyThreshold
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	visited := make(map[string]struct{})
	var chapters []pageturner.Chapter
	var reason Reason
	var emptyTotal int
	emptyStreak := 0
	index := 1
	current := c.Navigator.StartURL()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// The URL is recorded before it is fetched, so re-encountering
		// it deterministically signals a loop without refetching.
		if _, ok := visited[current]; ok {
			logger.Warn("URL already processed, stopping", "url", current)
			reason = ReasonLoopDetected
			break
		}
		visited[current] = struct{}{}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		logger.Info("processing chapter", "index", index, "url", current)

		html, err := c.Fetcher.FetchText(ctx, current)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("fetch failed, assuming end of novel", "url", current, "err", err)
			reason = ReasonFetchFailed
			break
		}

		extracted, err := c.Extractor.Extract(html)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", current, err)
		}

		if extracted.ContentFound {
			title := strings.TrimSpace(extracted.Title)
			if title == "" {
				title = fmt.Sprintf("Chapter %d", index)
			}
			chapters = append(chapters, pageturner.Chapter{Title: title, HTML: extracted.ContentHTML})
			emptyStreak = 0
			if progress != nil {
				progress(ProgressEvent{Type: ProgressChapter, Index: index, URL: current, Title: title})
			}
		} else {
			emptyStreak++
			emptyTotal++
			logger.Warn("no content extracted", "url", current, "streak", emptyStreak, "threshold", threshold)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressEmpty, Index: index, URL: current})
			}
			if emptyStreak >= threshold {
				logger.Warn("consecutive empty chapter threshold reached, stopping", "threshold", threshold)
				reason = ReasonEmptyStreak
				break
			}
		}

		next, err := c.Navigator.NextURL(current)
		if err != nil {
			if pageturner.ErrorCode(err) == pageturner.EINVALID {
				logger.Warn("navigation failed, stopping", "err", pageturner.ErrorMessage(err))
			} else {
				logger.Info("navigator indicated end of sequence", "url", current)
			}
			reason = ReasonNavigatorEnd
			break
		}
		current = next
		index++
	}

	logger.Info("traversal finished", "reason", string(reason), "chapters", len(chapters))
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Reason: reason})
	}

	return &Result{
		Chapters: chapters,
		Reason:   reason,
		Visited:  len(visited),
		Empty:    emptyTotal,
	}, nil
}
