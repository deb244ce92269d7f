package goquery_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/pageturner"
	ptgoquery "github.com/fwojciec/pageturner/goquery"
	"github.com/fwojciec/pageturner/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cssRules(selectors ...string) []pageturner.SelectorRule {
	rules := make([]pageturner.SelectorRule, len(selectors))
	for i, s := range selectors {
		rules[i] = pageturner.SelectorRule{Type: pageturner.SelectorCSS, Selector: s}
	}
	return rules
}

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	t.Run("rejects an empty rule list", func(t *testing.T) {
		t.Parallel()

		_, err := ptgoquery.NewExtractor(nil)
		require.Error(t, err)
		assert.Equal(t, pageturner.ECONFIG, pageturner.ErrorCode(err))
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts content with the first matching rule", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="content"><p>It was a dark and stormy night.</p></div></body></html>`

		extractor, err := ptgoquery.NewExtractor(cssRules("div#content"))
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "It was a dark and stormy night.")
		assert.Contains(t, result.ContentHTML, `<div id="content">`)
	})

	t.Run("first matching rule wins over later rules", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="primary"><p>primary fragment</p></div>
<div class="secondary"><p>secondary fragment</p></div>
</body></html>`

		extractor, err := ptgoquery.NewExtractor(cssRules("div.primary", "div.secondary"))
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "primary fragment")
		assert.NotContains(t, result.ContentHTML, "secondary fragment")
	})

	t.Run("falls through to a later rule when earlier rules miss", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>the story</p></article></body></html>`

		extractor, err := ptgoquery.NewExtractor(cssRules("div#missing", "article"))
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "the story")
	})

	t.Run("reports no content when no rule matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>unreachable</p></body></html>`

		extractor, err := ptgoquery.NewExtractor(cssRules("div#content"))
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.False(t, result.ContentFound)
		assert.Empty(t, result.ContentHTML)
	})

	t.Run("removes elements matching remove selectors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="content">
<p>keep me</p>
<div class="ad">BUY NOW</div>
<div class="share-buttons">share</div>
</div></body></html>`

		extractor, err := ptgoquery.NewExtractor(
			cssRules("div#content"),
			ptgoquery.WithRemoveElements([]string{"div.ad", "div.share-buttons"}),
		)
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "keep me")
		assert.NotContains(t, result.ContentHTML, "BUY NOW")
		assert.NotContains(t, result.ContentHTML, "share")
	})

	t.Run("extracts a trimmed title when the selector matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1 class="entry-title">  Chapter 12: The Gate  </h1>
<div id="content"><p>text</p></div>
</body></html>`

		extractor, err := ptgoquery.NewExtractor(
			cssRules("div#content"),
			ptgoquery.WithTitleSelector("h1.entry-title"),
		)
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, "Chapter 12: The Gate", result.Title)
	})

	t.Run("missing title is not an error", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="content"><p>text</p></div></body></html>`

		extractor, err := ptgoquery.NewExtractor(
			cssRules("div#content"),
			ptgoquery.WithTitleSelector("h1.entry-title"),
		)
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Empty(t, result.Title)
		assert.True(t, result.ContentFound)
	})

	t.Run("returns title even when content is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Lonely Title</h1></body></html>`

		extractor, err := ptgoquery.NewExtractor(
			cssRules("div#content"),
			ptgoquery.WithTitleSelector("h1"),
		)
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, "Lonely Title", result.Title)
		assert.False(t, result.ContentFound)
	})

	t.Run("skips unsupported rule types with a warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		html := `<html><body><article><p>fallback content</p></article></body></html>`

		rules := []pageturner.SelectorRule{
			{Type: "xpath", Selector: "//article"},
			{Type: pageturner.SelectorCSS, Selector: "article"},
		}
		extractor, err := ptgoquery.NewExtractor(rules, ptgoquery.WithLogger(logger))
		require.NoError(t, err)

		result, err := extractor.Extract(html)
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "fallback content")
		assert.Contains(t, buf.String(), "unsupported content selector type")
		assert.Contains(t, buf.String(), "xpath")
	})

	t.Run("delegates readability rules to the auto strategy", func(t *testing.T) {
		t.Parallel()

		auto := &mock.Extractor{
			ExtractFn: func(html string) (*pageturner.ExtractResult, error) {
				return &pageturner.ExtractResult{
					ContentHTML:  "<div><p>auto detected</p></div>",
					ContentFound: true,
				}, nil
			},
		}

		rules := []pageturner.SelectorRule{
			{Type: pageturner.SelectorCSS, Selector: "div#missing"},
			{Type: pageturner.SelectorReadability},
		}
		extractor, err := ptgoquery.NewExtractor(rules, ptgoquery.WithAutoStrategy(auto))
		require.NoError(t, err)

		result, err := extractor.Extract("<html><body><p>whatever</p></body></html>")
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "auto detected")
	})

	t.Run("applies remove selectors to auto strategy output", func(t *testing.T) {
		t.Parallel()

		auto := &mock.Extractor{
			ExtractFn: func(html string) (*pageturner.ExtractResult, error) {
				return &pageturner.ExtractResult{
					ContentHTML:  `<div><p>story</p><div class="ad">ad copy</div></div>`,
					ContentFound: true,
				}, nil
			},
		}

		rules := []pageturner.SelectorRule{{Type: pageturner.SelectorReadability}}
		extractor, err := ptgoquery.NewExtractor(rules,
			ptgoquery.WithAutoStrategy(auto),
			ptgoquery.WithRemoveElements([]string{"div.ad"}),
		)
		require.NoError(t, err)

		result, err := extractor.Extract("<html><body></body></html>")
		require.NoError(t, err)

		require.True(t, result.ContentFound)
		assert.Contains(t, result.ContentHTML, "story")
		assert.NotContains(t, result.ContentHTML, "ad copy")
	})

	t.Run("skips readability rules when no strategy is configured", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		rules := []pageturner.SelectorRule{{Type: pageturner.SelectorReadability}}
		extractor, err := ptgoquery.NewExtractor(rules, ptgoquery.WithLogger(logger))
		require.NoError(t, err)

		result, err := extractor.Extract("<html><body><p>text</p></body></html>")
		require.NoError(t, err)

		assert.False(t, result.ContentFound)
		assert.Contains(t, buf.String(), "no automatic extraction strategy configured")
	})
}
