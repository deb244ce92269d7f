package pageturner

import "regexp"

// Selector rule types. Unsupported types in the content list are
// skipped with a warning at extraction time rather than failing the
// run, so configurations stay forward compatible.
const (
	SelectorCSS         = "css_selector"
	SelectorReadability = "readability"
)

// NavigationURLPattern is the navigation rule type implemented by the
// URL-increment navigator.
const NavigationURLPattern = "url_pattern"

// Default values applied by Config.Normalize.
const (
	DefaultAuthor         = "Unknown"
	DefaultLanguage       = "en"
	DefaultEmptyThreshold = 3
	DefaultIncrement      = 1
)

// SelectorRule is one content-selection strategy. Rules are applied in
// configured order and the first rule that matches wins.
type SelectorRule struct {
	Type     string `yaml:"type"`
	Selector string `yaml:"selector"`
}

// NavigationRule configures how the next chapter URL is derived.
//
// Pattern must contain capturing groups locating a numeric chapter
// index within the URL. SegmentGroup and NumberGroup name the
// replaceable-segment group and the chapter-number group explicitly.
// When both are zero the historical positional convention applies:
// with two or more groups the number is group 2 and the segment is
// group 1; with exactly one group that group is both.
type NavigationRule struct {
	Type         string `yaml:"type"`
	Pattern      string `yaml:"pattern"`
	IncrementBy  int    `yaml:"increment_by"`
	SegmentGroup int    `yaml:"segment_group"`
	NumberGroup  int    `yaml:"number_group"`
}

// Config is the full per-novel configuration, loaded once and shared
// read-only for the whole run.
type Config struct {
	NovelTitle           string           `yaml:"novel_title"`
	NovelAuthor          string           `yaml:"novel_author"`
	Language             string           `yaml:"language"`
	StartURL             string           `yaml:"start_url"`
	ContentSelectors     []SelectorRule   `yaml:"content_selectors"`
	RemoveElements       []string         `yaml:"remove_elements"`
	ChapterTitleSelector string           `yaml:"chapter_title_selector"`
	NextChapterSelectors []NavigationRule `yaml:"next_chapter_selectors"`
	CoverImageURL        string           `yaml:"cover_image_url"`
	EmptyThreshold       int              `yaml:"consecutive_empty_chapters_threshold"`
	RequestIntervalMS    int              `yaml:"request_interval_ms"`
}

// Normalize fills in defaults for optional fields.
func (c *Config) Normalize() {
	if c.NovelAuthor == "" {
		c.NovelAuthor = DefaultAuthor
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.EmptyThreshold <= 0 {
		c.EmptyThreshold = DefaultEmptyThreshold
	}
	for i := range c.NextChapterSelectors {
		if c.NextChapterSelectors[i].IncrementBy == 0 {
			c.NextChapterSelectors[i].IncrementBy = DefaultIncrement
		}
	}
}

// URLPatternRule returns the first url_pattern navigation rule, or nil
// if none is configured.
func (c *Config) URLPatternRule() *NavigationRule {
	for i := range c.NextChapterSelectors {
		if c.NextChapterSelectors[i].Type == NavigationURLPattern {
			return &c.NextChapterSelectors[i]
		}
	}
	return nil
}

// Validate returns an ECONFIG error if the configuration is missing
// required keys. It runs once before any network activity.
func (c *Config) Validate() error {
	if c.NovelTitle == "" {
		return Errorf(ECONFIG, "novel_title is required")
	}
	if c.StartURL == "" {
		return Errorf(ECONFIG, "start_url is required")
	}
	if len(c.ContentSelectors) == 0 {
		return Errorf(ECONFIG, "content_selectors must not be empty")
	}
	rule := c.URLPatternRule()
	if rule == nil {
		return Errorf(ECONFIG, "next_chapter_selectors must contain a %q rule", NavigationURLPattern)
	}
	return rule.Validate()
}

// Validate checks the navigation rule's pattern and group indexes.
func (r *NavigationRule) Validate() error {
	if r.Pattern == "" {
		return Errorf(ECONFIG, "navigation rule pattern is required")
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return Errorf(ECONFIG, "invalid navigation pattern %q: %v", r.Pattern, err)
	}
	groups := re.NumSubexp()
	if groups == 0 {
		return Errorf(ECONFIG, "navigation pattern %q has no capturing group", r.Pattern)
	}
	if r.SegmentGroup < 0 || r.SegmentGroup > groups {
		return Errorf(ECONFIG, "segment_group %d out of range for pattern with %d group(s)", r.SegmentGroup, groups)
	}
	if r.NumberGroup < 0 || r.NumberGroup > groups {
		return Errorf(ECONFIG, "number_group %d out of range for pattern with %d group(s)", r.NumberGroup, groups)
	}
	return nil
}
