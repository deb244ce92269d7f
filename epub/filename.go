package epub

import (
	"regexp"
	"strings"
)

var (
	nonWord        = regexp.MustCompile(`[^\w-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// Filename derives an output filename from a novel title: lowercase,
// spaces become underscores, punctuation is stripped, runs of
// separators collapse, and the .epub extension is appended.
func Filename(title string) string {
	name := strings.ToLower(title)
	name = strings.ReplaceAll(name, " ", "_")
	name = nonWord.ReplaceAllString(name, "")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "_-")
	return name + ".epub"
}
