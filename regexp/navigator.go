// Package regexp provides the URL-increment implementation of
// pageturner.Navigator: the next chapter URL is computed by locating a
// numeric token in the current URL and incrementing it.
package regexp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/pageturner"
)

// digitRun matches the first run of digits inside the replaceable
// segment. Only that run is substituted, so unrelated numbers
// elsewhere in the segment survive.
var digitRun = regexp.MustCompile(`\d+`)

// Ensure Navigator implements pageturner.Navigator at compile time.
var _ pageturner.Navigator = (*Navigator)(nil)

// Navigator computes next-chapter URLs from a pattern with capturing
// groups. The group carrying the chapter number and the group marking
// the replaceable segment may be named explicitly in the rule; when
// they are not, the historical positional convention applies: with two
// or more groups the number is group 2 and the segment group 1, with
// exactly one group that group serves as both.
type Navigator struct {
	startURL     string
	pattern      *regexp.Regexp
	increment    int
	segmentGroup int
	numberGroup  int
}

// NewNavigator creates a Navigator from a url_pattern rule.
func NewNavigator(startURL string, rule pageturner.NavigationRule) (*Navigator, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	pattern, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, pageturner.Errorf(pageturner.ECONFIG, "invalid navigation pattern %q: %v", rule.Pattern, err)
	}

	segment, number := 1, 1
	if pattern.NumSubexp() >= 2 {
		number = 2
	}
	if rule.SegmentGroup > 0 {
		segment = rule.SegmentGroup
	}
	if rule.NumberGroup > 0 {
		number = rule.NumberGroup
	}

	// The increment is taken as configured; Config.Normalize applies
	// the default of 1 for omitted values. A zero increment trips the
	// unchanged-URL guard on the first call.
	return &Navigator{
		startURL:     startURL,
		pattern:      pattern,
		increment:    rule.IncrementBy,
		segmentGroup: segment,
		numberGroup:  number,
	}, nil
}

// StartURL returns the configured first chapter URL.
func (n *Navigator) StartURL() string {
	return n.startURL
}

// NextURL computes the URL following current. It returns ENOTFOUND
// when the pattern no longer matches or the computed URL would not
// change, and EINVALID when the matched chapter token is not an
// integer. All of these end the sequence.
func (n *Navigator) NextURL(current string) (string, error) {
	match := n.pattern.FindStringSubmatch(current)
	if match == nil {
		return "", pageturner.Errorf(pageturner.ENOTFOUND, "pattern %q not found in %q", n.pattern.String(), current)
	}

	segment := match[n.segmentGroup]
	number, err := strconv.Atoi(match[n.numberGroup])
	if err != nil {
		return "", pageturner.Errorf(pageturner.EINVALID, "chapter token %q in %q is not an integer", match[n.numberGroup], current)
	}

	next := number + n.increment
	loc := digitRun.FindStringIndex(segment)
	if loc == nil {
		return "", pageturner.Errorf(pageturner.EINVALID, "segment %q contains no digits to increment", segment)
	}
	newSegment := segment[:loc[0]] + strconv.Itoa(next) + segment[loc[1]:]

	nextURL := strings.Replace(current, segment, newSegment, 1)
	if nextURL == current {
		return "", pageturner.Errorf(pageturner.ENOTFOUND, "computed next URL equals current URL %q", current)
	}

	return nextURL, nil
}
