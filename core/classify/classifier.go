// Package classify labels lines of text as headings, list items or plain
// prose. Each rule is an independent predicate over a single line.
package classify

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/segment"
)

// maxHeadingWords is the word limit under which an unterminated line is
// presumed to be a title.
const maxHeadingWords = 8

var (
	htmlHeadingRegex = regexp.MustCompile(`(?i)^<h[1-6]>.*</h[1-6]>`)
	listItemRegex    = regexp.MustCompile(`^[-*•]\s+`)
)

// IsHeading reports whether the line looks like a heading: a Markdown '#'
// marker, an inline <hN>…</hN> pair, or a short line without a final period.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return true
	}
	if htmlHeadingRegex.MatchString(line) {
		return true
	}
	return len(strings.Fields(line)) <= maxHeadingWords && !strings.HasSuffix(line, ".")
}

// IsListItem reports whether the trimmed line starts with a bullet marker
// followed by whitespace.
func IsListItem(line string) bool {
	return listItemRegex.MatchString(strings.TrimSpace(line))
}

// Classify returns the single label for a non-blank line. Headings win over
// list items.
func Classify(line string) core.LineKind {
	switch {
	case IsHeading(line):
		return core.KindHeading
	case IsListItem(line):
		return core.KindListItem
	default:
		return core.KindPlain
	}
}

// Label classifies every non-blank line, preserving input order.
func Label(lines []string) []core.LineLabel {
	labels := make([]core.LineLabel, 0, len(lines))
	for _, line := range lines {
		if segment.IsBlank(line) {
			continue
		}
		labels = append(labels, core.LineLabel{
			Line: strings.TrimSpace(line),
			Kind: Classify(line),
		})
	}
	return labels
}

// Counts holds structural tallies over the non-blank lines of a text.
type Counts struct {
	Headings  int
	ListItems int
}

// Count tallies headings and list items over the non-blank lines. The two
// predicates are applied independently, so a short bullet line such as
// "- fast setup" counts toward both.
func Count(lines []string) Counts {
	var c Counts
	for _, line := range lines {
		if segment.IsBlank(line) {
			continue
		}
		if IsHeading(line) {
			c.Headings++
		}
		if IsListItem(line) {
			c.ListItems++
		}
	}
	return c
}
