// Package extract implements the Extractor interface.
// It isolates the main text of a full HTML page by:
//  1. Removing script, style, noscript and iframe subtrees
//  2. Collecting the first <article>, the first <main>, or else <body>
//  3. Keeping the candidate with the most text
//  4. Flattening it into blank-line separated paragraphs
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/citescore/core"
	"golang.org/x/net/html"
)

// noiseSelector matches elements removed before any text is read.
const noiseSelector = "script, style, noscript, iframe"

var _ core.Extractor = (*HTMLExtractor)(nil)

// Candidate is a possible main-content node scored by its text length.
type Candidate struct {
	Label      string
	TextLength int
}

// HTMLExtractor pulls the densest content node out of an HTML page.
type HTMLExtractor struct {
	normalizer core.Normalizer
}

// Option configures an HTMLExtractor.
type Option func(*HTMLExtractor)

// WithMarkdown converts the chosen node to Markdown before flattening it, so
// headings and list items surface as "#" and "-" lines.
func WithMarkdown(n core.Normalizer) Option {
	return func(e *HTMLExtractor) {
		e.normalizer = n
	}
}

// New creates an HTMLExtractor.
func New(opts ...Option) *HTMLExtractor {
	e := &HTMLExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the title and main text of the page. It fails with
// core.ErrEmptyContent when no visible text remains.
func (e *HTMLExtractor) Extract(rawHTML string, pageURL string) (*core.ExtractedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	nodes, candidates := collectCandidates(doc)
	best := nodes[SelectCandidate(candidates)]

	var text string
	if e.normalizer != nil {
		fragment, err := goquery.OuterHtml(best)
		if err != nil {
			return nil, fmt.Errorf("serializing content: %w", err)
		}
		markdown, err := e.normalizer.Normalize(fragment)
		if err != nil {
			return nil, err
		}
		text = paragraphs(markdown)
	} else {
		text = paragraphs(strings.Join(textRuns(best), "\n"))
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w from %s", core.ErrEmptyContent, pageURL)
	}

	return &core.ExtractedPage{
		Title: pageTitle(doc, pageURL),
		Text:  text,
	}, nil
}

// collectCandidates returns the first <article> and the first <main> when
// present, and only when neither exists the <body> (or the whole document).
func collectCandidates(doc *goquery.Document) ([]*goquery.Selection, []Candidate) {
	var nodes []*goquery.Selection
	var candidates []Candidate

	add := func(label string, sel *goquery.Selection) {
		nodes = append(nodes, sel)
		candidates = append(candidates, Candidate{
			Label:      label,
			TextLength: utf8.RuneCountInString(strings.Join(textRuns(sel), " ")),
		})
	}

	for _, tag := range []string{"article", "main"} {
		if sel := doc.Find(tag).First(); sel.Length() > 0 {
			add(tag, sel)
		}
	}
	if len(nodes) == 0 {
		if body := doc.Find("body").First(); body.Length() > 0 {
			add("body", body)
		} else {
			add("document", doc.Selection)
		}
	}
	return nodes, candidates
}

// SelectCandidate returns the index of the candidate with the most text.
// Ties keep the earlier candidate. It panics on an empty slice.
func SelectCandidate(candidates []Candidate) int {
	best := 0
	for i, c := range candidates[1:] {
		if c.TextLength > candidates[best].TextLength {
			best = i + 1
		}
	}
	return best
}

// textRuns returns the trimmed, non-empty text nodes under sel in document
// order. Comments are skipped.
func textRuns(sel *goquery.Selection) []string {
	var runs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				runs = append(runs, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return runs
}

// paragraphs collapses whitespace inside each line, drops blank lines and
// joins the rest with a blank line.
func paragraphs(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if l := strings.Join(strings.Fields(line), " "); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n\n")
}

// pageTitle returns the <title> text, or pageURL when it is missing or blank.
func pageTitle(doc *goquery.Document, pageURL string) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return pageURL
}
