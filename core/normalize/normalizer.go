// Package normalize implements the Normalizer interface.
// It converts the chosen content node into Markdown so that structural
// markup (headings, lists) survives as line prefixes the classifier reads.
// Link targets are kept, which lets inline hyperlinks count as URLs.
package normalize

import (
	"fmt"
	"regexp"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/citescore/core"
)

var (
	// imageRegex matches Markdown images; they carry no analyzable prose.
	imageRegex = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

	// escapeRegex matches the backslash escapes html-to-markdown adds to
	// literal punctuation such as "1\." or "\*".
	escapeRegex = regexp.MustCompile(`\\([\\.*_\-+#\[\]()!>|` + "`" + `])`)
)

var _ core.Normalizer = (*MarkdownNormalizer)(nil)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown with images dropped and
// punctuation escapes removed.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = imageRegex.ReplaceAllString(markdown, "")
	return escapeRegex.ReplaceAllString(markdown, "$1"), nil
}
