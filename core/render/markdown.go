// Package render provides output renderers for analysis reports.
// This file implements the Markdown renderer; the PDF renderer lays out
// the same Markdown.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/recommend"
)

const (
	barWidth = 20

	noRecommendations = "No recommendations generated. The content already matches the basic heuristics defined."
)

// MarkdownRenderer writes a human-readable report. Values are rounded and
// ratio bars are clamped for display only.
type MarkdownRenderer struct {
	// IncludeText appends the analyzed text to the report.
	IncludeText bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(includeText bool) *MarkdownRenderer {
	return &MarkdownRenderer{IncludeText: includeText}
}

// Render formats the report as Markdown.
func (r *MarkdownRenderer) Render(report *core.Report) ([]byte, error) {
	m := report.Analysis
	var b strings.Builder

	heading := report.Title
	if heading == "" {
		heading = report.Source
	}
	fmt.Fprintf(&b, "# Citability report: %s\n\n", heading)
	fmt.Fprintf(&b, "Source: %s\n\n", report.Source)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format(time.RFC3339))

	b.WriteString("## Metrics summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	rows := [][2]string{
		{"Words", fmt.Sprint(m.WordCount)},
		{"Sentences", fmt.Sprint(m.SentenceCount)},
		{"Paragraphs", fmt.Sprint(m.ParagraphCount)},
		{"Avg. sentence length", fmt.Sprintf("%.1f", m.AvgSentenceLength)},
		{"Very long paragraphs", fmt.Sprint(m.LongParagraphs)},
		{"Repetition score", fmt.Sprintf("%.2f", m.RepetitionScore)},
		{"Numbers detected", fmt.Sprint(m.NumbersCount)},
		{"URLs in text", fmt.Sprint(m.URLCount)},
		{"Citation-like patterns", fmt.Sprint(m.CitationLikeCount)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}

	b.WriteString("\n## Structure and LLM signals\n\n")
	fmt.Fprintf(&b, "- Headings per paragraph: `%.2f` (target >= %.2f) %s\n",
		m.HeadingRatio, recommend.MinHeadingRatio, bar(m.HeadingRatio))
	fmt.Fprintf(&b, "- Lists per paragraph: `%.2f` (target >= %.2f) %s\n",
		m.ListRatio, recommend.MinListRatio, bar(m.ListRatio))

	b.WriteString("\n## Lexical diversity\n\n")
	fmt.Fprintf(&b, "Type-token ratio: `%.3f` (unique words / total words)\n", m.TypeTokenRatio)

	b.WriteString("\n## Recommendations\n\n")
	if len(m.Recommendations) == 0 {
		b.WriteString(noRecommendations + "\n")
	}
	for _, rec := range m.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	if headings := headingLines(report.Structure); len(headings) > 0 {
		b.WriteString("\n## Detected headings\n\n")
		for _, h := range headings {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	if r.IncludeText {
		b.WriteString("\n## Analyzed text\n\n```\n")
		b.WriteString(report.Text)
		b.WriteString("\n```\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// bar draws a progress bar for a ratio, clamped to [0, 1].
func bar(ratio float64) string {
	filled := int(min(1, max(0, ratio)) * barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

// headingLines returns the lines labelled as headings with any leading
// '#' markers stripped.
func headingLines(labels []core.LineLabel) []string {
	var out []string
	for _, l := range labels {
		if l.Kind != core.KindHeading {
			continue
		}
		if h := strings.TrimSpace(strings.TrimLeft(l.Line, "#")); h != "" {
			out = append(out, h)
		}
	}
	return out
}
