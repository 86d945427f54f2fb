// Package core defines the analysis records and pipeline interfaces for citescore.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// AnalysisResult holds the metrics and recommendations for one body of text.
// It is built once per analysis and never mutated afterwards.
type AnalysisResult struct {
	WordCount         int      `json:"word_count"`
	SentenceCount     int      `json:"sentence_count"`
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	ParagraphCount    int      `json:"paragraph_count"`
	LongParagraphs    int      `json:"long_paragraphs"`
	HeadingRatio      float64  `json:"heading_ratio"`
	ListRatio         float64  `json:"list_ratio"`
	NumbersCount      int      `json:"numbers_count"`
	URLCount          int      `json:"url_count"`
	CitationLikeCount int      `json:"citation_like_count"`
	TypeTokenRatio    float64  `json:"type_token_ratio"`
	RepetitionScore   float64  `json:"repetition_score"`
	Recommendations   []string `json:"recommendations"`
}

// ExtractedPage is the plain text and title pulled out of an HTML page.
type ExtractedPage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// LineKind labels a single non-blank line.
type LineKind string

const (
	KindHeading  LineKind = "heading"
	KindListItem LineKind = "list-item"
	KindPlain    LineKind = "plain"
)

// LineLabel pairs a non-blank line with its structural label.
type LineLabel struct {
	Line string   `json:"line"`
	Kind LineKind `json:"kind"`
}

// Report is everything a renderer or API client needs about one analysis.
type Report struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Title      string         `json:"title,omitempty"`
	Text       string         `json:"text"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	Analysis   AnalysisResult `json:"analysis"`
	Structure  []LineLabel    `json:"structure,omitempty"`
}

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content of an HTML page as plain text.
// pageURL is used as the title when the page has none.
type Extractor interface {
	Extract(html string, pageURL string) (*ExtractedPage, error)
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Analyzer produces reports from pasted text or from a URL.
type Analyzer interface {
	AnalyzeText(source, text string) (*Report, error)
	AnalyzeURL(ctx context.Context, url string) (*Report, error)
}

// Renderer converts a Report into a final output format.
type Renderer interface {
	Render(report *Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
