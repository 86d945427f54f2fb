// Package analyze wires the text pipeline together:
// segment → classify → metrics → recommend.
// It also drives the URL entry point: fetch → extract → analyze.
package analyze

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/classify"
	"github.com/gaurav-prasanna/citescore/core/metrics"
	"github.com/gaurav-prasanna/citescore/core/recommend"
	"github.com/gaurav-prasanna/citescore/core/segment"
	"github.com/google/uuid"
)

var _ core.Analyzer = (*Analyzer)(nil)

// Analyzer runs analyses. It holds no mutable state, so one Analyzer may
// serve concurrent callers.
type Analyzer struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	markers   []string
	now       func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCitationMarkers replaces the attribution phrases counted as citations.
func WithCitationMarkers(markers []string) Option {
	return func(a *Analyzer) {
		a.markers = markers
	}
}

// WithClock sets the time source for Report.AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// New creates an Analyzer. fetcher and extractor are only needed for
// AnalyzeURL and may be nil for text-only use.
func New(fetcher core.Fetcher, extractor core.Extractor, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:   fetcher,
		extractor: extractor,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Text computes the metrics and recommendations for text. It accepts any
// string, including the empty one, and never fails.
func (a *Analyzer) Text(text string) core.AnalysisResult {
	clean := strings.TrimSpace(text)

	result := metrics.Compute(metrics.Input{
		Text:       clean,
		Words:      segment.Words(clean),
		Sentences:  segment.Sentences(clean),
		Paragraphs: segment.Paragraphs(clean),
		Structure:  classify.Count(segment.Lines(text)),
	}, a.markers)
	result.Recommendations = recommend.Evaluate(result)
	return result
}

// AnalyzeText builds a report for pasted text. Blank text is rejected with
// core.ErrEmptyInput before it reaches the pipeline.
func (a *Analyzer) AnalyzeText(source, text string) (*core.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrEmptyInput
	}
	return a.report(source, "", text), nil
}

// AnalyzeURL fetches rawURL, extracts its main text and analyzes it.
// Fetch failures surface as *core.FetchError and pages without text as
// core.ErrEmptyContent; in both cases nothing is analyzed.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*core.Report, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if a.fetcher == nil || a.extractor == nil {
		return nil, fmt.Errorf("analyzer has no fetcher or extractor configured")
	}

	result, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	page, err := a.extractor.Extract(result.HTML, rawURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return a.report(rawURL, page.Title, page.Text), nil
}

func (a *Analyzer) report(source, title, text string) *core.Report {
	return &core.Report{
		ID:         uuid.NewString(),
		Source:     source,
		Title:      title,
		Text:       text,
		AnalyzedAt: a.now().UTC(),
		Analysis:   a.Text(text),
		Structure:  classify.Label(segment.Lines(text)),
	}
}

// ValidateURL checks that rawURL has an http or https scheme and a host.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %s (must include scheme, e.g. https://example.com)", core.ErrInvalidURL, rawURL)
	}
	return nil
}
