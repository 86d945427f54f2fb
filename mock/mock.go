// Package mock provides function-field implementations of the core
// interfaces for tests.
package mock

import (
	"context"

	"github.com/gaurav-prasanna/citescore/core"
)

var _ core.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of core.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*core.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ core.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of core.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*core.ExtractedPage, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*core.ExtractedPage, error) {
	return e.ExtractFn(html, pageURL)
}

var _ core.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of core.Analyzer.
type Analyzer struct {
	AnalyzeTextFn func(source, text string) (*core.Report, error)
	AnalyzeURLFn  func(ctx context.Context, url string) (*core.Report, error)
}

func (a *Analyzer) AnalyzeText(source, text string) (*core.Report, error) {
	return a.AnalyzeTextFn(source, text)
}

func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) (*core.Report, error) {
	return a.AnalyzeURLFn(ctx, url)
}
