// Package batch analyzes many sources (URLs or text files) with bounded
// concurrency. Each source runs its own independent pipeline; one failing
// source never stops the others.
package batch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Result is the outcome for one source. Exactly one of Report and Err is set.
type Result struct {
	Source string
	Report *core.Report
	Err    error
}

// Runner fans sources out to an Analyzer.
type Runner struct {
	Analyzer    core.Analyzer
	Concurrency int
	Limiter     *HostLimiter
	Logger      zerolog.Logger

	// ReadFile loads text sources. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Run analyzes each unique source and returns results in input order with
// duplicates removed. It only returns early when ctx is cancelled, in which
// case unfinished sources carry ctx's error.
func (r *Runner) Run(ctx context.Context, sources []string) []Result {
	queue := NewQueue()
	for _, s := range sources {
		queue.Add(s)
	}
	unique := queue.All()

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, source := range unique {
		g.Go(func() error {
			start := time.Now()
			report, err := r.analyze(gctx, source)
			results[i] = Result{Source: source, Report: report, Err: err}
			if err != nil {
				r.Logger.Warn().Str("source", source).Err(err).Msg("analysis failed")
				return nil
			}
			r.Logger.Debug().
				Str("source", source).
				Int("words", report.Analysis.WordCount).
				Dur("duration", time.Since(start)).
				Msg("analyzed")
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) analyze(ctx context.Context, source string) (*core.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !IsURL(source) {
		readFile := r.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		data, err := readFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return r.Analyzer.AnalyzeText(source, string(data))
	}

	if IsStaticAsset(source) {
		return nil, fmt.Errorf("%w: %s is not an HTML page", core.ErrInvalidURL, source)
	}
	if err := r.Limiter.Wait(ctx, Host(source)); err != nil {
		return nil, err
	}
	return r.Analyzer.AnalyzeURL(ctx, source)
}
