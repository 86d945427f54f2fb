// Package cmd — analyze command.
// Orchestrates the pipeline for pasted text, files and URLs:
// fetch → extract → analyze → render → write.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/citescore/batch"
	"github.com/gaurav-prasanna/citescore/config"
	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/analyze"
	"github.com/gaurav-prasanna/citescore/core/extract"
	"github.com/gaurav-prasanna/citescore/core/fetch"
	"github.com/gaurav-prasanna/citescore/core/normalize"
	"github.com/gaurav-prasanna/citescore/core/output"
	"github.com/gaurav-prasanna/citescore/core/render"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagText            string
	flagFormat          string
	flagOutputDir       string
	flagTimeout         string
	flagIncludeText     bool
	flagMarkdownExtract bool
	flagConcurrency     int
	flagRPS             float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url|file|-]...",
	Short: "Analyze text, files or URLs and print a citability report",
	Long: `Analyze scores content for LLM citability. Sources are URLs (fetched and
reduced to their main content), text files, "-" for stdin, or --text.

Examples:
  citescore analyze https://example.com/article
  citescore analyze --text "Hello world. This is a test."
  citescore analyze draft.md --format json
  citescore analyze https://a.example/x https://b.example/y --format pdf --output_dir ./reports`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&flagText, "text", "", "Analyze this text instead of sources")
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "", "Output format: markdown, json or pdf (default from config: markdown)")
	analyzeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write one report file per source into this directory (default: stdout)")
	analyzeCmd.Flags().StringVar(&flagTimeout, "timeout", "", "Fetch timeout per URL, e.g. 15s")
	analyzeCmd.Flags().BoolVar(&flagIncludeText, "include-text", false, "Include the analyzed text in the report")
	analyzeCmd.Flags().BoolVar(&flagMarkdownExtract, "markdown-extract", false, "Convert page HTML to Markdown before analysis so headings and lists are detected")
	analyzeCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Sources analyzed in parallel")
	analyzeCmd.Flags().Float64Var(&flagRPS, "rps", -1, "Requests per second per host (0 disables limiting)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := applyAnalyzeFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	hasText := cmd.Flags().Changed("text")
	if hasText == (len(args) > 0) {
		return fmt.Errorf("provide either --text or at least one source (url, file or -)")
	}

	renderer, err := selectRenderer(cfg)
	if err != nil {
		return err
	}
	writer, err := output.New(cfg.Output.Dir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	analyzer := newAnalyzer(cfg)

	switch {
	case hasText:
		return analyzeText(analyzer, renderer, writer, "text", flagText)
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return analyzeText(analyzer, renderer, writer, "stdin", string(data))
	default:
		return analyzeSources(cmd.Context(), analyzer, renderer, writer, args)
	}
}

// applyAnalyzeFlags overlays explicitly set flags onto the loaded config.
func applyAnalyzeFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		c.Output.Format = strings.ToLower(flagFormat)
	}
	if flags.Changed("output_dir") {
		c.Output.Dir = flagOutputDir
	}
	if flags.Changed("timeout") {
		d, err := parseTimeout(flagTimeout)
		if err != nil {
			return err
		}
		c.Fetch.Timeout = d
	}
	if flags.Changed("include-text") {
		c.Output.IncludeText = flagIncludeText
	}
	if flags.Changed("markdown-extract") {
		c.Output.MarkdownExtract = flagMarkdownExtract
	}
	if flags.Changed("concurrency") {
		c.Batch.Concurrency = flagConcurrency
	}
	if flags.Changed("rps") {
		c.Batch.RPS = flagRPS
	}
	return nil
}

func analyzeText(analyzer *analyze.Analyzer, renderer core.Renderer, writer *output.Writer, source, text string) error {
	report, err := analyzer.AnalyzeText(source, text)
	if err != nil {
		return err
	}
	return writeReport(renderer, writer, report)
}

// analyzeSources runs URLs and files through the batch runner. A single
// failing source returns its own error; with several, failures are logged
// and summarized.
func analyzeSources(
	ctx context.Context,
	analyzer *analyze.Analyzer,
	renderer core.Renderer,
	writer *output.Writer,
	sources []string,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runner := &batch.Runner{
		Analyzer:    analyzer,
		Concurrency: cfg.Batch.Concurrency,
		Limiter:     batch.NewHostLimiter(cfg.Batch.RPS),
		Logger:      logger,
	}
	results := runner.Run(ctx, sources)

	if len(results) == 1 && results[0].Err != nil {
		return describe(results[0].Err)
	}

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		if res.Report.Title != "" && res.Report.Title != res.Source {
			logger.Info().Str("source", res.Source).Str("title", res.Report.Title).Msg("content extracted")
		}
		if err := writeReport(renderer, writer, res.Report); err != nil {
			logger.Error().Str("source", res.Source).Err(err).Msg("write failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d/%d sources failed", failed, len(results))
	}
	return nil
}

func writeReport(renderer core.Renderer, writer *output.Writer, report *core.Report) error {
	data, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	path, err := writer.Write(report.Source, data, renderer.Extension())
	if err != nil {
		return err
	}
	if !writer.ToStream() {
		logger.Info().Str("source", report.Source).Str("path", path).Msg("written")
	}
	return nil
}

// describe turns pipeline errors into user-facing messages.
func describe(err error) error {
	var fetchErr *core.FetchError
	switch {
	case errors.As(err, &fetchErr) && fetchErr.Timeout():
		return fmt.Errorf("timed out fetching %s: %w", fetchErr.URL, err)
	case errors.As(err, &fetchErr):
		return fmt.Errorf("network/HTTP error while fetching the URL: %w", err)
	case errors.Is(err, core.ErrEmptyContent):
		return fmt.Errorf("could not extract meaningful content from the provided URL: %w", err)
	default:
		return err
	}
}

// newAnalyzer builds the pipeline from configuration.
func newAnalyzer(c config.Config) *analyze.Analyzer {
	fetcher := fetch.New(
		fetch.WithTimeout(c.Fetch.Timeout),
		fetch.WithUserAgent(c.Fetch.UserAgent),
		fetch.WithLogger(logger),
	)

	var extractOpts []extract.Option
	if c.Output.MarkdownExtract {
		extractOpts = append(extractOpts, extract.WithMarkdown(normalize.New()))
	}

	return analyze.New(fetcher, extract.New(extractOpts...),
		analyze.WithCitationMarkers(c.CitationMarkers()),
	)
}

// selectRenderer creates the Renderer for the configured format.
func selectRenderer(c config.Config) (core.Renderer, error) {
	switch c.Output.Format {
	case "markdown":
		return render.NewMarkdownRenderer(c.Output.IncludeText), nil
	case "json":
		return render.NewJSONRenderer(true), nil
	case "pdf":
		return render.NewPDFRenderer(c.Output.IncludeText), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
