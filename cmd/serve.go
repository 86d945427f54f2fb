// Package cmd — serve command.
// Runs the analysis pipeline behind an HTTP API until interrupted.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gaurav-prasanna/citescore/server"
	"github.com/spf13/cobra"
)

var (
	flagAddr             string
	flagServeTimeout     string
	flagIncludeStructure bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Long: `Serve exposes POST /analyze, accepting {"text": "..."} or
{"url": "...", "timeout_seconds": 15} and returning the JSON report.

Examples:
  citescore serve --addr :8080
  curl -d '{"text":"Hello world. This is a test."}' localhost:8080/analyze`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config: :8080)")
	serveCmd.Flags().StringVar(&flagServeTimeout, "timeout", "", "Default fetch timeout for URL requests, e.g. 15s")
	serveCmd.Flags().BoolVar(&flagIncludeStructure, "structure", false, "Include the per-line outline in responses")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = flagAddr
	}
	if cmd.Flags().Changed("timeout") {
		d, err := parseTimeout(flagServeTimeout)
		if err != nil {
			return err
		}
		cfg.Fetch.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Per-request deadlines come from the handler; the client timeout is the
	// upper bound a request may ask for.
	handler := server.New(newAnalyzer(cfg), logger, server.Options{
		DefaultTimeout:   cfg.Fetch.Timeout,
		MaxTimeout:       cfg.Fetch.Timeout,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		IncludeStructure: flagIncludeStructure,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// parseTimeout accepts a Go duration ("15s") or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("timeout must be positive (got %s)", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive (got %s)", s)
	}
	return d, nil
}
