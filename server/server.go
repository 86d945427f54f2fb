// Package server exposes the analysis pipeline over HTTP.
//
//	POST /analyze   {"text": "..."} or {"url": "...", "timeout_seconds": 10}
//	GET  /healthz
//
// Each request runs its own pipeline; handlers share no mutable state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options tunes the handler.
type Options struct {
	// DefaultTimeout bounds URL fetches when the request sets none.
	DefaultTimeout time.Duration
	// MaxTimeout caps timeout_seconds from clients. Zero means no cap.
	MaxTimeout time.Duration
	// MaxBodyBytes caps the request body. Zero means 5 MiB.
	MaxBodyBytes int64
	// IncludeStructure adds the per-line outline to responses.
	IncludeStructure bool
}

type analyzeRequest struct {
	Text           string  `json:"text"`
	URL            string  `json:"url"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	analyzer core.Analyzer
	opts     Options
	logger   zerolog.Logger
}

// New returns the HTTP handler for the service.
func New(analyzer core.Analyzer, logger zerolog.Logger, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 5 << 20
	}
	h := &handler{analyzer: analyzer, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/analyze", h.analyze)

	return r
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	hasText := strings.TrimSpace(req.Text) != ""
	hasURL := strings.TrimSpace(req.URL) != ""
	if hasText == hasURL {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `exactly one of "text" or "url" is required`})
		return
	}

	var (
		report *core.Report
		err    error
	)
	if hasText {
		report, err = h.analyzer.AnalyzeText("text", req.Text)
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout(req.TimeoutSeconds))
		defer cancel()
		report, err = h.analyzer.AnalyzeURL(ctx, strings.TrimSpace(req.URL))
	}
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	if !h.opts.IncludeStructure {
		report.Structure = nil
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) timeout(seconds float64) time.Duration {
	d := h.opts.DefaultTimeout
	if seconds > 0 {
		d = time.Duration(seconds * float64(time.Second))
	}
	if h.opts.MaxTimeout > 0 && d > h.opts.MaxTimeout {
		d = h.opts.MaxTimeout
	}
	if d <= 0 {
		d = 15 * time.Second
	}
	return d
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var fetchErr *core.FetchError
	switch {
	case errors.Is(err, core.ErrEmptyInput), errors.Is(err, core.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrEmptyContent):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr) && fetchErr.Timeout():
		return http.StatusGatewayTimeout
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
