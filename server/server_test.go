package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/analyze"
	"github.com/gaurav-prasanna/citescore/mock"
	"github.com/gaurav-prasanna/citescore/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func urlAnalyzer(err error) *mock.Analyzer {
	return &mock.Analyzer{
		AnalyzeURLFn: func(ctx context.Context, rawURL string) (*core.Report, error) {
			return nil, err
		},
	}
}

func TestServer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("text request returns the report", func(t *testing.T) {
		t.Parallel()
		h := server.New(analyze.New(nil, nil), zerolog.Nop(), server.Options{})

		rec := post(t, h, `{"text": "Hello world. This is a test."}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var report core.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 6, report.Analysis.WordCount)
		assert.Equal(t, 2, report.Analysis.SentenceCount)
		assert.NotEmpty(t, report.ID)
		assert.Nil(t, report.Structure)
	})

	t.Run("structure included when enabled", func(t *testing.T) {
		t.Parallel()
		h := server.New(analyze.New(nil, nil), zerolog.Nop(), server.Options{IncludeStructure: true})

		rec := post(t, h, `{"text": "# Title\nBody text here."}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var report core.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Len(t, report.Structure, 2)
		assert.Equal(t, core.KindHeading, report.Structure[0].Kind)
	})

	t.Run("url request passes a deadline", func(t *testing.T) {
		t.Parallel()
		analyzer := &mock.Analyzer{
			AnalyzeURLFn: func(ctx context.Context, rawURL string) (*core.Report, error) {
				deadline, ok := ctx.Deadline()
				require.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
				return &core.Report{Source: rawURL}, nil
			},
		}
		h := server.New(analyzer, zerolog.Nop(), server.Options{DefaultTimeout: time.Minute, MaxTimeout: 2 * time.Second})

		rec := post(t, h, `{"url": " https://example.com/a ", "timeout_seconds": 30}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"source":"https://example.com/a"`)
	})

	t.Run("bad requests", func(t *testing.T) {
		t.Parallel()
		h := server.New(analyze.New(nil, nil), zerolog.Nop(), server.Options{})

		for _, body := range []string{
			`{"text": "a", "url": "https://example.com"}`,
			`{}`,
			`{"text": "   "}`,
			`not json`,
		} {
			rec := post(t, h, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Contains(t, rec.Body.String(), `"error"`)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		h := server.New(analyze.New(nil, nil), zerolog.Nop(), server.Options{MaxBodyBytes: 16})

		rec := post(t, h, `{"text": "`+strings.Repeat("a", 100)+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pipeline errors map to status codes", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			err  error
			want int
		}{
			{fmt.Errorf("fetch: %w", &core.FetchError{URL: "u", StatusCode: 404}), http.StatusBadGateway},
			{fmt.Errorf("fetch: %w", &core.FetchError{URL: "u", Err: context.DeadlineExceeded}), http.StatusGatewayTimeout},
			{fmt.Errorf("extract: %w", core.ErrEmptyContent), http.StatusUnprocessableEntity},
			{core.ErrInvalidURL, http.StatusBadRequest},
			{fmt.Errorf("boom"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			h := server.New(urlAnalyzer(tt.err), zerolog.Nop(), server.Options{})
			rec := post(t, h, `{"url": "https://example.com"}`)
			assert.Equal(t, tt.want, rec.Code, tt.err.Error())
		}
	})
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	h := server.New(analyze.New(nil, nil), zerolog.Nop(), server.Options{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
