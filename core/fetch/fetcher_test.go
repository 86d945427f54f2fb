package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends browser user agent", func(t *testing.T) {
		t.Parallel()
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>Hi</p></body></html>"))
		}))
		t.Cleanup(srv.Close)

		result, err := fetch.New().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, srv.URL, result.URL)
		assert.Contains(t, result.HTML, "<p>Hi</p>")
		assert.Equal(t, fetch.DefaultUserAgent, gotUA)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		t.Cleanup(srv.Close)

		_, err := fetch.New(fetch.WithUserAgent("citescore-test")).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "citescore-test", gotUA)
	})

	t.Run("non-2xx is a fetch error with status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		t.Cleanup(srv.Close)

		_, err := fetch.New().Fetch(context.Background(), srv.URL)
		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
		assert.False(t, fetchErr.Timeout())
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("slow server times out", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		_, err := fetch.New(fetch.WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Zero(t, fetchErr.StatusCode)
		assert.True(t, fetchErr.Timeout())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetch.New().Fetch(ctx, srv.URL)
		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, fetchErr.Timeout())
	})

	t.Run("decodes declared charset to utf-8", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		t.Cleanup(srv.Close)

		result, err := fetch.New().Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, result.HTML, "café")
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		_, err := fetch.New().Fetch(context.Background(), "://missing-scheme")
		assert.ErrorIs(t, err, core.ErrInvalidURL)
	})

	t.Run("unresolvable host", func(t *testing.T) {
		t.Parallel()
		_, err := fetch.New(fetch.WithTimeout(5*time.Second)).Fetch(context.Background(), "http://citescore.invalid/")
		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Zero(t, fetchErr.StatusCode)
	})
}
