package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/gaurav-prasanna/citescore/config"
	"github.com/gaurav-prasanna/citescore/core"
	"github.com/gaurav-prasanna/citescore/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"15s", 15 * time.Second, false},
		{"10", 10 * time.Second, false},
		{"0.5", 500 * time.Millisecond, false},
		{"0", 0, true},
		{"-3s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseTimeout(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	timeout := describe(fmt.Errorf("fetch: %w", &core.FetchError{URL: "https://slow.example", Err: errDeadline{}}))
	assert.Contains(t, timeout.Error(), "timed out fetching https://slow.example")

	status := describe(fmt.Errorf("fetch: %w", &core.FetchError{URL: "https://example.com", StatusCode: 503}))
	assert.Contains(t, status.Error(), "network/HTTP error")

	empty := describe(fmt.Errorf("extract: %w", core.ErrEmptyContent))
	assert.Contains(t, empty.Error(), "could not extract meaningful content from the provided URL")
	assert.ErrorIs(t, empty, core.ErrEmptyContent)
}

// errDeadline is a net.Error that reports a timeout.
type errDeadline struct{}

func (errDeadline) Error() string   { return "i/o timeout" }
func (errDeadline) Timeout() bool   { return true }
func (errDeadline) Temporary() bool { return true }

func TestSelectRenderer(t *testing.T) {
	t.Parallel()

	c := config.Default()
	r, err := selectRenderer(c)
	require.NoError(t, err)
	assert.IsType(t, &render.MarkdownRenderer{}, r)

	c.Output.Format = "json"
	r, err = selectRenderer(c)
	require.NoError(t, err)
	assert.Equal(t, ".json", r.Extension())

	c.Output.Format = "pdf"
	r, err = selectRenderer(c)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", r.Extension())
}

func TestAnalyzeCommand_Text(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"analyze", "--text", "Hello world. This is a test.", "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var report core.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "text", report.Source)
	assert.Equal(t, 6, report.Analysis.WordCount)
	assert.Equal(t, 2, report.Analysis.SentenceCount)
	assert.NotEmpty(t, report.Analysis.Recommendations)
}
