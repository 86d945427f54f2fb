// Package output handles file naming and writing for reports.
// Without an output directory reports go to the provided stream; with one,
// file names are derived from the source (e.g. example_com_docs_intro.md).
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered reports to a directory or a stream.
type Writer struct {
	OutputDir string
	stream    io.Writer
}

// New creates a Writer. If outputDir is empty, reports are written to
// stream; otherwise the directory is created if needed.
func New(outputDir string, stream io.Writer) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir, stream: stream}, nil
}

// ToStream reports whether the writer sends output to its stream.
func (w *Writer) ToStream() bool {
	return w.OutputDir == ""
}

// Write stores one rendered report and returns where it went ("-" for the
// stream). source is a URL, a file path or a label such as "text".
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	if w.ToStream() {
		if _, err := w.stream.Write(data); err != nil {
			return "", fmt.Errorf("writing report: %w", err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, _ = io.WriteString(w.stream, "\n")
		}
		return "-", nil
	}

	path := filepath.Join(w.OutputDir, Filename(source)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename converts a source into a flat file name.
// Example: https://example.com/docs/intro → example_com_docs_intro
// Example: notes/draft.txt → draft_txt
func Filename(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		name := sanitize(filepath.Base(source))
		if strings.Trim(name, "_") == "" {
			return "report"
		}
		return name
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
