// Package render — JSON renderer.
// Emits the report as-is: metrics are not rounded or clamped, so the output
// is the raw record a client can post-process.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/citescore/core"
)

// JSONRenderer produces the report as indented JSON.
type JSONRenderer struct {
	// IncludeStructure keeps the per-line outline in the output.
	IncludeStructure bool
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(includeStructure bool) *JSONRenderer {
	return &JSONRenderer{IncludeStructure: includeStructure}
}

// Render marshals the report.
func (r *JSONRenderer) Render(report *core.Report) ([]byte, error) {
	out := *report
	if !r.IncludeStructure {
		out.Structure = nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
