// Package render — JSON renderer.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/erik-winther/tagpipe/core"
)

// JSONRenderer produces the report as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the report.
func (r *JSONRenderer) Render(rep *core.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON report: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
