// Package render — JSON renderer.
// Emits the course page envelope with the record under "course".
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// JSONRenderer produces indented JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals page as indented JSON.
func (r *JSONRenderer) Render(page core.CoursePage) ([]byte, error) {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
