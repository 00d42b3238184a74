// Package render turns analysis results into text, tables or JSON.
package render

import (
	"fmt"
	"io"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatTable, FormatJSON}

// Renderer writes reports to an output
type Renderer interface {
	Profile(w io.Writer, r *analyzer.ProfileReport) error
	Comparison(w io.Writer, c *benchmark.Comparison) error
}

// New returns the renderer for format
func New(format string) (Renderer, error) {
	switch format {
	case FormatText, "":
		return NewText(), nil
	case FormatTable:
		return Table{}, nil
	case FormatJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
