package render

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON encodes the report values as indented JSON documents
type JSON struct{}

// Profile encodes r
func (JSON) Profile(w io.Writer, r *analyzer.ProfileReport) error {
	return encode(w, r)
}

// Comparison encodes c
func (JSON) Comparison(w io.Writer, c *benchmark.Comparison) error {
	return encode(w, c)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
