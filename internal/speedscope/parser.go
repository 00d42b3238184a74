package speedscope

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadFile reads a speedscope JSON file and parses its contents.
func ReadFile(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	f, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return f, nil
}

// Parse decodes a whole speedscope document. Nothing is returned unless the
// entire input is a single valid document.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*File, error) {
	var doc document
	// Unmarshal rejects anything left after the document.
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid speedscope JSON: %w", err)
	}

	f := &File{
		Name:     doc.Name,
		Exporter: doc.Exporter,
		Frames:   make([]Frame, 0, len(doc.Shared.Frames)),
		Profiles: make([]Profile, 0, len(doc.Profiles)),
	}

	for i, rf := range doc.Shared.Frames {
		name := UnknownFrameName
		if rf.Name != nil {
			name = *rf.Name
		}
		f.Frames = append(f.Frames, Frame{
			Index: i,
			Name:  name,
			File:  rf.File,
			Line:  rf.Line,
			Col:   rf.Col,
		})
	}

	for pi, rp := range doc.Profiles {
		p := Profile{
			Type:    rp.Type,
			Name:    rp.Name,
			Unit:    rp.Unit,
			Samples: make([]Sample, 0, len(rp.Samples)),
			Weights: rp.Weights,
		}
		for si, stack := range rp.Samples {
			for _, idx := range stack {
				if idx < 0 || idx >= len(f.Frames) {
					return nil, fmt.Errorf("profile %d sample %d: frame index %d outside frame table (%d frames)", pi, si, idx, len(f.Frames))
				}
			}
			p.Samples = append(p.Samples, Sample(stack))
		}
		f.Profiles = append(f.Profiles, p)
	}

	return f, nil
}
