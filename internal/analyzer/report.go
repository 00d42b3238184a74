package analyzer

import (
	"fmt"

	"perfreport/internal/speedscope"
)

// DefaultTopN is the number of frames listed per ranking
const DefaultTopN = 20

// Options controls what goes into a ProfileReport
type Options struct {
	TopN    int
	Targets []string
}

// ProfileReport is the complete analysis of one profile file
type ProfileReport struct {
	Source       string        `json:"source"`
	TopN         int           `json:"top_n"`
	TotalSamples int           `json:"total_samples"`
	EmptySamples int           `json:"empty_samples"`
	Exclusive    []FrameStat   `json:"exclusive"`
	Inclusive    []FrameStat   `json:"inclusive"`
	Symbols      []SymbolMatch `json:"symbols"`
	Statistics   Statistics    `json:"statistics"`
}

// Analyze builds the report for an already parsed file
func Analyze(source string, f *speedscope.File, opts Options) *ProfileReport {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Targets == nil {
		opts.Targets = DefaultTargets
	}

	counts := CountFrames(f)

	return &ProfileReport{
		Source:       source,
		TopN:         opts.TopN,
		TotalSamples: counts.TotalSamples,
		EmptySamples: counts.EmptySamples,
		Exclusive:    FindLeafFrames(f, counts, opts.TopN),
		Inclusive:    FindHotspots(f, counts, opts.TopN),
		Symbols:      MatchSymbols(f, counts, opts.Targets),
		Statistics:   ComputeStatistics(f, counts),
	}
}

// AnalyzeFile reads the speedscope file at path and analyzes it
func AnalyzeFile(path string, opts Options) (*ProfileReport, error) {
	f, err := speedscope.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return Analyze(path, f, opts), nil
}
