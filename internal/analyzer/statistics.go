package analyzer

import (
	"math"

	"perfreport/internal/speedscope"
)

// Statistics contains general figures about a profile file
type Statistics struct {
	Profiles          int     `json:"profiles"`
	Frames            int     `json:"frames"`
	TotalSamples      int     `json:"total_samples"`
	EmptySamples      int     `json:"empty_samples"`
	AverageStackDepth float64 `json:"average_stack_depth"`
	MaxStackDepth     int     `json:"max_stack_depth"`
	MinStackDepth     int     `json:"min_stack_depth"`
	DistinctFrames    int     `json:"distinct_frames"`
	LeafFrames        int     `json:"leaf_frames"`
}

// ComputeStatistics calculates stack depth and frame usage statistics.
// Depths only consider non-empty samples.
func ComputeStatistics(f *speedscope.File, counts *FrameCounts) Statistics {
	stats := Statistics{
		Profiles:       len(f.Profiles),
		Frames:         len(f.Frames),
		TotalSamples:   counts.TotalSamples,
		EmptySamples:   counts.EmptySamples,
		DistinctFrames: counts.Inclusive.Len(),
		LeafFrames:     counts.Exclusive.Len(),
	}

	nonEmpty := counts.TotalSamples - counts.EmptySamples
	if nonEmpty == 0 {
		return stats
	}

	totalDepth := 0
	stats.MinStackDepth = math.MaxInt32

	for _, p := range f.Profiles {
		for _, stack := range p.Samples {
			depth := len(stack)
			if depth == 0 {
				continue
			}
			totalDepth += depth

			if depth > stats.MaxStackDepth {
				stats.MaxStackDepth = depth
			}
			if depth < stats.MinStackDepth {
				stats.MinStackDepth = depth
			}
		}
	}

	stats.AverageStackDepth = float64(totalDepth) / float64(nonEmpty)
	return stats
}
