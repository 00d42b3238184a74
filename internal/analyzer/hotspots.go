package analyzer

import (
	"github.com/samber/lo"

	"perfreport/internal/speedscope"
)

// FrameCounts holds the exclusive and inclusive sample counts of one file
type FrameCounts struct {
	TotalSamples int // every sample, empty stacks included
	EmptySamples int
	Exclusive    *Counter // samples where the frame is the leaf
	Inclusive    *Counter // samples where the frame appears anywhere
}

// FrameStat is a ranked frame ready for display
type FrameStat struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CountFrames walks every sample of every profile in the file once.
func CountFrames(f *speedscope.File) *FrameCounts {
	counts := &FrameCounts{
		Exclusive: NewCounter(),
		Inclusive: NewCounter(),
	}

	for _, p := range f.Profiles {
		counts.TotalSamples += len(p.Samples)

		for _, stack := range p.Samples {
			leaf, ok := stack.Leaf()
			if !ok {
				counts.EmptySamples++
				continue
			}
			counts.Exclusive.Add(leaf)

			// A recursive frame only counts once per sample
			for _, idx := range lo.Uniq(stack) {
				counts.Inclusive.Add(idx)
			}
		}
	}

	return counts
}

// Percent returns count as a percentage of total, or 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

// TopFrames ranks the frames of a counter against the total sample count
func TopFrames(f *speedscope.File, c *Counter, totalSamples, topN int) []FrameStat {
	entries := c.MostCommon(topN)
	stats := make([]FrameStat, 0, len(entries))
	for _, e := range entries {
		stats = append(stats, FrameStat{
			Index:   e.Index,
			Name:    f.FrameName(e.Index),
			Count:   e.Count,
			Percent: Percent(e.Count, totalSamples),
		})
	}
	return stats
}

// FindHotspots ranks frames by inclusive count
func FindHotspots(f *speedscope.File, counts *FrameCounts, topN int) []FrameStat {
	return TopFrames(f, counts.Inclusive, counts.TotalSamples, topN)
}

// FindLeafFrames ranks frames by exclusive count. These are where the
// samples were actually executing.
func FindLeafFrames(f *speedscope.File, counts *FrameCounts, topN int) []FrameStat {
	return TopFrames(f, counts.Exclusive, counts.TotalSamples, topN)
}
