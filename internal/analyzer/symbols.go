package analyzer

import (
	"strings"

	"perfreport/internal/speedscope"
)

// DefaultTargets are the symbol fragments checked when none are configured:
// lock wake-ups, swap cells, locks, rayon, ordered maps, removal, allocation,
// vector growth and iterator collection.
var DefaultTargets = []string{
	"__lll_lock_wake_private",
	"ArcSwap",
	"Mutex",
	"RwLock",
	"Rayon",
	"IndexMap",
	"shift_remove",
	"malloc",
	"cfree",
	"Vec::push",
	"collect",
	"alloc",
	"dealloc",
}

// SymbolMatch sums the counts of every frame whose name contains Target
type SymbolMatch struct {
	Target           string  `json:"target"`
	Frames           int     `json:"frames"`
	Inclusive        int     `json:"inclusive"`
	Exclusive        int     `json:"exclusive"`
	InclusivePercent float64 `json:"inclusive_percent"`
	ExclusivePercent float64 `json:"exclusive_percent"`
}

// MatchSymbols matches each target case-insensitively as a substring of the
// frame names. Targets whose inclusive sum is zero are left out.
func MatchSymbols(f *speedscope.File, counts *FrameCounts, targets []string) []SymbolMatch {
	lowered := make([]string, len(f.Frames))
	for i, fr := range f.Frames {
		lowered[i] = strings.ToLower(fr.Name)
	}

	matches := []SymbolMatch{}
	for _, t := range targets {
		needle := strings.ToLower(t)
		m := SymbolMatch{Target: t}

		for idx, name := range lowered {
			if !strings.Contains(name, needle) {
				continue
			}
			m.Frames++
			m.Inclusive += counts.Inclusive.Get(idx)
			m.Exclusive += counts.Exclusive.Get(idx)
		}

		if m.Inclusive == 0 {
			continue
		}
		m.InclusivePercent = Percent(m.Inclusive, counts.TotalSamples)
		m.ExclusivePercent = Percent(m.Exclusive, counts.TotalSamples)
		matches = append(matches, m)
	}

	return matches
}
