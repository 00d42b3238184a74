package analyzer

import "sort"

// Entry is a single frame index with its accumulated count
type Entry struct {
	Index int
	Count int
}

// Counter accumulates counts per frame index and remembers the order in
// which each index was first seen.
type Counter struct {
	counts map[int]int
	order  []int
}

// NewCounter returns an empty Counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[int]int)}
}

// Add increments the count for idx by one.
func (c *Counter) Add(idx int) {
	if _, seen := c.counts[idx]; !seen {
		c.order = append(c.order, idx)
	}
	c.counts[idx]++
}

// Get returns the count for idx, zero if it was never added.
func (c *Counter) Get(idx int) int {
	return c.counts[idx]
}

// Len returns the number of distinct indexes counted.
func (c *Counter) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// MostCommon returns the n highest counts in descending order. Equal counts
// keep first-seen order. n <= 0 returns every entry.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, idx := range c.order {
		entries = append(entries, Entry{Index: idx, Count: c.counts[idx]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}
