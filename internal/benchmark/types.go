package benchmark

// Row is one line of a report's results table
type Row struct {
	Population int
	Regions    int
	Time       float64 // average seconds per run
}

// Case names an old/new pair of report files to compare
type Case struct {
	Name string `yaml:"name" json:"name"`
	Old  string `yaml:"old" json:"old"`
	New  string `yaml:"new" json:"new"`
}

// Delta is the change between an old and a new timing
type Delta struct {
	Old     float64 `json:"old"`
	New     float64 `json:"new"`
	Change  float64 `json:"change"`
	Percent float64 `json:"percent"`
}

// NewDelta computes the change from old to new. The percentage is 0 when
// old is not positive.
func NewDelta(old, new float64) Delta {
	d := Delta{Old: old, New: new, Change: new - old}
	if old > 0 {
		d.Percent = d.Change / old * 100
	}
	return d
}

// ComparisonRow is an old row paired with the new row at the same position
type ComparisonRow struct {
	Population int `json:"population"`
	Regions    int `json:"regions"`
	Delta
}

// CaseComparison holds the paired rows and totals of one case
type CaseComparison struct {
	Name    string          `json:"name"`
	OldPath string          `json:"old_path"`
	NewPath string          `json:"new_path"`
	OldRows int             `json:"old_rows"`
	NewRows int             `json:"new_rows"`
	Rows    []ComparisonRow `json:"rows"`
	Total   Delta           `json:"total"`
}

// Comparison is the full before/after report over every case
type Comparison struct {
	OldLabel string           `json:"old_label"`
	NewLabel string           `json:"new_label"`
	Cases    []CaseComparison `json:"cases"`
	Overall  Delta            `json:"overall"`
}
