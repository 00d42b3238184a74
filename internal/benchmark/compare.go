package benchmark

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/samber/lo"
)

// Comparer reads old/new report pairs and compares their timings
type Comparer struct {
	logger   log.Logger
	oldLabel string
	newLabel string
}

// NewComparer returns a Comparer that labels its result with oldLabel and newLabel.
// A nil logger discards log output.
func NewComparer(logger log.Logger, oldLabel, newLabel string) *Comparer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Comparer{
		logger:   logger,
		oldLabel: oldLabel,
		newLabel: newLabel,
	}
}

// Compare runs every case in order. Any unreadable file or malformed
// table row aborts the whole comparison.
func (c *Comparer) Compare(cases []Case) (*Comparison, error) {
	cmp := &Comparison{
		OldLabel: c.oldLabel,
		NewLabel: c.newLabel,
		Cases:    make([]CaseComparison, 0, len(cases)),
	}

	for _, bc := range cases {
		oldRows, err := c.load(bc.Old)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", bc.Name, err)
		}
		newRows, err := c.load(bc.New)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", bc.Name, err)
		}

		if len(oldRows) != len(newRows) {
			level.Warn(c.logger).Log("msg", "row counts differ, extra rows are ignored", "case", bc.Name, "old_rows", len(oldRows), "new_rows", len(newRows))
		}

		cmp.Cases = append(cmp.Cases, CompareCase(bc, oldRows, newRows))
	}

	cmp.Overall = NewDelta(
		lo.SumBy(cmp.Cases, func(cc CaseComparison) float64 { return cc.Total.Old }),
		lo.SumBy(cmp.Cases, func(cc CaseComparison) float64 { return cc.Total.New }),
	)
	return cmp, nil
}

func (c *Comparer) load(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	rows, found, err := parseReport(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if !found {
		level.Warn(c.logger).Log("msg", "no results table found", "path", path)
		return rows, nil
	}
	level.Debug(c.logger).Log("msg", "parsed report", "path", path, "rows", len(rows))
	return rows, nil
}

// CompareCase pairs old and new rows by position. The shorter list bounds
// the pairing.
func CompareCase(bc Case, oldRows, newRows []Row) CaseComparison {
	n := min(len(oldRows), len(newRows))

	cc := CaseComparison{
		Name:    bc.Name,
		OldPath: bc.Old,
		NewPath: bc.New,
		OldRows: len(oldRows),
		NewRows: len(newRows),
		Rows:    make([]ComparisonRow, 0, n),
	}

	for i := 0; i < n; i++ {
		o, nw := oldRows[i], newRows[i]
		cc.Rows = append(cc.Rows, ComparisonRow{
			Population: o.Population,
			Regions:    o.Regions,
			Delta:      NewDelta(o.Time, nw.Time),
		})
	}

	cc.Total = NewDelta(
		lo.SumBy(cc.Rows, func(r ComparisonRow) float64 { return r.Old }),
		lo.SumBy(cc.Rows, func(r ComparisonRow) float64 { return r.New }),
	)
	return cc
}
