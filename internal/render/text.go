package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
)

const ruleWidth = 80

// Text is the plain console layout. Slower timings are printed red and
// faster ones green when color output is enabled.
type Text struct {
	slower *color.Color
	faster *color.Color
}

// NewText returns a Text renderer
func NewText() *Text {
	return &Text{
		slower: color.New(color.FgRed),
		faster: color.New(color.FgGreen),
	}
}

// Profile writes the frame rankings and symbol checks
func (t *Text) Profile(w io.Writer, r *analyzer.ProfileReport) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyzing %s...\n", r.Source))
	sb.WriteString(fmt.Sprintf("Total samples: %d\n", r.TotalSamples))

	sb.WriteString(fmt.Sprintf("Top %d frames by exclusive sample count for %s:\n", r.TopN, r.Source))
	writeFrames(&sb, r.Exclusive)

	sb.WriteString(fmt.Sprintf("\nTop %d frames by inclusive sample count for %s:\n", r.TopN, r.Source))
	writeFrames(&sb, r.Inclusive)

	sb.WriteString("\nSpecific checks (Inclusive %):\n")
	for _, m := range r.Symbols {
		sb.WriteString(fmt.Sprintf("%-25s : Inc %6d (%5.2f%%), Exc %6d (%5.2f%%)\n",
			m.Target, m.Inclusive, m.InclusivePercent, m.Exclusive, m.ExclusivePercent))
	}
	sb.WriteString("\n\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFrames(sb *strings.Builder, frames []analyzer.FrameStat) {
	for _, fs := range frames {
		sb.WriteString(fmt.Sprintf("%10d (%5.2f%%) : %s\n", fs.Count, fs.Percent, fs.Name))
	}
}

// Comparison writes one section per case followed by the overall summary
func (t *Text) Comparison(w io.Writer, c *benchmark.Comparison) error {
	var sb strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	sb.WriteString(fmt.Sprintf("Performance Comparison: %s (OLD) vs %s (NEW)\n", c.OldLabel, c.NewLabel))
	sb.WriteString(heavy + "\n")

	for _, cc := range c.Cases {
		sb.WriteString(fmt.Sprintf("\n%s:\n", cc.Name))
		sb.WriteString(light + "\n")
		sb.WriteString(fmt.Sprintf("%6s %8s %10s %10s %10s %10s\n", "Pop", "Regions", "Old Time", "New Time", "Change", "% Change"))
		sb.WriteString(light + "\n")

		for _, row := range cc.Rows {
			sb.WriteString(fmt.Sprintf("%6d %8d %10.3fs %10.3fs %s\n",
				row.Population, row.Regions, row.Old, row.New, t.change(row.Delta)))
		}

		sb.WriteString(light + "\n")
		sb.WriteString(fmt.Sprintf("%6s %8s %10.3fs %10.3fs %s\n",
			"TOTAL", "", cc.Total.Old, cc.Total.New, t.change(cc.Total)))
	}

	sb.WriteString("\n" + heavy + "\n")
	sb.WriteString("OVERALL SUMMARY\n")
	sb.WriteString(heavy + "\n")
	sb.WriteString(fmt.Sprintf("Total Old Time: %10.3fs\n", c.Overall.Old))
	sb.WriteString(fmt.Sprintf("Total New Time: %10.3fs\n", c.Overall.New))
	sb.WriteString(fmt.Sprintf("Total Change:   %s (%s)\n",
		t.colorize(c.Overall.Change, fmt.Sprintf("%+10.3fs", c.Overall.Change)),
		t.colorize(c.Overall.Change, fmt.Sprintf("%+.1f%%", c.Overall.Percent))))

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Text) change(d benchmark.Delta) string {
	return t.colorize(d.Change, fmt.Sprintf("%+10.3fs %+9.1f%%", d.Change, d.Percent))
}

func (t *Text) colorize(change float64, s string) string {
	switch {
	case change > 0:
		return t.slower.Sprint(s)
	case change < 0:
		return t.faster.Sprint(s)
	default:
		return s
	}
}
