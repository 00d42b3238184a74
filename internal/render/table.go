package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
)

// Table lays reports out as bordered tables
type Table struct{}

// Profile writes rankings, symbol checks and statistics as tables
func (Table) Profile(w io.Writer, r *analyzer.ProfileReport) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s samples (%s empty)\n\n", r.Source, humanize.Comma(int64(r.TotalSamples)), humanize.Comma(int64(r.EmptySamples)))

	fmt.Fprintf(&sb, "Top %d frames by exclusive sample count\n", r.TopN)
	frameTable(&sb, r.Exclusive)

	fmt.Fprintf(&sb, "\nTop %d frames by inclusive sample count\n", r.TopN)
	frameTable(&sb, r.Inclusive)

	if len(r.Symbols) > 0 {
		fmt.Fprintln(&sb, "\nSpecific checks")
		table := tablewriter.NewWriter(&sb)
		table.SetHeader([]string{"Target", "Frames", "Inclusive", "Inc %", "Exclusive", "Exc %"})
		for _, m := range r.Symbols {
			table.Append([]string{
				m.Target,
				strconv.Itoa(m.Frames),
				humanize.Comma(int64(m.Inclusive)),
				fmt.Sprintf("%.2f", m.InclusivePercent),
				humanize.Comma(int64(m.Exclusive)),
				fmt.Sprintf("%.2f", m.ExclusivePercent),
			})
		}
		table.Render()
	}

	s := r.Statistics
	fmt.Fprintln(&sb, "\nStatistics")
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Profiles", "Frames", "Distinct", "Leaf", "Min Depth", "Max Depth", "Avg Depth"})
	table.Append([]string{
		strconv.Itoa(s.Profiles),
		humanize.Comma(int64(s.Frames)),
		humanize.Comma(int64(s.DistinctFrames)),
		humanize.Comma(int64(s.LeafFrames)),
		strconv.Itoa(s.MinStackDepth),
		strconv.Itoa(s.MaxStackDepth),
		fmt.Sprintf("%.2f", s.AverageStackDepth),
	})
	table.Render()

	_, err := io.WriteString(w, sb.String())
	return err
}

func frameTable(w io.Writer, frames []analyzer.FrameStat) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Samples", "%", "Frame"})
	for i, fs := range frames {
		table.Append([]string{
			strconv.Itoa(i + 1),
			humanize.Comma(int64(fs.Count)),
			fmt.Sprintf("%.2f", fs.Percent),
			fs.Name,
		})
	}
	table.Render()
}

// Comparison writes a table per case and an overall table
func (Table) Comparison(w io.Writer, c *benchmark.Comparison) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Performance Comparison: %s (OLD) vs %s (NEW)\n", c.OldLabel, c.NewLabel)

	for _, cc := range c.Cases {
		fmt.Fprintf(&sb, "\n%s\n", cc.Name)
		table := tablewriter.NewWriter(&sb)
		table.SetHeader([]string{"Pop", "Regions", "Old Time", "New Time", "Change", "% Change"})
		table.SetAlignment(tablewriter.ALIGN_RIGHT)
		table.SetAutoFormatHeaders(false)
		for _, row := range cc.Rows {
			table.Append(append([]string{strconv.Itoa(row.Population), strconv.Itoa(row.Regions)}, deltaCells(row.Delta)...))
		}
		table.SetFooter(append([]string{"Total", ""}, deltaCells(cc.Total)...))
		table.Render()
	}

	fmt.Fprintln(&sb, "\nOverall")
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Case", "Rows", "Old Time", "New Time", "Change", "% Change"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	for _, cc := range c.Cases {
		table.Append(append([]string{cc.Name, strconv.Itoa(len(cc.Rows))}, deltaCells(cc.Total)...))
	}
	table.SetFooter(append([]string{"All", ""}, deltaCells(c.Overall)...))
	table.Render()

	_, err := io.WriteString(w, sb.String())
	return err
}

func deltaCells(d benchmark.Delta) []string {
	return []string{
		fmt.Sprintf("%.3fs", d.Old),
		fmt.Sprintf("%.3fs", d.New),
		fmt.Sprintf("%+.3fs", d.Change),
		fmt.Sprintf("%+.1f%%", d.Percent),
	}
}
