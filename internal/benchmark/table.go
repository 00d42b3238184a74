package benchmark

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	tableHeaderPrefix = "| Runs"

	// Columns of the results table once split on '|'; the leading empty
	// field comes before the first pipe.
	colPopulation = 2
	colRegions    = 3
	colTime       = 9
	minFields     = 9
)

// ExtractTable returns the data lines of the results table. The table starts
// at the "| Runs" header line, the separator line after it is skipped and it
// ends at the first blank line. found is false when there is no header or the
// table is never closed by a blank line.
func ExtractTable(content string) (lines []string, found bool) {
	inTable := false
	skip := 0
	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		line = strings.TrimRight(line, "\r")

		if !inTable {
			if strings.HasPrefix(strings.TrimSpace(line), tableHeaderPrefix) {
				inTable = true
				skip = 1
				lines = []string{}
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			return lines, true
		}

		if skip > 0 {
			skip--
			continue
		}
		lines = append(lines, line)
	}

	return nil, false
}

// ParseRows extracts population, regions and time from each table line.
// Lines with too few fields are ignored; a bad number fails the whole parse.
func ParseRows(lines []string) ([]Row, error) {
	rows := make([]Row, 0, len(lines))

	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < minFields {
			continue
		}
		if len(parts) <= colTime {
			return nil, fmt.Errorf("row %q has no time column", line)
		}

		pop, err := strconv.Atoi(strings.TrimSpace(parts[colPopulation]))
		if err != nil {
			return nil, fmt.Errorf("invalid population in row %q: %w", line, err)
		}
		regions, err := strconv.Atoi(strings.TrimSpace(parts[colRegions]))
		if err != nil {
			return nil, fmt.Errorf("invalid region count in row %q: %w", line, err)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(parts[colTime]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time in row %q: %w", line, err)
		}

		rows = append(rows, Row{Population: pop, Regions: regions, Time: t})
	}

	return rows, nil
}

// ParseReport parses the results table out of a report's text. A report
// without a table yields no rows and no error.
func ParseReport(content string) ([]Row, error) {
	rows, _, err := parseReport(content)
	return rows, err
}

func parseReport(content string) (rows []Row, found bool, err error) {
	lines, found := ExtractTable(content)
	if !found {
		return []Row{}, false, nil
	}
	rows, err = ParseRows(lines)
	return rows, true, err
}

// ReadRows reads a report file and parses its results table
func ReadRows(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	rows, err := ParseReport(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}
