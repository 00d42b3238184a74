package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
	"perfreport/internal/config"
)

const profileDoc = `{"shared":{"frames":[
	{"name":"main"},
	{"name":"std::sync::Mutex::lock"},
	{"name":"alloc::vec::Vec::push"}
]},"profiles":[{"samples":[[0,1],[0,1],[0,2],[0],[]]}]}`

const report = `## Results

| Runs | Population | Regions | Total Rounds | Total Resolution Hits | Best Score | Avg Score | Std Dev | Avg Time (s) |
|------|------------|---------|--------------|----------------------|------------|-----------|---------|--------------|
| 20 | 100 | 5 | 1000 | 0 | 1.0e-3 | 2.0e-3 | 1.0e-4 | %s |

`

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func call(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestProfileTools(t *testing.T) {
	h := NewHandler(nil, nil)
	path := writeFile(t, "p.speedscope.json", profileDoc)

	out, isErr := call(t, h.TopFrames, map[string]any{"file_path": path})
	assert.True(t, isErr)
	assert.Equal(t, notLoaded, out)

	out, isErr = call(t, h.LoadProfile, map[string]any{"file_path": path})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Samples: 5 (1 empty)")
	assert.Contains(t, out, "Frames: 3")

	out, isErr = call(t, h.TopFrames, map[string]any{"file_path": path, "top_n": float64(1)})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Top 1 frames by exclusive sample count")
	assert.Contains(t, out, "#1: std::sync::Mutex::lock\n    Samples: 2 (40.00%)")
	assert.NotContains(t, out, "#2:")

	out, isErr = call(t, h.TopFrames, map[string]any{"file_path": path, "mode": "inclusive"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "#1: main\n    Samples: 4 (80.00%)")

	_, isErr = call(t, h.TopFrames, map[string]any{"file_path": path, "mode": "sideways"})
	assert.True(t, isErr)

	out, isErr = call(t, h.CheckSymbols, map[string]any{"file_path": path})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Mutex")
	assert.Contains(t, out, "Vec::push")

	out, isErr = call(t, h.CheckSymbols, map[string]any{"file_path": path, "targets": "MAIN, nothing"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "MAIN                      : Inc      4 (80.00%), Exc      1 (20.00%) across 1 frames")
	assert.NotContains(t, out, "nothing")

	out, isErr = call(t, h.ProfileStatistics, map[string]any{"file_path": path})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Maximum: 2 frames")
	assert.Contains(t, out, "Minimum: 1 frames")
	assert.Contains(t, out, "Empty Samples: 1")
}

func TestLoadProfile_Errors(t *testing.T) {
	h := NewHandler(nil, nil)

	out, isErr := call(t, h.LoadProfile, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, out, "file_path")

	out, isErr = call(t, h.LoadProfile, map[string]any{"file_path": writeFile(t, "bad.json", "{")})
	assert.True(t, isErr)
	assert.Contains(t, out, "Failed to load profile")
}

func TestCompareBenchmarks(t *testing.T) {
	oldPath := writeFile(t, "old.md", fmtReport("1.000"))
	newPath := writeFile(t, "new.md", fmtReport("1.100"))

	cfg := config.Default()
	cfg.Benchmarks.OldLabel = "66e7cdab"
	cfg.Benchmarks.NewLabel = "2a7273a6"
	h := NewHandler(cfg, nil)

	_, isErr := call(t, h.CompareBenchmarks, map[string]any{})
	assert.True(t, isErr)

	out, isErr := call(t, h.CompareBenchmarks, map[string]any{"name": "Ackley", "old_path": oldPath, "new_path": newPath})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Performance Comparison: 66e7cdab (OLD) vs 2a7273a6 (NEW)")
	assert.Contains(t, out, "Ackley:")
	assert.Contains(t, out, "+10.0%")

	_, isErr = call(t, h.CompareBenchmarks, map[string]any{"old_path": oldPath})
	assert.True(t, isErr)

	cfg.Benchmarks.Cases = []benchmark.Case{{Name: "Configured", Old: oldPath, New: newPath}}
	out, isErr = call(t, h.CompareBenchmarks, map[string]any{})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Configured:")

	cfg.Benchmarks.Cases = []benchmark.Case{{Name: "Missing", Old: oldPath + ".gone", New: newPath}}
	out, isErr = call(t, h.CompareBenchmarks, map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, out, "Failed to compare benchmarks")
}

func TestNewServer(t *testing.T) {
	s := NewServer(NewHandler(nil, nil), "test")
	assert.NotNil(t, s)
}

func TestTopFrames_TopN(t *testing.T) {
	h := NewHandler(nil, nil)
	path := writeFile(t, "p.speedscope.json", profileDoc)
	_, isErr := call(t, h.LoadProfile, map[string]any{"file_path": path})
	require.False(t, isErr)

	tests := []struct {
		name   string
		topN   float64
		header string
	}{
		{"zero uses configured count", 0, "Top 3 frames"},
		{"negative uses configured count", -3, "Top 3 frames"},
		{"larger than frame table", 1e300, "Top 3 frames"},
		{"fractional rounds down", 2.7, "Top 2 frames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, h.TopFrames, map[string]any{"file_path": path, "mode": "inclusive", "top_n": tt.topN})
			require.False(t, isErr, out)
			assert.Contains(t, out, tt.header)
		})
	}
}

func TestHandlerTopN(t *testing.T) {
	h := NewHandler(nil, nil)
	assert.Equal(t, 20, h.topN(0, 100))
	assert.Equal(t, 20, h.topN(-5, 100))
	assert.Equal(t, 7, h.topN(7, 100))
	assert.Equal(t, 100, h.topN(1e300, 100))
	assert.Equal(t, 1, h.topN(1e300, 0))

	cfg := config.Default()
	cfg.Profiles.TopN = 0
	assert.Equal(t, analyzer.DefaultTopN, NewHandler(cfg, nil).topN(0, 100))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitList(" a ,, b c ,"))
	assert.Nil(t, splitList(" , "))
}

func fmtReport(avg string) string {
	return fmt.Sprintf(report, avg)
}
