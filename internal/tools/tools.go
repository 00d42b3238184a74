// Package tools exposes the profile and benchmark analyses as MCP tools.
package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
	"perfreport/internal/config"
	"perfreport/internal/render"
	"perfreport/internal/speedscope"
)

const notLoaded = "Profile not loaded. Use load_profile tool first"

type loadedProfile struct {
	file   *speedscope.File
	counts *analyzer.FrameCounts
}

// Handler serves tool calls against the profiles loaded so far
type Handler struct {
	cfg    *config.Config
	logger log.Logger

	mu       sync.Mutex
	profiles map[string]*loadedProfile
}

// NewHandler returns a Handler using cfg, or the defaults when cfg is nil
func NewHandler(cfg *config.Config, logger log.Logger) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		profiles: make(map[string]*loadedProfile),
	}
}

// NewServer creates an MCP server with every tool registered
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"perfreport",
		version,
		server.WithLogging(),
	)
	h.Register(s)
	return s
}

// Register adds the tools to s
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("load_profile",
		mcp.WithDescription("Load a speedscope JSON profile for analysis"),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the .speedscope.json file"),
		),
	), h.LoadProfile)

	s.AddTool(mcp.NewTool("top_frames",
		mcp.WithDescription("Rank frames by exclusive (leaf) or inclusive (anywhere in the stack) sample count."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile"),
		),
		mcp.WithString("mode",
			mcp.Description("exclusive or inclusive (default: exclusive)"),
			mcp.Enum("exclusive", "inclusive"),
		),
		mcp.WithNumber("top_n",
			mcp.Description(fmt.Sprintf("Number of frames to return (default: %d)", h.cfg.Profiles.TopN)),
		),
	), h.TopFrames)

	s.AddTool(mcp.NewTool("check_symbols",
		mcp.WithDescription("Sum inclusive and exclusive samples of frames whose name contains each target (case-insensitive)."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile"),
		),
		mcp.WithString("targets",
			mcp.Description("Comma separated symbol fragments (default: configured targets)"),
		),
	), h.CheckSymbols)

	s.AddTool(mcp.NewTool("profile_statistics",
		mcp.WithDescription("Get sample, frame and stack depth statistics for a loaded profile."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the loaded profile"),
		),
	), h.ProfileStatistics)

	s.AddTool(mcp.NewTool("compare_benchmarks",
		mcp.WithDescription("Compare timings of old and new benchmark reports. Uses the configured cases unless old_path and new_path are given."),
		mcp.WithString("name",
			mcp.Description("Case name for an ad-hoc comparison"),
		),
		mcp.WithString("old_path",
			mcp.Description("Old markdown report"),
		),
		mcp.WithString("new_path",
			mcp.Description("New markdown report"),
		),
	), h.CompareBenchmarks)
}

func (h *Handler) lookup(filePath string) (*loadedProfile, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.profiles[filePath]
	return p, ok
}

// LoadProfile parses a profile and caches its frame counts by path
func (h *Handler) LoadProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := speedscope.ReadFile(filePath)
	if err != nil {
		level.Warn(h.logger).Log("msg", "failed to load profile", "path", filePath, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load profile: %v", err)), nil
	}
	counts := analyzer.CountFrames(f)

	h.mu.Lock()
	h.profiles[filePath] = &loadedProfile{file: f, counts: counts}
	h.mu.Unlock()

	level.Info(h.logger).Log("msg", "profile loaded", "path", filePath, "samples", counts.TotalSamples)

	result := fmt.Sprintf(`Profile loaded successfully!

File: %s
Profiles: %d
Frames: %s
Samples: %s (%s empty)

Use other tools to analyze this profile.
`,
		filePath,
		len(f.Profiles),
		humanize.Comma(int64(len(f.Frames))),
		humanize.Comma(int64(counts.TotalSamples)),
		humanize.Comma(int64(counts.EmptySamples)),
	)
	return mcp.NewToolResultText(result), nil
}

// TopFrames ranks frames of a loaded profile
func (h *Handler) TopFrames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode := request.GetString("mode", "exclusive")

	p, ok := h.lookup(filePath)
	if !ok {
		return mcp.NewToolResultError(notLoaded), nil
	}
	topN := h.topN(request.GetFloat("top_n", 0), len(p.file.Frames))

	var frames []analyzer.FrameStat
	switch mode {
	case "exclusive":
		frames = analyzer.FindLeafFrames(p.file, p.counts, topN)
	case "inclusive":
		frames = analyzer.FindHotspots(p.file, p.counts, topN)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q, use exclusive or inclusive", mode)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Top %d frames by %s sample count for %s:\n", topN, mode, filePath))
	sb.WriteString(fmt.Sprintf("Total samples: %d\n\n", p.counts.TotalSamples))

	if len(frames) == 0 {
		sb.WriteString("No frames found.\n")
	}
	for i, fs := range frames {
		sb.WriteString(fmt.Sprintf("#%d: %s\n", i+1, fs.Name))
		sb.WriteString(fmt.Sprintf("    Samples: %d (%.2f%%)\n", fs.Count, fs.Percent))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// CheckSymbols sums samples of frames matching each target
func (h *Handler) CheckSymbols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	targets := h.cfg.Profiles.Targets
	if raw := request.GetString("targets", ""); raw != "" {
		targets = splitList(raw)
	}

	p, ok := h.lookup(filePath)
	if !ok {
		return mcp.NewToolResultError(notLoaded), nil
	}

	matches := analyzer.MatchSymbols(p.file, p.counts, targets)

	var sb strings.Builder
	sb.WriteString("Specific checks (Inclusive %):\n")
	if len(matches) == 0 {
		sb.WriteString("No frames matched any target.\n")
	}
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("%-25s : Inc %6d (%5.2f%%), Exc %6d (%5.2f%%) across %d frames\n",
			m.Target, m.Inclusive, m.InclusivePercent, m.Exclusive, m.ExclusivePercent, m.Frames))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// ProfileStatistics reports stack depth and frame usage of a loaded profile
func (h *Handler) ProfileStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, err := request.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p, ok := h.lookup(filePath)
	if !ok {
		return mcp.NewToolResultError(notLoaded), nil
	}

	stats := analyzer.ComputeStatistics(p.file, p.counts)

	var sb strings.Builder
	sb.WriteString("PROFILE STATISTICS\n\n")
	sb.WriteString(fmt.Sprintf("Profiles: %d\n", stats.Profiles))
	sb.WriteString(fmt.Sprintf("Total Samples: %s\n", humanize.Comma(int64(stats.TotalSamples))))
	sb.WriteString(fmt.Sprintf("Empty Samples: %s\n\n", humanize.Comma(int64(stats.EmptySamples))))

	sb.WriteString("Call Stack Depth Statistics:\n")
	sb.WriteString(fmt.Sprintf("  Average: %.2f frames\n", stats.AverageStackDepth))
	sb.WriteString(fmt.Sprintf("  Maximum: %d frames\n", stats.MaxStackDepth))
	sb.WriteString(fmt.Sprintf("  Minimum: %d frames\n\n", stats.MinStackDepth))

	sb.WriteString("Frames:\n")
	sb.WriteString(fmt.Sprintf("  In table: %d\n", stats.Frames))
	sb.WriteString(fmt.Sprintf("  Sampled: %d\n", stats.DistinctFrames))
	sb.WriteString(fmt.Sprintf("  As leaf: %d\n", stats.LeafFrames))

	return mcp.NewToolResultText(sb.String()), nil
}

// CompareBenchmarks compares an ad-hoc pair of reports or the configured cases
func (h *Handler) CompareBenchmarks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cases := h.cfg.Benchmarks.Cases

	oldPath := request.GetString("old_path", "")
	newPath := request.GetString("new_path", "")
	if oldPath != "" || newPath != "" {
		bc := benchmark.Case{
			Name: request.GetString("name", "Benchmark"),
			Old:  oldPath,
			New:  newPath,
		}
		if err := config.ValidateCase(bc); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cases = []benchmark.Case{bc}
	}

	if len(cases) == 0 {
		return mcp.NewToolResultError("No benchmark cases configured. Pass old_path and new_path"), nil
	}

	cmp, err := benchmark.NewComparer(h.logger, h.cfg.Benchmarks.OldLabel, h.cfg.Benchmarks.NewLabel).Compare(cases)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compare benchmarks: %v", err)), nil
	}

	var sb strings.Builder
	if err := render.NewText().Comparison(&sb, cmp); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// topN falls back to the configured count when n is not positive and never
// exceeds the number of frames in the profile.
func (h *Handler) topN(n float64, frames int) int {
	if n < 1 {
		n = float64(h.cfg.Profiles.TopN)
		if n < 1 {
			n = analyzer.DefaultTopN
		}
	}
	if n > float64(frames) {
		return max(frames, 1)
	}
	return int(n)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
