package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/alecthomas/kingpin.v2"

	"perfreport/internal/config"
	"perfreport/internal/render"
	"perfreport/internal/tools"
)

var version = "dev"

var cfg struct {
	configPath string
	format     string
	verbose    bool
	profile    struct {
		files   []string
		top     int
		targets []string
	}
	compare struct {
		cases    []string
		oldLabel string
		newLabel string
	}
}

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(log.NewSyncWriter(consoleOutput))
)

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Ranks profile frames from speedscope captures and compares benchmark reports.").UsageWriter(os.Stdout)
	app.Version(version)
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').Default("false").BoolVar(&cfg.verbose)
	app.Flag("config", "Path to a YAML configuration file.").Short('c').StringVar(&cfg.configPath)
	app.Flag("format", "Output format.").Default(render.FormatText).EnumVar(&cfg.format, render.Formats...)

	profileCmd := app.Command("profile", "Rank frames of speedscope profiles by exclusive and inclusive sample count.")
	profileCmd.Arg("files", "Speedscope JSON files (default: configured files).").StringsVar(&cfg.profile.files)
	profileCmd.Flag("top", "Number of frames to list per ranking.").IntVar(&cfg.profile.top)
	profileCmd.Flag("target", "Symbol fragment to check, repeatable (replaces configured targets).").StringsVar(&cfg.profile.targets)

	compareCmd := app.Command("compare", "Compare timings of old and new benchmark reports.")
	compareCmd.Flag("case", "Benchmark case as name=old.md,new.md, repeatable (replaces configured cases).").StringsVar(&cfg.compare.cases)
	compareCmd.Flag("old-label", "Label of the old reports.").StringVar(&cfg.compare.oldLabel)
	compareCmd.Flag("new-label", "Label of the new reports.").StringVar(&cfg.compare.newLabel)

	serveCmd := app.Command("serve", "Serve the analyses as MCP tools on stdio.")

	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if !cfg.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	conf, err := loadConfig(cfg.configPath)
	if err != nil {
		os.Exit(checkError(err))
	}

	switch parsedCmd {
	case profileCmd.FullCommand():
		applyProfileFlags(conf)
		if err := runProfiles(os.Stdout, logger, conf, cfg.profile.files, cfg.format); err != nil {
			os.Exit(checkError(err))
		}
	case compareCmd.FullCommand():
		if err := applyCompareFlags(conf); err != nil {
			os.Exit(checkError(err))
		}
		if err := runCompare(os.Stdout, logger, conf, cfg.format); err != nil {
			os.Exit(checkError(err))
		}
	case serveCmd.FullCommand():
		level.Info(logger).Log("msg", "serving MCP tools on stdio", "version", version)
		s := tools.NewServer(tools.NewHandler(conf, logger), version)
		if err := server.ServeStdio(s); err != nil {
			os.Exit(checkError(fmt.Errorf("server error: %w", err)))
		}
	default:
		level.Error(logger).Log("msg", "unknown command", "cmd", parsedCmd)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "loaded config", "path", path, "cases", len(conf.Benchmarks.Cases))
	return conf, nil
}

func checkError(err error) int {
	if err == nil {
		return 0
	}
	level.Error(logger).Log("msg", "perfreport failed", "err", err)
	return 1
}
