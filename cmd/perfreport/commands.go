package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"perfreport/internal/analyzer"
	"perfreport/internal/benchmark"
	"perfreport/internal/config"
	"perfreport/internal/render"
)

func applyProfileFlags(conf *config.Config) {
	if cfg.profile.top > 0 {
		conf.Profiles.TopN = cfg.profile.top
	}
	if len(cfg.profile.targets) > 0 {
		conf.Profiles.Targets = cfg.profile.targets
	}
}

func applyCompareFlags(conf *config.Config) error {
	if cfg.compare.oldLabel != "" {
		conf.Benchmarks.OldLabel = cfg.compare.oldLabel
	}
	if cfg.compare.newLabel != "" {
		conf.Benchmarks.NewLabel = cfg.compare.newLabel
	}
	if len(cfg.compare.cases) == 0 {
		return nil
	}

	cases := make([]benchmark.Case, 0, len(cfg.compare.cases))
	for _, s := range cfg.compare.cases {
		bc, err := parseCase(s)
		if err != nil {
			return err
		}
		cases = append(cases, bc)
	}
	conf.Benchmarks.Cases = cases
	return nil
}

// parseCase parses "name=old.md,new.md"
func parseCase(s string) (benchmark.Case, error) {
	name, paths, ok := strings.Cut(s, "=")
	if !ok {
		return benchmark.Case{}, fmt.Errorf("invalid case %q, expected name=old,new", s)
	}
	oldPath, newPath, ok := strings.Cut(paths, ",")
	if !ok {
		return benchmark.Case{}, fmt.Errorf("invalid case %q, expected name=old,new", s)
	}

	bc := benchmark.Case{
		Name: strings.TrimSpace(name),
		Old:  strings.TrimSpace(oldPath),
		New:  strings.TrimSpace(newPath),
	}
	if err := config.ValidateCase(bc); err != nil {
		return benchmark.Case{}, fmt.Errorf("invalid case %q: %w", s, err)
	}
	return bc, nil
}

func runProfiles(w io.Writer, logger log.Logger, conf *config.Config, files []string, format string) error {
	if len(files) == 0 {
		files = conf.Profiles.Files
	}
	if len(files) == 0 {
		return fmt.Errorf("no profile files given")
	}

	r, err := render.New(format)
	if err != nil {
		return err
	}

	for _, path := range files {
		report, err := analyzer.AnalyzeFile(path, conf.AnalyzerOptions())
		if err != nil {
			return err
		}
		level.Debug(logger).Log("msg", "analyzed profile", "path", path, "samples", report.TotalSamples)
		if err := r.Profile(w, report); err != nil {
			return err
		}
	}
	return nil
}

func runCompare(w io.Writer, logger log.Logger, conf *config.Config, format string) error {
	if len(conf.Benchmarks.Cases) == 0 {
		return fmt.Errorf("no benchmark cases configured, use --case or a config file")
	}

	r, err := render.New(format)
	if err != nil {
		return err
	}

	cmp, err := benchmark.NewComparer(logger, conf.Benchmarks.OldLabel, conf.Benchmarks.NewLabel).Compare(conf.Benchmarks.Cases)
	if err != nil {
		return err
	}
	return r.Comparison(w, cmp)
}
