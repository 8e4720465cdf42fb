package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	elemtrack "github.com/dbecchi/elemtrack"
	"github.com/dbecchi/elemtrack/internal/assets"
	"github.com/dbecchi/elemtrack/internal/config"
	"github.com/dbecchi/elemtrack/internal/dateutil"
	"github.com/dbecchi/elemtrack/internal/extgen"
	"github.com/dbecchi/elemtrack/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrReadNotes        = errors.New("failed to read notes file")
	ErrWriteReport      = errors.New("failed to write report")
	ErrDumpJSONExternal = errors.New("--dump-json is not available with an external generator")
)

// File permission constants.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// loadAndMergeConfig resolves the effective config for a run: the config
// file (explicit or discovered) overlaid with CLI flags, CLI winning.
func loadAndMergeConfig(flags *generateFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mergeGenerateFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeGenerateFlags merges CLI flags into config. CLI values override config values.
func mergeGenerateFlags(flags *generateFlags, cfg *config.Config) {
	if flags.endpoint.apiURL != "" {
		cfg.API.URL = flags.endpoint.apiURL
	}
	if flags.endpoint.sheetID != "" {
		cfg.API.SheetID = flags.endpoint.sheetID
	}
	if flags.endpoint.timeout != "" {
		cfg.API.Timeout = flags.endpoint.timeout
	}
	if flags.report.output != "" {
		cfg.Report.Output = flags.report.output
	}
	if flags.report.title != "" {
		cfg.Report.Title = flags.report.title
	}
	if flags.report.notes != "" {
		cfg.Report.Notes = flags.report.notes
	}
	if flags.report.style != "" {
		cfg.Report.Style = flags.report.style
	}
	if flags.report.date != "" {
		cfg.Report.Date = flags.report.date
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// runGenerate orchestrates a single report generation.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	cfg, err := loadAndMergeConfig(flags)
	if err != nil {
		return err
	}
	return generateReport(ctx, cfg, flags, env)
}

// generateReport produces the report file described by cfg. Shared
// between the generate command and the publish pipeline.
func generateReport(ctx context.Context, cfg *config.Config, flags *generateFlags, env *Environment) error {
	if cfg.API.URL == "" {
		return elemtrack.ErrMissingAPIURL
	}

	if cfg.Generator.External() {
		return runExternalGenerator(ctx, cfg, flags, env)
	}

	// Resolve "auto" date before rendering.
	updated, err := dateutil.Resolve(cfg.Report.Date, env.Now())
	if err != nil {
		return err
	}

	notes, err := readNotes(cfg.Report.Notes)
	if err != nil {
		return err
	}

	opts, err := serviceOptions(cfg, env)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Fetching %s\n", cfg.API.URL)
	}

	svc := elemtrack.New(opts...)
	result, err := svc.Generate(ctx, elemtrack.Input{
		APIURL:  cfg.API.URL,
		SheetID: cfg.API.SheetID,
		Title:   cfg.Report.Title,
		Notes:   notes,
		Updated: updated,
	})
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(cfg.Report.Output, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteReport, cfg.Report.Output, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%d bytes)\n", cfg.Report.Output, len(result.HTML))
	}

	if flags.report.dumpJSON != "" {
		if err := fileutil.WriteFileAtomic(flags.report.dumpJSON, result.RawJSON, filePermissions); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteReport, flags.report.dumpJSON, err)
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s (%d bytes)\n", flags.report.dumpJSON, len(result.RawJSON))
		}
	}

	if flags.report.preview != "" {
		if err := capturePreview(ctx, result.HTML, flags.report.preview, cfg, env, flags.common.quiet); err != nil {
			return err
		}
	}
	return nil
}

// runExternalGenerator delegates report generation to the configured
// external command, then handles preview on its output file.
func runExternalGenerator(ctx context.Context, cfg *config.Config, flags *generateFlags, env *Environment) error {
	if flags.report.dumpJSON != "" {
		return ErrDumpJSONExternal
	}

	var stdout, stderr = env.Stdout, env.Stderr
	if flags.common.quiet {
		stdout = nil
	}
	err := env.RunExtgen(ctx, extgen.Options{
		Command: cfg.Generator.Command,
		Venv:    cfg.Generator.Venv,
		APIURL:  cfg.API.URL,
		Output:  cfg.Report.Output,
		Title:   cfg.Report.Title,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	if err != nil {
		return err
	}

	if flags.report.preview != "" {
		html, err := os.ReadFile(cfg.Report.Output)
		if err != nil {
			return fmt.Errorf("reading generated report: %w", err)
		}
		return capturePreview(ctx, html, flags.report.preview, cfg, env, flags.common.quiet)
	}
	return nil
}

// capturePreview renders html in headless Chrome and writes a PNG.
func capturePreview(ctx context.Context, html []byte, path string, cfg *config.Config, env *Environment, quiet bool) error {
	timeout, err := endpointTimeout(cfg)
	if err != nil {
		return err
	}
	p := elemtrack.NewPreviewer(timeout)
	defer func() { _ = p.Close() }()

	png, err := p.Capture(ctx, html)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, png, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteReport, path, err)
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%d bytes)\n", path, len(png))
	}
	return nil
}

// serviceOptions translates config into library options.
func serviceOptions(cfg *config.Config, env *Environment) ([]elemtrack.Option, error) {
	var opts []elemtrack.Option

	if cfg.API.Timeout != "" {
		d, err := endpointTimeout(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, elemtrack.WithTimeout(d))
	}
	if cfg.Report.Style != "" {
		opts = append(opts, elemtrack.WithStyle(cfg.Report.Style))
	}

	switch {
	case cfg.Assets.BasePath != "":
		loader, err := assets.NewLoader(cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, elemtrack.WithAssetLoader(loader))
	case env.AssetLoader != nil:
		opts = append(opts, elemtrack.WithAssetLoader(env.AssetLoader))
	}
	return opts, nil
}

// endpointTimeout parses the configured timeout, defaulting to 30s.
// Config validation already rejected malformed values, but the parse
// error is still surfaced for manually assembled configs.
func endpointTimeout(cfg *config.Config) (time.Duration, error) {
	if cfg.API.Timeout == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(cfg.API.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", config.ErrInvalidTimeout, cfg.API.Timeout)
	}
	return d, nil
}

// readNotes loads the optional markdown notes file.
func readNotes(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadNotes, path, err)
	}
	return string(data), nil
}
