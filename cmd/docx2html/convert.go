package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	docx2html "github.com/alnah/go-docx2html"
	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/layout"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrNoSources    = errors.New("no session documents found")
	ErrReadSource   = errors.New("failed to read session document")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrBatchFailed  = errors.New("some documents failed")
	ErrServiceInit  = errors.New("failed to initialize conversion service")
	ErrReviewIssues = errors.New("review found issues")
	ErrWatchInput   = errors.New("watch needs a directory input")
)

// CLIConverter is the conversion service used by the commands.
type CLIConverter interface {
	Convert(ctx context.Context, input docx2html.Input) (*docx2html.ConvertResult, error)
	Restyle(ctx context.Context, page string) (string, error)
	Close() error
}

var _ CLIConverter = (*docx2html.Converter)(nil)

// parseErr turns a flag parsing error into a usage error. --help is not an
// error.
func parseErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return parseErr(err)
	}
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	b, err := newBuilder(cfg, inputPath, env, logger)
	if err != nil {
		return err
	}
	defer b.close()

	jobs, err := b.plan()
	if err != nil {
		return err
	}
	results := b.build(ctx, jobs)
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return ctx.Err()
}

// loadConfig loads the config named by the flag or DOCX2HTML_CONFIG, then
// fills empty fields from the environment.
func loadConfig(flagValue string) (*config.Config, error) {
	envCfg := loadEnvConfig()
	name := flagValue
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeConvertFlags copies set flags into cfg. CLI wins.
func mergeConvertFlags(f *convertFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Output.DefaultDir, f.output)
	set(&cfg.Output.GuidePattern, f.pattern)
	set(&cfg.PDF.Timeout, f.timeout)
	set(&cfg.Watch.Debounce, f.debounce)

	set(&cfg.Site.Name, f.site.name)
	set(&cfg.Site.Language, f.site.language)
	set(&cfg.Site.Footer, f.site.footer)
	set(&cfg.Site.HubHref, f.site.hubHref)
	set(&cfg.Site.PresentationHref, f.site.presentationHref)
	if f.site.noDownload {
		disabled := false
		cfg.Site.DownloadLink = &disabled
	}

	mergeAssetFlags(&f.assets, cfg)
	mergePassFlags(&f.passes, cfg)

	if f.exports.markdown {
		cfg.Output.Markdown = true
	}
	if f.exports.pdf {
		cfg.Output.PDF = true
	}
}

func mergeAssetFlags(f *assetFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Style.Name = f.style
	}
	if f.template != "" {
		cfg.Style.Template = f.template
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

func mergePassFlags(f *passFlags, cfg *config.Config) {
	if names := splitList(f.passes); len(names) > 0 {
		cfg.Passes.Enabled = names
	}
	if f.navigation != "" {
		cfg.Passes.Navigation = f.navigation
	}
	if f.groupByCategory {
		cfg.Passes.GroupByCategory = true
	}
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the guide root. Without a configured directory,
// guides are written next to their sources.
func resolveOutputDir(cfg *config.Config, inputPath string) (string, error) {
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir, nil
	}
	info, err := os.Stat(inputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	if info.IsDir() {
		return inputPath, nil
	}
	return filepath.Dir(filepath.Dir(inputPath)), nil
}

// converterOptions maps the configuration onto library options.
func converterOptions(cfg *config.Config, env *Environment, logger *slog.Logger) ([]docx2html.Option, error) {
	opts := []docx2html.Option{
		docx2html.WithStyle(cfg.Style.Name),
		docx2html.WithTemplate(cfg.Style.Template),
		docx2html.WithAssetPath(cfg.Assets.BasePath),
		docx2html.WithLanguage(cfg.Site.Language),
		docx2html.WithPasses(cfg.Passes.Enabled...),
		docx2html.WithNavigation(cfg.Passes.Navigation),
		docx2html.WithGroupByCategory(cfg.Passes.GroupByCategory),
		docx2html.WithExtractOptions(extractOptions(cfg.Extract)),
		docx2html.WithSite(docx2html.Site{
			Name:             cfg.Site.Name,
			Footer:           cfg.Site.Footer,
			HubHref:          cfg.Site.HubHref,
			PresentationHref: cfg.Site.PresentationHref,
		}),
		docx2html.WithLogger(logger),
		docx2html.WithNow(env.Now),
	}
	timeout, err := config.ParseDuration("pdf.timeout", cfg.PDF.Timeout)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, docx2html.WithTimeout(timeout))
	}
	return opts, nil
}

// extractOptions overrides the default heuristics with configured values.
func extractOptions(c config.ExtractConfig) docx2html.ExtractOptions {
	opts := docx2html.DefaultExtractOptions()
	if len(c.HeadingStyles) > 0 {
		opts.HeadingStyles = c.HeadingStyles
	}
	if c.MinBoldLength > 0 {
		opts.MinBoldLength = c.MinBoldLength
	}
	if len(c.SubheadingMarkers) > 0 {
		opts.SubheadingMarkers = c.SubheadingMarkers
	}
	if len(c.TitleMarkers) > 0 {
		opts.TitleMarkers = c.TitleMarkers
	}
	if len(c.TitleNoise) > 0 {
		opts.TitleNoise = c.TitleNoise
	}
	return opts
}

func newLayout(cfg *config.Config) (*layout.Layout, error) {
	lay, err := layout.New(cfg.Output.GuidePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return lay, nil
}
