package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/fileutil"
	"github.com/alnah/go-docx2html/internal/hints"
	"github.com/alnah/go-docx2html/internal/layout"
)

// guideJob is one session document and where its guide goes.
type guideJob struct {
	Source       layout.Source
	OutputPath   string
	DownloadHref string
}

// builder converts session documents into guides for convert and watch.
type builder struct {
	cfg       *config.Config
	input     string
	outputDir string
	layout    *layout.Layout
	conv      CLIConverter
	env       *Environment
	log       *slog.Logger
}

func newBuilder(cfg *config.Config, inputPath string, env *Environment, logger *slog.Logger) (*builder, error) {
	lay, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}
	outputDir, err := resolveOutputDir(cfg, inputPath)
	if err != nil {
		return nil, err
	}
	opts, err := converterOptions(cfg, env, logger)
	if err != nil {
		return nil, err
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrServiceInit
	}
	return &builder{
		cfg:       cfg,
		input:     inputPath,
		outputDir: outputDir,
		layout:    lay,
		conv:      conv,
		env:       env,
		log:       logger,
	}, nil
}

func (b *builder) close() {
	if err := b.conv.Close(); err != nil {
		b.log.Warn("closing converter", "error", err)
	}
}

// plan discovers the session documents under the input path.
func (b *builder) plan() ([]guideJob, error) {
	disc, err := layout.Discover(b.input)
	if err != nil {
		return nil, err
	}
	for _, path := range disc.Skipped {
		b.log.Warn("skipped: no session number in file name", "path", path)
	}
	logSkipHint(b.log, len(disc.Skipped))
	if len(disc.Sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, b.input)
	}

	jobs := make([]guideJob, 0, len(disc.Sources))
	for _, src := range disc.Sources {
		if b.isOutput(src.Path) {
			continue
		}
		jobs = append(jobs, b.job(src))
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, b.input)
	}
	return jobs, nil
}

// isOutput reports whether path is a guide or one of its exports, which
// land in the input tree when no output directory is set.
func (b *builder) isOutput(path string) bool {
	return b.layout.IsGuide(fileutil.ReplaceExt(path, ".html"))
}

// planFile describes a single changed file, for watch mode. The module is
// taken relative to the input root.
func (b *builder) planFile(path string) (guideJob, error) {
	module, err := relModule(b.input, path)
	if err != nil {
		return guideJob{}, err
	}
	src, err := layout.NewSource(path, module)
	if err != nil {
		return guideJob{}, err
	}
	return b.job(src), nil
}

func (b *builder) job(src layout.Source) guideJob {
	out := b.layout.GuidePath(b.outputDir, src)
	job := guideJob{Source: src, OutputPath: out}
	if b.cfg.Site.DownloadEnabled() && src.Format == layout.FormatDOCX {
		href, err := fileutil.RelLink(out, src.Path)
		if err != nil {
			b.log.Debug("no download link", "source", src.Path, "error", err)
		} else {
			job.DownloadHref = href
		}
	}
	return job
}

// logSkipHint explains session naming once per run.
func logSkipHint(log *slog.Logger, skipped int) {
	if skipped > 0 {
		log.Info("some files were skipped" + hints.ForSessionName())
	}
}

// relModule returns the module directory of path relative to root, "" for
// files directly under root.
func relModule(root, path string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}
