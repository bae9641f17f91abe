package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docx2html/internal/layout"
)

// restyleResult is the outcome for one existing guide.
type restyleResult struct {
	Path    string
	Changed bool
	Err     error
}

// runRestyleCmd re-applies the post-processing passes to guides already on
// disk, without their source documents.
func runRestyleCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRestyleFlags(args, env.Stderr)
	if err != nil {
		return parseErr(err)
	}
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	if flags.pattern != "" {
		cfg.Output.GuidePattern = flags.pattern
	}
	mergeAssetFlags(&flags.assets, cfg)
	mergePassFlags(&flags.passes, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir, err := resolveGuideDir(positional, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}
	lay, err := newLayout(cfg)
	if err != nil {
		return err
	}
	guides, err := findGuides(dir, lay)
	if err != nil {
		return err
	}
	if len(guides) == 0 {
		return fmt.Errorf("%w: no %s files in %s", ErrNoSources, lay.GuideGlob(), dir)
	}

	opts, err := converterOptions(cfg, env, logger)
	if err != nil {
		return err
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	var failed, changed int
	for _, path := range guides {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		res := restyleFile(ctx, conv, path, flags.dryRun)
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", res.Path, res.Err, hintFor(res.Err))
		case res.Changed:
			changed++
			if !flags.common.quiet {
				verb := "Restyled"
				if flags.dryRun {
					verb = "Would restyle"
				}
				fmt.Fprintf(env.Stdout, "%s %s\n", verb, res.Path)
			}
		default:
			logger.Debug("unchanged", "guide", res.Path)
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\n%d guides, %d changed, %d failed\n", len(guides), changed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(guides))
	}
	return nil
}

func restyleFile(ctx context.Context, conv CLIConverter, path string, dryRun bool) restyleResult {
	res := restyleResult{Path: path}
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return res
	}
	page, err := conv.Restyle(ctx, string(data))
	if err != nil {
		res.Err = err
		return res
	}
	if page == string(data) {
		return res
	}
	res.Changed = true
	if !dryRun {
		res.Err = writeOutput(path, []byte(page))
	}
	return res
}

// resolveGuideDir returns the positional directory or the configured output
// directory.
func resolveGuideDir(args []string, fallback string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoInput
}

// findGuides lists guide files under dir, skipping hidden directories.
func findGuides(dir string, lay *layout.Layout) ([]string, error) {
	var guides []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if lay.IsGuide(path) {
			guides = append(guides, path)
		}
		return nil
	})
	return guides, err
}
