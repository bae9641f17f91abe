package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/review"
)

func runReviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseReviewFlags(args, env.Stderr)
	if err != nil {
		return parseErr(err)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	if flags.pattern != "" {
		cfg.Output.GuidePattern = flags.pattern
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	guideDir, err := resolveGuideDir(positional, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}
	sourceDir := flags.sources
	if sourceDir == "" {
		sourceDir = cfg.Input.DefaultDir
	}
	lay, err := newLayout(cfg)
	if err != nil {
		return err
	}

	reviewer := &review.Reviewer{Layout: lay, Options: reviewOptions(cfg, flags)}
	report, err := reviewer.Review(ctx, guideDir, sourceDir)
	if err != nil {
		return err
	}

	printReport(env.Stdout, report, flags.common.quiet, flags.showAll || flags.common.verbose)
	if report.HasIssues() {
		return fmt.Errorf("%w: %d", ErrReviewIssues, report.Count(review.Issue))
	}
	return nil
}

// reviewOptions layers flags over config over defaults.
func reviewOptions(cfg *config.Config, flags *reviewFlags) review.Options {
	opts := review.DefaultOptions()
	opts.HubHref = cfg.Site.HubHref
	if cfg.Review.MinSize > 0 {
		opts.MinSize = cfg.Review.MinSize
	}
	if cfg.Review.MinSections > 0 {
		opts.MinSections = cfg.Review.MinSections
	}
	if flags.minSize > 0 {
		opts.MinSize = flags.minSize
	}
	if flags.minSections > 0 {
		opts.MinSections = flags.minSections
	}
	return opts
}

// printReport lists issues and warnings, then the summary and score.
func printReport(w io.Writer, r *review.Report, quiet, showAll bool) {
	if !quiet {
		fmt.Fprintf(w, "Reviewed %d guides, %d source documents\n\n", r.Guides, r.Sources)
	}

	sections := []struct {
		sev   review.Severity
		title string
		show  bool
	}{
		{review.Issue, "Issues", true},
		{review.Warning, "Warnings", !quiet},
		{review.Success, "Passed", showAll && !quiet},
	}
	for _, s := range sections {
		findings := r.Filter(s.sev)
		if !s.show || len(findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", s.title, len(findings))
		for _, f := range findings {
			fmt.Fprintf(w, "  [%s] %s: %s\n", f.Severity, f.Subject, f.Message)
		}
		fmt.Fprintln(w)
	}

	if quiet {
		return
	}
	fmt.Fprintf(w, "%d passed, %d warnings, %d issues\n",
		r.Count(review.Success), r.Count(review.Warning), r.Count(review.Issue))
	fmt.Fprintf(w, "Score: %.0f%% (%s)\n", r.Score(), r.Rating())
}
