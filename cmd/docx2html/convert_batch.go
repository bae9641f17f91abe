package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	docx2html "github.com/alnah/go-docx2html"
	"github.com/alnah/go-docx2html/internal/fileutil"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Extra      []string // export files written next to the guide
	Title      string
	Err        error
	Duration   time.Duration
}

// build converts jobs one at a time. Cancellation stops the batch between
// documents; the remaining jobs are reported as cancelled.
func (b *builder) build(ctx context.Context, jobs []guideJob) []ConversionResult {
	results := make([]ConversionResult, 0, len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			results = append(results, ConversionResult{InputPath: job.Source.Path, Err: ctx.Err()})
			continue
		}
		res := b.buildOne(ctx, job)
		if res.Err != nil {
			b.log.Error("conversion failed", "source", res.InputPath, "error", res.Err)
		} else {
			b.log.Debug("guide written", "source", res.InputPath, "guide", res.OutputPath, "elapsed", res.Duration)
		}
		results = append(results, res)
	}
	return results
}

// buildOne converts one document and writes the guide and its exports.
func (b *builder) buildOne(ctx context.Context, job guideJob) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: job.Source.Path, OutputPath: job.OutputPath}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	data, err := os.ReadFile(job.Source.Path) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadSource, err))
	}

	conv, err := b.conv.Convert(ctx, docx2html.Input{
		Data:         data,
		Format:       job.Source.Format,
		Module:       job.Source.ModuleNumber,
		Session:      job.Source.Session,
		DownloadHref: job.DownloadHref,
		Markdown:     b.cfg.Output.Markdown,
		PDF:          b.cfg.Output.PDF,
		BaseDir:      filepath.Dir(job.OutputPath),
	})
	if err != nil {
		return done(err)
	}
	result.Title = conv.Title

	if err := writeOutput(job.OutputPath, []byte(conv.HTML)); err != nil {
		return done(err)
	}
	if b.cfg.Output.Markdown {
		path := fileutil.ReplaceExt(job.OutputPath, ".md")
		if err := writeOutput(path, []byte(conv.Markdown)); err != nil {
			return done(err)
		}
		result.Extra = append(result.Extra, path)
	}
	if b.cfg.Output.PDF {
		path := fileutil.ReplaceExt(job.OutputPath, ".pdf")
		if err := writeOutput(path, conv.PDF); err != nil {
			return done(err)
		}
		result.Extra = append(result.Extra, path)
	}
	return done(nil)
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes one line per document and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		for _, extra := range r.Extra {
			fmt.Fprintf(env.Stdout, "Created %s\n", extra)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}
