// Package postprocess applies named, idempotent passes to generated guide
// pages: content cleanup, visual structure, sidebar navigation and style
// injection. Passes that edit content only touch the guide body, so they can
// be re-run on pages produced by earlier versions of the tool.
package postprocess

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-docx2html/internal/extract"
)

// Pass names.
const (
	PassCleanup        = "cleanup"
	PassHighlight      = "highlight"
	PassHeadingIDs     = "heading-ids"
	PassNavigation     = "navigation"
	PassCategoryLabels = "category-labels"
	PassTimeBadges     = "time-badges"
	PassDividers       = "dividers"
	PassCSS            = "css"
)

// Navigation styles.
const (
	NavGrouped = "grouped"
	NavFlat    = "flat"
)

var (
	ErrUnknownPass       = errors.New("unknown pass")
	ErrUnknownNavigation = errors.New("unknown navigation style")
)

// Pass transforms a page. Applying a pass twice gives the same result as
// applying it once.
type Pass interface {
	Name() string
	Apply(ctx context.Context, page string) (string, error)
}

// Labels are the localized strings passes insert into pages.
type Labels struct {
	Category   func(extract.Category) string
	Practice   string
	Objectives string
}

// Options configure the passes.
type Options struct {
	CSS        string
	Navigation string
	Labels     Labels
}

// DefaultPassNames returns every pass in its canonical order.
func DefaultPassNames() []string {
	return []string{
		PassCleanup,
		PassHighlight,
		PassHeadingIDs,
		PassNavigation,
		PassCategoryLabels,
		PassTimeBadges,
		PassDividers,
		PassCSS,
	}
}

// Pipeline runs passes in order.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns a pipeline of the given passes.
func NewPipeline(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// Build creates the named passes in the order given. An empty list selects
// DefaultPassNames.
func Build(names []string, opts Options) (*Pipeline, error) {
	if len(names) == 0 {
		names = DefaultPassNames()
	}
	if opts.Navigation == "" {
		opts.Navigation = NavGrouped
	}
	if opts.Navigation != NavGrouped && opts.Navigation != NavFlat {
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownNavigation, opts.Navigation, NavGrouped, NavFlat)
	}
	if opts.Labels.Category == nil {
		opts.Labels.Category = func(c extract.Category) string { return string(c) }
	}

	passes := make([]Pass, 0, len(names))
	for _, name := range names {
		p, err := newPass(strings.TrimSpace(name), opts)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return NewPipeline(passes...), nil
}

func newPass(name string, opts Options) (Pass, error) {
	switch name {
	case PassCleanup:
		return contentPass(PassCleanup, cleanup), nil
	case PassHighlight:
		return contentPass(PassHighlight, highlight), nil
	case PassHeadingIDs:
		return &headingIDsPass{}, nil
	case PassNavigation:
		return &navigationPass{
			style:    opts.Navigation,
			category: opts.Labels.Category,
			policy:   bluemonday.StrictPolicy(),
		}, nil
	case PassCategoryLabels:
		return contentPass(PassCategoryLabels, func(s string) string {
			return categoryLabels(s, opts.Labels.Practice, opts.Labels.Objectives)
		}), nil
	case PassTimeBadges:
		return contentPass(PassTimeBadges, timeBadges), nil
	case PassDividers:
		return contentPass(PassDividers, dividers), nil
	case PassCSS:
		return &cssPass{css: opts.CSS}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
	}
}

// Names returns the pass names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Run applies every pass, stopping at the first error or cancellation.
func (p *Pipeline) Run(ctx context.Context, page string) (string, error) {
	var err error
	for _, pass := range p.passes {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		page, err = pass.Apply(ctx, page)
		if err != nil {
			return "", fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
	}
	return page, nil
}
