// Package review checks generated guide pages and their source documents
// and scores the result.
package review

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-docx2html/internal/layout"
)

// Severity classifies a finding.
type Severity int

const (
	Success Severity = iota
	Warning
	Issue
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "ok"
	case Warning:
		return "warning"
	case Issue:
		return "issue"
	}
	return "unknown"
}

// Finding is one check result.
type Finding struct {
	Severity Severity
	Subject  string
	Message  string
}

// Report collects findings.
type Report struct {
	Findings []Finding
	Guides   int
	Sources  int
}

func (r *Report) add(sev Severity, subject, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of findings of a severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Filter returns the findings of a severity in report order.
func (r *Report) Filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// HasIssues reports whether any check failed hard.
func (r *Report) HasIssues() bool { return r.Count(Issue) > 0 }

// Score is the share of successful checks, from 0 to 100. An empty report
// scores 0.
func (r *Report) Score() float64 {
	if len(r.Findings) == 0 {
		return 0
	}
	return float64(r.Count(Success)) / float64(len(r.Findings)) * 100
}

// Rating buckets the score: "excellent" from 90, "good" from 70, else
// "attention".
func (r *Report) Rating() string {
	switch score := r.Score(); {
	case score >= 90:
		return "excellent"
	case score >= 70:
		return "good"
	default:
		return "attention"
	}
}

// Options tune the guide checks.
type Options struct {
	MinSize     int64  // smaller guides are an issue
	MinSections int    // fewer level 2 headings is a warning
	HubHref     string // expected back-to-hub link, "" disables the check
}

// DefaultOptions returns the checks used by the review command.
func DefaultOptions() Options {
	return Options{
		MinSize:     1000,
		MinSections: 2,
		HubHref:     "../../index.html",
	}
}

type guideFacts struct {
	doctype  bool
	charset  bool
	title    bool
	nav      bool
	footer   bool
	sidebar  bool
	script   bool
	backLink bool
	sections int
}

func (f guideFacts) missing() []string {
	checks := []struct {
		name string
		ok   bool
	}{
		{"DOCTYPE", f.doctype},
		{"charset UTF-8", f.charset},
		{"title", f.title},
		{"sidebar", f.sidebar},
		{"navigation", f.nav},
		{"scripts", f.script},
		{"footer", f.footer},
	}
	var out []string
	for _, c := range checks {
		if !c.ok {
			out = append(out, c.name)
		}
	}
	return out
}

func inspect(r io.Reader, hub string) (guideFacts, error) {
	var f guideFacts
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return f, nil
			}
			return f, z.Err()
		case html.DoctypeToken:
			if strings.EqualFold(string(z.Text()), "html") {
				f.doctype = true
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Meta:
				if charsetUTF8(tok) {
					f.charset = true
				}
			case atom.Title:
				f.title = true
			case atom.Nav:
				f.nav = true
			case atom.Footer:
				f.footer = true
			case atom.Script:
				f.script = true
			case atom.H2:
				f.sections++
			case atom.A:
				if hub != "" && attr(tok, "href") == hub {
					f.backLink = true
				}
			}
			if strings.Contains(strings.ToLower(attr(tok, "class")), "sidebar") {
				f.sidebar = true
			}
		}
	}
}

func charsetUTF8(tok html.Token) bool {
	if cs := attr(tok, "charset"); cs != "" {
		return strings.EqualFold(cs, "utf-8")
	}
	if strings.EqualFold(attr(tok, "http-equiv"), "content-type") {
		return strings.Contains(strings.ToLower(attr(tok, "content")), "charset=utf-8")
	}
	return false
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// CheckGuide reviews one guide page and appends the findings to r.
func (r *Report) CheckGuide(name string, data []byte, opts Options) error {
	r.Guides++
	size := int64(len(data))
	if size < opts.MinSize {
		r.add(Issue, name, "file too small (%d bytes)", size)
		return nil
	}

	facts, err := inspect(bytes.NewReader(data), opts.HubHref)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if missing := facts.missing(); len(missing) > 0 {
		r.add(Warning, name, "missing %s", strings.Join(missing, ", "))
	} else {
		r.add(Success, name, "ok (%d bytes)", size)
	}
	if opts.HubHref != "" && !facts.backLink {
		r.add(Issue, name, "back-to-hub link missing or not %q", opts.HubHref)
	}
	if facts.sections < opts.MinSections {
		r.add(Warning, name, "little content (%d sections)", facts.sections)
	}
	return nil
}

// Reviewer walks guide and source trees.
type Reviewer struct {
	Layout  *layout.Layout
	Options Options
}

// Review checks every guide under guideDir. When sourceDir is set, each
// source document must be non-empty and have its guide under guideDir.
func (v *Reviewer) Review(ctx context.Context, guideDir, sourceDir string) (*Report, error) {
	r := &Report{}

	guides, err := v.findGuides(guideDir)
	if err != nil {
		return nil, err
	}
	for _, path := range guides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := r.CheckGuide(relName(guideDir, path), data, v.Options); err != nil {
			return nil, err
		}
	}

	if sourceDir == "" {
		return r, nil
	}
	d, err := layout.Discover(sourceDir)
	if err != nil {
		return nil, err
	}
	for _, src := range d.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.Sources++
		name := relName(sourceDir, src.Path)
		info, err := os.Stat(src.Path)
		if err != nil {
			return nil, err
		}
		if info.Size() == 0 {
			r.add(Warning, name, "empty source document")
		} else {
			r.add(Success, name, "ok")
		}

		guide := v.Layout.GuidePath(guideDir, src)
		if _, err := os.Stat(guide); err != nil {
			r.add(Issue, relName(guideDir, guide), "missing guide for %s", name)
		}
	}
	return r, nil
}

func (v *Reviewer) findGuides(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.IsDir() && v.Layout.IsGuide(path) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return paths, err
}

func relName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
