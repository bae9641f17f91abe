package postprocess

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/alnah/go-docx2html/internal/extract"
	"github.com/alnah/go-docx2html/internal/render"
)

// navLabelLimit truncates flat navigation labels, in runes.
const navLabelLimit = 40

// fallbackNavIcon marks flat links whose heading has no known icon.
const fallbackNavIcon = "📄"

var (
	navPattern           = regexp.MustCompile(`(?is)(<nav\b[^>]*\bid="guide-nav"[^>]*>)(.*?)(</nav>)`)
	headingPattern       = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)
	categoryLabelPattern = regexp.MustCompile(`(?is)<span class="category-label">.*?</span>\s*`)
)

type navHeading struct {
	level int
	id    string
	text  string
}

// navigationPass rebuilds the sidebar links from the body headings.
type navigationPass struct {
	style    string
	category func(extract.Category) string
	policy   *bluemonday.Policy
}

func (p *navigationPass) Name() string { return PassNavigation }

func (p *navigationPass) Apply(ctx context.Context, page string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	loc := navPattern.FindStringSubmatchIndex(page)
	if loc == nil {
		return page, nil
	}

	headings := p.headings(render.ContentOf(page))
	var links string
	if p.style == NavFlat {
		links = flatLinks(headings)
	} else {
		links = p.groupedLinks(headings)
	}
	return page[:loc[3]] + links + page[loc[6]:], nil
}

// headings returns the level 2 headings of content, or its level 3
// headings when there is no level 2 at all.
func (p *navigationPass) headings(content string) []navHeading {
	var all []navHeading
	minLevel := 7
	for _, m := range headingPattern.FindAllStringSubmatch(content, -1) {
		level, _ := strconv.Atoi(m[1])
		if level < 2 || level > 3 {
			continue
		}
		inner := categoryLabelPattern.ReplaceAllString(m[3], "")
		text := strings.TrimSpace(html.UnescapeString(p.policy.Sanitize(inner)))
		all = append(all, navHeading{level: level, id: m[2], text: text})
		minLevel = min(minLevel, level)
	}
	var out []navHeading
	for _, h := range all {
		if h.level == minLevel {
			out = append(out, h)
		}
	}
	return out
}

// groupedLinks emits one link per category, in display order, pointing at
// the first heading of that category.
func (p *navigationPass) groupedLinks(headings []navHeading) string {
	first := make(map[extract.Category]navHeading)
	for _, h := range headings {
		cat := extract.Categorize(h.text)
		if _, ok := first[cat]; !ok {
			first[cat] = h
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, cat := range extract.CategoryOrder() {
		h, ok := first[cat]
		if !ok {
			continue
		}
		writeLink(&sb, h.id, cat.Icon(), p.category(cat))
	}
	return sb.String()
}

func flatLinks(headings []navHeading) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, h := range headings {
		icon, text := splitIcon(h.text)
		if icon == "" {
			icon = fallbackNavIcon
		}
		writeLink(&sb, h.id, icon, truncate(text, navLabelLimit))
	}
	return sb.String()
}

func writeLink(sb *strings.Builder, id, icon, label string) {
	sb.WriteString(`<a href="#` + html.EscapeString(id) + `" class="sidebar-link">`)
	sb.WriteString(`<span class="sidebar-link-icon">` + icon + `</span>`)
	sb.WriteString(`<span class="flex-1">` + html.EscapeString(label) + `</span></a>` + "\n")
}

// splitIcon separates a leading heading icon from the text.
func splitIcon(text string) (icon, rest string) {
	for _, candidate := range extract.Icons() {
		if after, ok := strings.CutPrefix(text, candidate); ok {
			return candidate, strings.TrimSpace(after)
		}
	}
	return "", text
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
