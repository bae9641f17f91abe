package postprocess

import (
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-docx2html/internal/extract"
)

const (
	dividerHTML       = `<div class="section-divider"></div>`
	timeBadgeOpen     = `<div class="time-badge">`
	categoryLabelOpen = `<span class="category-label">`
)

var (
	h2Pattern       = regexp.MustCompile(`(?s)(<h2\b[^>]*>)(.*?)(</h2>)`)
	h2OpenPattern   = regexp.MustCompile(`(?i)<h2\b`)
	subheadPattern  = regexp.MustCompile(`(?is)<h[23]\b[^>]*>(.*?)</h[23]>`)
	durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:min|minutos)`)
)

// categoryLabels prefixes practice and objectives headings with a badge.
func categoryLabels(content, practice, objectives string) string {
	return h2Pattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := h2Pattern.FindStringSubmatch(m)
		if strings.Contains(sub[2], categoryLabelOpen) {
			return m
		}
		var label string
		switch extract.Categorize(plainText(sub[2])) {
		case extract.CategoryActivities:
			label = practice
		case extract.CategoryObjectives:
			label = objectives
		}
		if label == "" {
			return m
		}
		return sub[1] + categoryLabelOpen + html.EscapeString(label) + "</span> " + sub[2] + sub[3]
	})
}

// timeBadges adds a duration badge after headings that mention minutes.
func timeBadges(content string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range subheadPattern.FindAllStringSubmatchIndex(content, -1) {
		end := loc[1]
		m := durationPattern.FindStringSubmatch(plainText(content[loc[2]:loc[3]]))
		if m == nil {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(content[end:], " \t\r\n"), timeBadgeOpen) {
			continue
		}
		sb.WriteString(content[last:end])
		sb.WriteString("\n" + timeBadgeOpen + "⏱️ " + m[1] + " min</div>")
		last = end
	}
	if last == 0 {
		return content
	}
	sb.WriteString(content[last:])
	return sb.String()
}

// dividers inserts a divider before every level 2 heading but the first.
func dividers(content string) string {
	locs := h2OpenPattern.FindAllStringIndex(content, -1)
	if len(locs) < 2 {
		return content
	}
	var sb strings.Builder
	last := 0
	for _, loc := range locs[1:] {
		start := loc[0]
		if strings.HasSuffix(strings.TrimRight(content[:start], " \t\r\n"), dividerHTML) {
			continue
		}
		sb.WriteString(content[last:start])
		sb.WriteString(dividerHTML + "\n")
		last = start
	}
	sb.WriteString(content[last:])
	return sb.String()
}
