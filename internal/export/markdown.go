// Package export converts generated guide pages to other formats.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/alnah/go-docx2html/internal/render"
)

// ErrMarkdownExport indicates the guide body could not be converted.
var ErrMarkdownExport = errors.New("markdown export failed")

// decorationPattern matches badges and dividers added by post-processing.
var decorationPattern = regexp.MustCompile(`(?is)<span class="category-label">.*?</span>\s*|<div class="(?:section-divider|time-badge)">.*?</div>`)

// MarkdownExporter converts the body of a guide page to Markdown.
type MarkdownExporter struct {
	conv *converter.Converter
}

// NewMarkdownExporter returns an exporter using the CommonMark rules.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Export returns the Markdown for the guide body of page. The page title is
// written as a level 1 heading when given.
func (e *MarkdownExporter) Export(page, title string) (string, error) {
	body := decorationPattern.ReplaceAllString(render.ContentOf(page), "")
	md, err := e.conv.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownExport, err)
	}
	md = strings.TrimSpace(md)
	if title = strings.TrimSpace(title); title != "" {
		md = "# " + title + "\n\n" + md
	}
	return md + "\n", nil
}
