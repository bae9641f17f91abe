package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// ErrPageRender indicates the guide template failed to execute.
var ErrPageRender = errors.New("page template rendering failed")

// ContentID is the id of the element wrapping the guide body in every page.
const ContentID = "guide-content"

// Labels are the localized interface strings of a guide page.
type Labels struct {
	BackToHub        string
	ViewPresentation string
	TrainerGuide     string
	GuideSubtitle    string
	OriginalDocument string
	DownloadHint     string
	DownloadWord     string
	Navigation       string
	ClickToNavigate  string
	ReadingProgress  string
	PercentRead      string
}

// Page holds everything the guide template displays.
type Page struct {
	Lang             string
	PageTitle        string
	SessionTitle     string
	ModuleLabel      string
	SessionLabel     string
	SiteName         string
	Footer           string
	HubHref          string
	PresentationHref string
	DownloadHref     string
	Labels           Labels
	Content          template.HTML
}

// PageRenderer executes the guide template.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the guide template.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("guide").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing guide template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render produces the complete guide document.
func (r *PageRenderer) Render(ctx context.Context, page *Page) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if page == nil {
		return "", fmt.Errorf("%w: nil page", ErrPageRender)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

var contentOpenPattern = regexp.MustCompile(`(?i)<article\b[^>]*\bid="` + ContentID + `"[^>]*>`)

// ContentBounds locates the guide body inside a page. It returns the byte
// offsets of the body, excluding the wrapping tags, and false when the page
// has no content element.
func ContentBounds(page string) (start, end int, ok bool) {
	loc := contentOpenPattern.FindStringIndex(page)
	if loc == nil {
		return 0, 0, false
	}
	rest := strings.ToLower(page[loc[1]:])
	closeIdx := strings.LastIndex(rest, "</article>")
	if closeIdx == -1 {
		return 0, 0, false
	}
	return loc[1], loc[1] + closeIdx, true
}

// ContentOf returns the guide body of page, or page itself when it carries
// no content element.
func ContentOf(page string) string {
	start, end, ok := ContentBounds(page)
	if !ok {
		return page
	}
	return page[start:end]
}

// MapContent replaces the guide body of page with fn applied to it. Pages
// without a content element are treated as bare bodies.
func MapContent(page string, fn func(string) string) string {
	start, end, ok := ContentBounds(page)
	if !ok {
		return fn(page)
	}
	return page[:start] + fn(page[start:end]) + page[end:]
}
