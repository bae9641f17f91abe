package postprocess

import (
	"context"
	"regexp"
	"strings"
)

// styleMarker tags the injected <style> element so later runs replace it.
const styleMarker = "data-guide-style"

var injectedStylePattern = regexp.MustCompile(`(?s)<style ` + styleMarker + `>.*?</style>`)

// cssPass injects the guide stylesheet.
type cssPass struct {
	css string
}

func (p *cssPass) Name() string { return PassCSS }

func (p *cssPass) Apply(ctx context.Context, page string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return InjectCSS(page, p.css), nil
}

// InjectCSS places css in a marked <style> block: replacing a block left by
// an earlier run, else before </head>, else right after <body>, else at the
// start of the page. Empty css leaves the page unchanged.
func InjectCSS(page, css string) string {
	if css == "" {
		return page
	}
	block := "<style " + styleMarker + ">" + sanitizeCSS(css) + "</style>"

	if loc := injectedStylePattern.FindStringIndex(page); loc != nil {
		return page[:loc[0]] + block + page[loc[1]:]
	}

	lower := strings.ToLower(page)
	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return page[:idx] + block + "\n" + page[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(page[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return page[:pos] + block + page[pos:]
		}
	}
	return block + page
}

// sanitizeCSS keeps stylesheet text from closing the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
