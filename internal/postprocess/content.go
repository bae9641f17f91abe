package postprocess

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-docx2html/internal/render"
)

// funcPass is a pass limited to the guide body.
type funcPass struct {
	name string
	fn   func(string) string
}

func contentPass(name string, fn func(string) string) Pass {
	return &funcPass{name: name, fn: fn}
}

func (p *funcPass) Name() string { return p.name }

func (p *funcPass) Apply(ctx context.Context, page string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return render.MapContent(page, p.fn), nil
}

var (
	bracketCodePattern   = regexp.MustCompile(`\[[\w\-#]+\]`)
	bracketNotePattern   = regexp.MustCompile(`\[[^\]\n]{0,50}\]`)
	repeatedDotsPattern  = regexp.MustCompile(`\.{2,}`)
	emptyParagraph       = regexp.MustCompile(`<p[^>]*>\s*</p>`)
	repeatedSpacePattern = regexp.MustCompile(`\s{2,}`)
	asyncPhrasePattern   = regexp.MustCompile(`(?i)atividade assíncrona`)

	leadIcons           = []string{"🎯", "📝", "🚀", "💡", "📦", "🔧"}
	highlightIcons      = []string{"🎯", "📝", "🚀", "💡", "📦", "🔧", "⚠️", "💭"}
	repeatedIconPattern = regexp.MustCompile(`(<p[^>]*>)(` + alternation(leadIcons) + `)(?:` + alternation(leadIcons) + `)+`)
	highlightPattern    = regexp.MustCompile(`<p>(` + alternation(highlightIcons) + `)\s*([^<]+)</p>`)
)

// cleanup removes authoring leftovers: bracketed codes and notes, runs of
// dots and whitespace, empty paragraphs, stacked icons and repeated
// "Atividade Assíncrona" phrases on one line.
func cleanup(content string) string {
	content = repeatedSpacePattern.ReplaceAllString(content, " ")
	content = bracketCodePattern.ReplaceAllString(content, "")
	content = bracketNotePattern.ReplaceAllString(content, "")
	content = repeatedIconPattern.ReplaceAllString(content, "${1}${2}")
	content = repeatedDotsPattern.ReplaceAllString(content, ".")
	content = dedupeAsyncPhrase(content)
	content = emptyParagraph.ReplaceAllString(content, "")
	return repeatedSpacePattern.ReplaceAllString(content, " ")
}

// dedupeAsyncPhrase keeps the first "Atividade Assíncrona" of each line.
func dedupeAsyncPhrase(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		locs := asyncPhrasePattern.FindAllStringIndex(line, -1)
		if len(locs) < 2 {
			continue
		}
		var sb strings.Builder
		sb.WriteString(line[:locs[1][0]])
		for j := 1; j < len(locs); j++ {
			end := len(line)
			if j+1 < len(locs) {
				end = locs[j+1][0]
			}
			sb.WriteString(line[locs[j][1]:end])
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// highlight turns paragraphs led by an icon into highlight boxes.
func highlight(content string) string {
	return highlightPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := highlightPattern.FindStringSubmatch(m)
		text := strings.TrimSpace(sub[2])
		if text == "" {
			return m
		}
		return `<p class="highlight-text"><strong>` + sub[1] + " " + text + `</strong></p>`
	})
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// plainText strips tags and decodes entities.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
