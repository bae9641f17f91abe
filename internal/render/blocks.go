// Package render turns content blocks into HTML.
//
// Blocks renders the guide body, folding consecutive list items into one
// container and giving every heading a stable anchor id. Page wraps that
// body into the guide template.
package render

import (
	"html"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-docx2html/internal/extract"
)

// Heading is a rendered heading, as needed for navigation.
type Heading struct {
	ID       string
	Level    int
	Icon     string
	Text     string
	Category extract.Category
}

// Fragment is the rendered body of a guide.
type Fragment struct {
	HTML     string
	Headings []Heading
	Stats    Stats
}

// Stats counts rendered blocks by kind.
type Stats struct {
	Headings   int
	ListItems  int
	Lists      int
	Paragraphs int
}

// Blocks renders blocks to HTML. Consecutive list items with the same
// orderedness share one <ul> or <ol>; any other block closes the open list.
func Blocks(blocks []extract.Block) Fragment {
	var (
		sb   strings.Builder
		frag Fragment
		ids  = NewSlugger()
		open = ""
	)

	closeList := func() {
		if open != "" {
			sb.WriteString("</" + open + ">\n")
			open = ""
		}
	}

	for _, b := range blocks {
		switch b.Kind {
		case extract.KindHeading:
			closeList()
			level := b.Level
			if level < 1 || level > 6 {
				level = 2
			}
			id := ids.Slug(b.Text)
			tag := "h" + strconv.Itoa(level)
			sb.WriteString("<" + tag + ` id="` + id + `">` + html.EscapeString(b.Label()) + "</" + tag + ">\n")
			frag.Headings = append(frag.Headings, Heading{
				ID:       id,
				Level:    level,
				Icon:     b.Icon,
				Text:     b.Text,
				Category: extract.Categorize(b.Text),
			})
			frag.Stats.Headings++

		case extract.KindListItem:
			want := "ul"
			if b.Ordered {
				want = "ol"
			}
			if open != want {
				closeList()
				open = want
				frag.Stats.Lists++
				if want == "ol" {
					sb.WriteString(`<ol class="list-decimal">` + "\n")
				} else {
					sb.WriteString(`<ul class="list-disc">` + "\n")
				}
			}
			sb.WriteString("<li>" + html.EscapeString(b.Text) + "</li>\n")
			frag.Stats.ListItems++

		default:
			closeList()
			sb.WriteString("<p>" + html.EscapeString(b.Text) + "</p>\n")
			frag.Stats.Paragraphs++
		}
	}
	closeList()

	frag.HTML = sb.String()
	return frag
}

// Slugger generates unique anchor ids within one document.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns a unique id for text: "objetivos", then "objetivos-2".
func (s *Slugger) Slug(text string) string {
	base := Slugify(text)
	n := s.seen[base]
	s.seen[base] = n + 1
	if n == 0 {
		return base
	}
	for {
		n++
		candidate := base + "-" + strconv.Itoa(n)
		if _, taken := s.seen[candidate]; !taken {
			s.seen[candidate] = 1
			s.seen[base] = n
			return candidate
		}
	}
}

// Reserve marks an existing id as taken.
func (s *Slugger) Reserve(id string) {
	if _, ok := s.seen[id]; !ok {
		s.seen[id] = 1
	}
}

// Slugify lowercases text, strips diacritics and keeps ASCII letters and
// digits separated by single hyphens. Text with nothing left yields "section".
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, text)
	if err != nil {
		plain = text
	}

	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			hyphen = false
			sb.WriteRune(r)
			continue
		}
		hyphen = true
	}
	if sb.Len() == 0 {
		return "section"
	}
	return sb.String()
}
