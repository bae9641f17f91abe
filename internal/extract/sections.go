package extract

import "strings"

// Section is a heading plus the blocks under it. The preamble section,
// holding blocks before the first heading, has a nil Heading.
type Section struct {
	Heading *Block
	Blocks  []Block
}

// Sections partitions blocks into top-level sections. A section runs from its
// heading to the next heading of equal or higher level; deeper headings stay
// inside it. Flattening the result yields the input sequence.
func Sections(blocks []Block) []Section {
	var out []Section
	var cur *Section
	for i := range blocks {
		b := blocks[i]
		if b.IsHeading() && (cur == nil || cur.Heading == nil || b.Level <= cur.Heading.Level) {
			if cur != nil {
				out = append(out, *cur)
			}
			h := b
			cur = &Section{Heading: &h}
			continue
		}
		if cur == nil {
			cur = &Section{}
		}
		cur.Blocks = append(cur.Blocks, b)
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// Flatten returns the blocks of sections in order, headings included.
func Flatten(sections []Section) []Block {
	var out []Block
	for _, s := range sections {
		if s.Heading != nil {
			out = append(out, *s.Heading)
		}
		out = append(out, s.Blocks...)
	}
	return out
}

// titleScanLimit bounds how far into a document the title is looked for.
const titleScanLimit = 10

// DetectTitle returns the session title: the first of the leading paragraphs
// containing a title marker, with noise phrases removed.
func (e *Extractor) DetectTitle(paragraphs []Paragraph) (string, bool) {
	for i, p := range paragraphs {
		if i >= titleScanLimit {
			break
		}
		if !containsMarker(p.Text, e.opts.TitleMarkers) {
			continue
		}
		title := p.Text
		for _, noise := range e.opts.TitleNoise {
			title = strings.ReplaceAll(title, noise, "")
		}
		title = strings.Join(strings.Fields(title), " ")
		if title != "" {
			return title, true
		}
	}
	return "", false
}

// DetectTitle applies the default title rules.
func DetectTitle(paragraphs []Paragraph) (string, bool) {
	return defaultExtractor.DetectTitle(paragraphs)
}
