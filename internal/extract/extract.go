package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Options tune the classification heuristics.
type Options struct {
	// HeadingStyles are style-name prefixes that mark a heading.
	HeadingStyles []string
	// MinBoldLength is the rune count a bold run's trimmed text must exceed
	// for the paragraph to count as a heading.
	MinBoldLength int
	// SubheadingMarkers demote a heading to level 3 when found in its text.
	// Matching is case-sensitive.
	SubheadingMarkers []string
	// BulletMarkers open an unordered list item.
	BulletMarkers []string
	// TitleMarkers identify the session title paragraph. Matching is
	// case-sensitive.
	TitleMarkers []string
	// TitleNoise is removed from the detected title.
	TitleNoise []string
}

// DefaultOptions returns the heuristics used for session documents.
func DefaultOptions() Options {
	return Options{
		HeadingStyles:     []string{"Heading"},
		MinBoldLength:     5,
		SubheadingMarkers: []string{"Sessão"},
		BulletMarkers:     []string{"•", "-"},
		TitleMarkers:      []string{"Sessão"},
		TitleNoise:        []string{"📘", "Atividade Assíncrona"},
	}
}

// numericMarker matches "12. " and "3) " list prefixes.
var numericMarker = regexp.MustCompile(`^\d+[.)]\s+`)

// Extractor classifies paragraphs into blocks. It holds no per-document
// state and is safe for concurrent use.
type Extractor struct {
	opts Options
}

// New returns an Extractor. Zero-valued option fields fall back to defaults.
func New(opts Options) *Extractor {
	def := DefaultOptions()
	if len(opts.HeadingStyles) == 0 {
		opts.HeadingStyles = def.HeadingStyles
	}
	if opts.MinBoldLength <= 0 {
		opts.MinBoldLength = def.MinBoldLength
	}
	if len(opts.SubheadingMarkers) == 0 {
		opts.SubheadingMarkers = def.SubheadingMarkers
	}
	if len(opts.BulletMarkers) == 0 {
		opts.BulletMarkers = def.BulletMarkers
	}
	if len(opts.TitleMarkers) == 0 {
		opts.TitleMarkers = def.TitleMarkers
	}
	if opts.TitleNoise == nil {
		opts.TitleNoise = def.TitleNoise
	}
	return &Extractor{opts: opts}
}

// Options returns the effective options.
func (e *Extractor) Options() Options { return e.opts }

var defaultExtractor = New(DefaultOptions())

// Extract classifies paragraphs with the default heuristics.
func Extract(paragraphs []Paragraph) []Block {
	return defaultExtractor.Extract(paragraphs)
}

// Extract returns one block per non-empty paragraph, in input order.
func (e *Extractor) Extract(paragraphs []Paragraph) []Block {
	blocks := make([]Block, 0, len(paragraphs))
	for _, p := range paragraphs {
		if b, ok := e.Classify(p); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Classify turns a single paragraph into a block. It reports false for
// paragraphs that carry no content.
func (e *Extractor) Classify(p Paragraph) (Block, bool) {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return Block{}, false
	}

	if e.isHeading(p) {
		level := 2
		if containsMarker(text, e.opts.SubheadingMarkers) {
			level = 3
		}
		return HeadingBlock(level, IconFor(text), text), true
	}

	if p.ListMarker != "" {
		return ListItemBlock(numericMarker.MatchString(p.ListMarker+" "), text), true
	}

	if item, ordered, ok := e.splitListMarker(text); ok {
		if item == "" {
			return Block{}, false
		}
		return ListItemBlock(ordered, item), true
	}

	return ParagraphBlock(text), true
}

func (e *Extractor) isHeading(p Paragraph) bool {
	for _, prefix := range e.opts.HeadingStyles {
		if strings.HasPrefix(p.StyleName, prefix) {
			return true
		}
	}
	for _, r := range p.Runs {
		if r.Bold && utf8.RuneCountInString(strings.TrimSpace(r.Text)) > e.opts.MinBoldLength {
			return true
		}
	}
	return false
}

func (e *Extractor) splitListMarker(text string) (item string, ordered, ok bool) {
	for _, m := range e.opts.BulletMarkers {
		if strings.HasPrefix(text, m) {
			return strings.TrimSpace(text[len(m):]), false, true
		}
	}
	if loc := numericMarker.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[loc[1]:]), true, true
	}
	return "", false, false
}

func containsMarker(text string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return true
		}
	}
	return false
}
