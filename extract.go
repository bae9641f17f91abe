package docx2html

import "github.com/alnah/go-docx2html/internal/extract"

// Extraction types, usable without a Converter.
type (
	Paragraph      = extract.Paragraph
	Run            = extract.Run
	Block          = extract.Block
	BlockKind      = extract.Kind
	Section        = extract.Section
	ExtractOptions = extract.Options
)

const (
	KindParagraph = extract.KindParagraph
	KindHeading   = extract.KindHeading
	KindListItem  = extract.KindListItem
)

// NewParagraph builds a paragraph from a (text, style name, bold) triple.
func NewParagraph(text, styleName string, bold bool) Paragraph {
	return extract.NewParagraph(text, styleName, bold)
}

// DefaultExtractOptions returns the classification defaults.
func DefaultExtractOptions() ExtractOptions {
	return extract.DefaultOptions()
}

// Extract classifies paragraphs into blocks with the default options.
// Empty paragraphs are skipped.
func Extract(paragraphs []Paragraph) []Block {
	return extract.Extract(paragraphs)
}

// Sections splits blocks at top-level headings.
func Sections(blocks []Block) []Section {
	return extract.Sections(blocks)
}
