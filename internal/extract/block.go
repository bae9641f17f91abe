package extract

// Run is a contiguous stretch of paragraph text sharing character formatting.
type Run struct {
	Text string
	Bold bool
}

// Paragraph is one unit of source text with its style metadata.
type Paragraph struct {
	Text      string
	StyleName string
	Runs      []Run
	// ListMarker is the numbering marker rendered by the source ("•", "2.")
	// when it is not part of Text.
	ListMarker string
}

// NewParagraph builds a paragraph carrying a single run with the whole text.
func NewParagraph(text, styleName string, bold bool) Paragraph {
	return Paragraph{
		Text:      text,
		StyleName: styleName,
		Runs:      []Run{{Text: text, Bold: bold}},
	}
}

// Kind identifies the variant held by a Block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	default:
		return "paragraph"
	}
}

// Block is a typed content unit. Level and Icon are only set for headings,
// Ordered only for list items.
type Block struct {
	Kind    Kind
	Level   int
	Icon    string
	Ordered bool
	Text    string
}

// HeadingBlock returns a heading block.
func HeadingBlock(level int, icon, text string) Block {
	return Block{Kind: KindHeading, Level: level, Icon: icon, Text: text}
}

// ListItemBlock returns a list item block.
func ListItemBlock(ordered bool, text string) Block {
	return Block{Kind: KindListItem, Ordered: ordered, Text: text}
}

// ParagraphBlock returns a plain paragraph block.
func ParagraphBlock(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// IsHeading reports whether b is a heading.
func (b Block) IsHeading() bool { return b.Kind == KindHeading }

// Label is the heading text prefixed by its icon, as shown to readers.
func (b Block) Label() string {
	if b.Icon == "" {
		return b.Text
	}
	return b.Icon + " " + b.Text
}
