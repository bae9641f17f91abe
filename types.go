package docx2html

import (
	"log/slog"
	"time"

	"github.com/alnah/go-docx2html/internal/extract"
	"github.com/alnah/go-docx2html/internal/layout"
	"github.com/alnah/go-docx2html/internal/render"
)

// SourceFormat is the kind of session document.
type SourceFormat = layout.Format

const (
	FormatDOCX     = layout.FormatDOCX
	FormatMarkdown = layout.FormatMarkdown
)

// Input is one session document to convert.
type Input struct {
	Data    []byte
	Format  SourceFormat // empty means FormatDOCX
	Module  int          // module number, 0 if unknown
	Session int          // session number, 0 if unknown

	Title        string // overrides the title found in the document
	DownloadHref string // link to the source document; empty hides the download card

	Markdown bool   // also produce a Markdown export
	PDF      bool   // also produce a PDF export
	BaseDir  string // where the guide is written; relative PDF links resolve against it
}

// Heading is a rendered heading with its anchor id.
type Heading = render.Heading

// Stats counts rendered blocks.
type Stats = render.Stats

// ConvertResult holds the generated guide and its exports.
type ConvertResult struct {
	HTML     string
	Markdown string // empty unless Input.Markdown
	PDF      []byte // nil unless Input.PDF
	Title    string
	Headings []Heading
	Stats    Stats
}

// Site describes the website the guides belong to.
type Site struct {
	Name             string
	Footer           string // {year}, {date} and {date:FORMAT} are expanded
	HubHref          string // back link from every guide
	PresentationHref string // {M} and {N} are expanded; empty hides the link
}

// DefaultHubHref is the back link used when Site.HubHref is empty.
const DefaultHubHref = "../../index.html"

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	style           string
	template        string
	assetPath       string
	language        string
	passes          []string
	navigation      string
	groupByCategory bool
	extract         *extract.Options
	site            Site
	timeout         time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// defaultTimeout bounds PDF rendering when no timeout is set.
const defaultTimeout = 30 * time.Second

// WithStyle selects a built-in style by name or a CSS file by path.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) { c.cfg.style = nameOrPath }
}

// WithTemplate selects a page template by name or an HTML file by path.
func WithTemplate(nameOrPath string) Option {
	return func(c *Converter) { c.cfg.template = nameOrPath }
}

// WithAssetPath adds a directory of styles/ and templates/ overriding the
// built-in assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) { c.cfg.assetPath = dir }
}

// WithLanguage selects the interface language ("pt", "en").
func WithLanguage(lang string) Option {
	return func(c *Converter) { c.cfg.language = lang }
}

// WithPasses selects the post-processing passes, in order.
func WithPasses(names ...string) Option {
	return func(c *Converter) { c.cfg.passes = append([]string(nil), names...) }
}

// WithNavigation selects the sidebar style: "grouped" or "flat".
func WithNavigation(style string) Option {
	return func(c *Converter) { c.cfg.navigation = style }
}

// WithGroupByCategory regroups the guide body by heading category.
func WithGroupByCategory(enabled bool) Option {
	return func(c *Converter) { c.cfg.groupByCategory = enabled }
}

// WithExtractOptions tunes paragraph classification.
func WithExtractOptions(opts extract.Options) Option {
	return func(c *Converter) { c.cfg.extract = &opts }
}

// WithSite sets the site name, footer and links.
func WithSite(site Site) Option {
	return func(c *Converter) { c.cfg.site = site }
}

// WithTimeout bounds PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docx2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) { c.cfg.timeout = d }
}

// WithLogger sets the logger for conversion details.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.cfg.logger = logger }
}

// WithNow sets the clock used for footer dates.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) { c.cfg.now = now }
}
