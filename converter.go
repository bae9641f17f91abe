package docx2html

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-docx2html/internal/assets"
	"github.com/alnah/go-docx2html/internal/dateutil"
	"github.com/alnah/go-docx2html/internal/docx"
	"github.com/alnah/go-docx2html/internal/export"
	"github.com/alnah/go-docx2html/internal/extract"
	"github.com/alnah/go-docx2html/internal/fileutil"
	"github.com/alnah/go-docx2html/internal/layout"
	"github.com/alnah/go-docx2html/internal/locale"
	"github.com/alnah/go-docx2html/internal/mdsource"
	"github.com/alnah/go-docx2html/internal/postprocess"
	"github.com/alnah/go-docx2html/internal/render"
)

// Converter turns session documents into guide pages. Create it with
// NewConverter and Close it when done. A Converter is not safe for
// concurrent use.
type Converter struct {
	cfg       converterConfig
	loader    assets.AssetLoader
	extractor *extract.Extractor
	markdown  *mdsource.Reader
	pages     *render.PageRenderer
	loc       *locale.Localizer
	passes    *postprocess.Pipeline
	exporter  *export.MarkdownExporter
	pdf       pdfConverter
	log       *slog.Logger
}

// NewConverter creates a Converter. Asset, language and pass errors are
// reported here rather than on the first conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			now:     time.Now,
		},
		markdown: mdsource.NewReader(),
		exporter: export.NewMarkdownExporter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = c.cfg.logger
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.cfg.site.HubHref == "" {
		c.cfg.site.HubHref = DefaultHubHref
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.loader = resolver

	css, err := c.loadAsset(c.cfg.style, assets.DefaultStyleName, c.loader.LoadStyle)
	if err != nil {
		return nil, fmt.Errorf("loading style: %w", err)
	}
	tmpl, err := c.loadAsset(c.cfg.template, assets.DefaultTemplateName, c.loader.LoadTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if c.pages, err = render.NewPageRenderer(tmpl); err != nil {
		return nil, err
	}

	if c.loc, err = locale.New(c.cfg.language); err != nil {
		return nil, err
	}

	c.passes, err = postprocess.Build(c.cfg.passes, postprocess.Options{
		CSS:        css,
		Navigation: c.cfg.navigation,
		Labels: postprocess.Labels{
			Category:   c.loc.Category,
			Practice:   c.loc.T("BadgePractice", nil),
			Objectives: c.loc.T("BadgeObjectives", nil),
		},
	})
	if err != nil {
		return nil, err
	}

	extractOpts := extract.DefaultOptions()
	if c.cfg.extract != nil {
		extractOpts = *c.cfg.extract
	}
	c.extractor = extract.New(extractOpts)

	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// loadAsset resolves a name through the loader, or reads a file when value
// is a path.
func (c *Converter) loadAsset(value, fallback string, load func(string) (string, error)) (string, error) {
	if value == "" {
		value = fallback
	}
	if fileutil.IsFilePath(value) {
		data, err := os.ReadFile(value) // #nosec G304 -- user-provided path
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return load(value)
}

// PassNames returns the post-processing passes in run order.
func (c *Converter) PassNames() []string { return c.passes.Names() }

// Convert generates the guide page for one session document.
// Recovers from internal panics to keep a bad document from stopping a batch.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Data) == 0 {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	paragraphs, coreTitle, err := c.read(input)
	if err != nil {
		return nil, err
	}

	blocks := c.extractor.Extract(paragraphs)
	if c.cfg.groupByCategory {
		blocks = render.GroupByCategory(blocks, c.loc.Category)
	}
	frag := render.Blocks(blocks)

	title := c.title(input, paragraphs, coreTitle)
	footer, err := dateutil.Expand(c.cfg.site.Footer, c.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("site footer: %w", err)
	}
	presentation := ""
	if c.cfg.site.PresentationHref != "" {
		presentation = layout.Expand(c.cfg.site.PresentationHref, input.Module, input.Session)
	}

	page, err := c.pages.Render(ctx, &render.Page{
		Lang:             c.loc.Lang(),
		PageTitle:        c.loc.PageTitle(title, c.cfg.site.Name),
		SessionTitle:     title,
		ModuleLabel:      c.moduleLabel(input.Module),
		SessionLabel:     c.loc.SessionTitle(input.Session),
		SiteName:         c.cfg.site.Name,
		Footer:           footer,
		HubHref:          c.cfg.site.HubHref,
		PresentationHref: presentation,
		DownloadHref:     input.DownloadHref,
		Labels:           c.loc.Labels(),
		Content:          template.HTML(frag.HTML), // #nosec G203 -- every text node is escaped by render.Blocks
	})
	if err != nil {
		return nil, err
	}

	page, err = c.passes.Run(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("post-processing: %w", err)
	}

	res := &ConvertResult{
		HTML:     page,
		Title:    title,
		Headings: frag.Headings,
		Stats:    frag.Stats,
	}
	c.log.Debug("guide rendered",
		"title", title,
		"paragraphs", len(paragraphs),
		"headings", frag.Stats.Headings,
		"list_items", frag.Stats.ListItems,
		"elapsed", time.Since(start))

	if input.Markdown {
		if res.Markdown, err = c.exporter.Export(page, title); err != nil {
			return nil, err
		}
	}
	if input.PDF {
		printable, err := export.AbsoluteLinks(page, input.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("resolving links for PDF: %w", err)
		}
		if res.PDF, err = c.pdf.ToPDF(ctx, printable); err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
	}
	return res, nil
}

func (c *Converter) read(input Input) ([]extract.Paragraph, string, error) {
	switch input.Format {
	case "", FormatDOCX:
		doc, err := docx.Parse(input.Data)
		if err != nil {
			return nil, "", err
		}
		return doc.Paragraphs, doc.Title, nil
	case FormatMarkdown:
		return c.markdown.Parse(input.Data), "", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}
}

// title picks, in order: the explicit title, the session title paragraph,
// the localized "Session N", then the document properties title.
func (c *Converter) title(input Input, paragraphs []extract.Paragraph, coreTitle string) string {
	if input.Title != "" {
		return input.Title
	}
	if t, ok := c.extractor.DetectTitle(paragraphs); ok {
		return t
	}
	if input.Session > 0 || coreTitle == "" {
		return c.loc.SessionTitle(input.Session)
	}
	return coreTitle
}

func (c *Converter) moduleLabel(module int) string {
	if module <= 0 {
		return ""
	}
	return c.loc.ModuleTitle(module)
}

// Restyle re-applies the post-processing passes to a guide page generated
// earlier. Pages without a guide body are rejected.
func (c *Converter) Restyle(ctx context.Context, page string) (string, error) {
	if _, _, ok := render.ContentBounds(page); !ok {
		return "", ErrNoGuideContent
	}
	out, err := c.passes.Run(ctx, page)
	if err != nil {
		return "", fmt.Errorf("post-processing: %w", err)
	}
	return out, nil
}

// ExportMarkdown converts the body of a guide page to Markdown.
func (c *Converter) ExportMarkdown(page, title string) (string, error) {
	return c.exporter.Export(page, title)
}

// ExportPDF renders a guide page to PDF with headless Chrome.
func (c *Converter) ExportPDF(ctx context.Context, page string) ([]byte, error) {
	return c.pdf.ToPDF(ctx, page)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}
