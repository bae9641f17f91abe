package docx2html

import (
	"errors"

	"github.com/alnah/go-docx2html/internal/assets"
	"github.com/alnah/go-docx2html/internal/docx"
	"github.com/alnah/go-docx2html/internal/export"
	"github.com/alnah/go-docx2html/internal/locale"
	"github.com/alnah/go-docx2html/internal/postprocess"
	"github.com/alnah/go-docx2html/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput        = errors.New("input document is empty")
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrNoGuideContent    = errors.New("page has no guide content")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
)

// Errors surfaced from the reading, rendering and asset layers.
var (
	ErrNotDOCX             = docx.ErrNotDOCX
	ErrMissingPart         = docx.ErrMissingPart
	ErrMalformedXML        = docx.ErrMalformedXML
	ErrStyleNotFound       = assets.ErrStyleNotFound
	ErrTemplateNotFound    = assets.ErrTemplateNotFound
	ErrPageRender          = render.ErrPageRender
	ErrUnsupportedLanguage = locale.ErrUnsupportedLanguage
	ErrUnknownPass         = postprocess.ErrUnknownPass
	ErrUnknownNavigation   = postprocess.ErrUnknownNavigation
	ErrMarkdownExport      = export.ErrMarkdownExport
)
