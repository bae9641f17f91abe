package main

import (
	"context"
	"errors"
	"os"

	docx2html "github.com/alnah/go-docx2html"
	"github.com/alnah/go-docx2html/internal/assets"
	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/hints"
	"github.com/alnah/go-docx2html/internal/layout"
	"github.com/alnah/go-docx2html/internal/locale"
	"github.com/alnah/go-docx2html/internal/postprocess"
)

// Exit codes for the docx2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General error, failed documents, review issues
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error. It relies on errors.Is, so
// callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, docx2html.ErrBrowserConnect) ||
		errors.Is(err, docx2html.ErrPageCreate) ||
		errors.Is(err, docx2html.ErrPageLoad) ||
		errors.Is(err, docx2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// A batch reports per-document failures itself.
	if errors.Is(err, ErrBatchFailed) || errors.Is(err, ErrReviewIssues) || errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoSources) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, docx2html.ErrNotDOCX) ||
		errors.Is(err, docx2html.ErrMissingPart) ||
		errors.Is(err, docx2html.ErrMalformedXML) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrWatchInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, layout.ErrInvalidPattern) ||
		errors.Is(err, layout.ErrUnsupportedFile) ||
		errors.Is(err, layout.ErrNoSessionNumber) ||
		errors.Is(err, docx2html.ErrStyleNotFound) ||
		errors.Is(err, docx2html.ErrTemplateNotFound) ||
		errors.Is(err, docx2html.ErrInvalidAssetPath) ||
		errors.Is(err, docx2html.ErrUnsupportedLanguage) ||
		errors.Is(err, docx2html.ErrUnknownPass) ||
		errors.Is(err, docx2html.ErrUnknownNavigation) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, docx2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, docx2html.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("docx2html"))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, docx2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, docx2html.ErrUnknownPass):
		return hints.ForUnknownPass(postprocess.DefaultPassNames())
	case errors.Is(err, docx2html.ErrNotDOCX):
		return hints.ForNotDOCX()
	case errors.Is(err, layout.ErrNoSessionNumber):
		return hints.ForSessionName()
	case errors.Is(err, docx2html.ErrUnsupportedLanguage):
		return hints.ForLanguage(locale.Supported())
	}
	return ""
}
