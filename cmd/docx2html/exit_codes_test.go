package main

// Notes:
// - exitCodeFor: every sentinel the commands can return, plus wrapped errors
//   to verify the errors.Is chain.
// - hintFor: errors with a hint get one starting on its own line; the rest
//   get none.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	docx2html "github.com/alnah/go-docx2html"
	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/layout"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", docx2html.ErrBrowserConnect, ExitBrowser},
		{"page load", docx2html.ErrPageLoad, ExitBrowser},
		{"pdf generation", fmt.Errorf("exporting: %w", docx2html.ErrPDFGeneration), ExitBrowser},

		// General (exit 1)
		{"batch failed", fmt.Errorf("%w: 1 of 3", ErrBatchFailed), ExitGeneral},
		{"review issues", ErrReviewIssues, ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},

		// I/O errors (exit 3)
		{"file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no sources", ErrNoSources, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"not a docx", fmt.Errorf("parsing: %w", docx2html.ErrNotDOCX), ExitIO},
		{"malformed xml", docx2html.ErrMalformedXML, ExitIO},

		// Usage errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"watch input", ErrWatchInput, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"guide pattern", fmt.Errorf("output.guidePattern: %w", layout.ErrInvalidPattern), ExitUsage},
		{"style not found", docx2html.ErrStyleNotFound, ExitUsage},
		{"language", docx2html.ErrUnsupportedLanguage, ExitUsage},
		{"unknown pass", docx2html.ErrUnknownPass, ExitUsage},
		{"navigation", docx2html.ErrUnknownNavigation, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell reserved codes", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"output dir", ErrWriteOutput, "writable"},
		{"timeout", context.DeadlineExceeded, "timeout"},
		{"style lists names", docx2html.ErrStyleNotFound, "premium"},
		{"pass lists names", docx2html.ErrUnknownPass, "cleanup"},
		{"language lists codes", docx2html.ErrUnsupportedLanguage, "pt"},
		{"session naming", layout.ErrNoSessionNumber, "hint:"},
		{"not a docx", docx2html.ErrNotDOCX, "hint:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := hintFor(fmt.Errorf("wrapped: %w", tt.err))
			if !strings.HasPrefix(got, "\n") {
				t.Errorf("hint %q should start on a new line", got)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hint %q should contain %q", got, tt.contains)
			}
		})
	}

	t.Run("no hint", func(t *testing.T) {
		t.Parallel()
		if got := hintFor(errors.New("boom")); got != "" {
			t.Errorf("hintFor() = %q, want empty", got)
		}
	})
}
