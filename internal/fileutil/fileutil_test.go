package fileutil_test

// Notes:
// - The WriteString and Close error branches of WriteTempFile are not tested:
//   triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docx2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary files for the browser
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<p>olá</p>", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "docx2html-") || filepath.Ext(path) != ".html" {
		t.Errorf("unexpected temp name %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<p>olá</p>" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file still exists after cleanup: %v", err)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want error
	}{
		{"", fileutil.ErrExtensionEmpty},
		{"../html", fileutil.ErrExtensionPathTraversal},
		{"ht\\ml", fileutil.ErrExtensionPathTraversal},
		{"html\x00", fileutil.ErrExtensionPathTraversal},
	}
	for _, tt := range tests {
		if _, _, err := fileutil.WriteTempFile("x", tt.ext); !errors.Is(err, tt.want) {
			t.Errorf("WriteTempFile(ext %q) error = %v, want %v", tt.ext, err, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Output files
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modulo1", "session1-guide.html")
	if err := fileutil.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fileutil.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("unexpected error on overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestWriteFile_ParentIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "modulo1")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fileutil.WriteFile(filepath.Join(blocker, "g.html"), []byte("x")); err == nil {
		t.Error("expected error when parent is a file")
	}
}

// ---------------------------------------------------------------------------
// TestPaths - Path helpers
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct{ path, ext, want string }{
		{"out/session1-guide.html", ".md", "out/session1-guide.md"},
		{"noext", ".pdf", "noext.pdf"},
		{"a.b/c.html", ".pdf", "a.b/c.pdf"},
	}
	for _, tt := range tests {
		if got := fileutil.ReplaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestRelLink(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	guide := filepath.Join(root, "site", "modulo2", "session4-guide.html")
	source := filepath.Join(root, "docs", "modulo2", "M2 - Sessão 4.docx")

	got, err := fileutil.RelLink(guide, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "../../docs/modulo2/M2 - Sessão 4.docx"; got != want {
		t.Errorf("RelLink() = %q, want %q", got, want)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{file, true},
		{dir, false},
		{filepath.Join(dir, "none"), false},
		{"", false},
	}
	for _, tt := range tests {
		if got := fileutil.FileExists(tt.path); got != tt.want {
			t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    string
		want bool
	}{
		{"premium", false},
		{"my-style", false},
		{"./custom.css", true},
		{"../shared/style.css", true},
		{`C:\styles\x.css`, true},
	}
	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.s); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
