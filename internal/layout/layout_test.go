package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSessionNumber - File name parsing
// ---------------------------------------------------------------------------

func TestSessionNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"Sessão 1.docx", 1, true},
		{"M2 - Sessão 4.docx", 4, true},
		{"M3 - Sessão 12.docx", 12, true},
		{"sessao-3.md", 3, true},
		{"Session_7.markdown", 7, true},
		{"modulo2/Sessão 5.docx", 5, true},
		{"Notas.docx", 0, false},
		{"Sessão final.docx", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := SessionNumber(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SessionNumber(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestModuleNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir    string
		want   int
		wantOK bool
	}{
		{"modulo1", 1, true},
		{"Module 3", 3, true},
		{"courses/M12", 12, true},
		{"extras", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ModuleNumber(tt.dir)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ModuleNumber(%q) = %d, %v; want %d, %v", tt.dir, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLayout - Guide naming
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	l, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Pattern() != DefaultGuidePattern {
		t.Errorf("Pattern() = %q, want %q", l.Pattern(), DefaultGuidePattern)
	}

	for _, bad := range []string{"guide.html", "m{M}/session{N}.html", "session{N}.htm"} {
		if _, err := New(bad); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("New(%q) error = %v, want ErrInvalidPattern", bad, err)
		}
	}
}

func TestLayout_Names(t *testing.T) {
	t.Parallel()

	l, err := New("m{M}-sessao{N}-guia.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := l.GuideName(2, 4); got != "m2-sessao4-guia.html" {
		t.Errorf("GuideName() = %q", got)
	}

	src := Source{Module: "modulo2", ModuleNumber: 2, Session: 4}
	want := filepath.Join("out", "modulo2", "m2-sessao4-guia.html")
	if got := l.GuidePath("out", src); got != want {
		t.Errorf("GuidePath() = %q, want %q", got, want)
	}

	if !l.IsGuide("/x/m1-sessao10-guia.html") {
		t.Error("IsGuide() = false for a guide name")
	}
	if l.IsGuide("index.html") {
		t.Error("IsGuide() = true for index.html")
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	if got := Expand("../../modulo{M}/sessao{N}/", 3, 8); got != "../../modulo3/sessao8/" {
		t.Errorf("Expand() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestDiscover - Input tree scanning
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "modulo10", "Sessão 1.docx"))
	writeFile(t, filepath.Join(root, "modulo2", "M2 - Sessão 3.docx"))
	writeFile(t, filepath.Join(root, "modulo2", "M2 - Sessão 1.md"))
	writeFile(t, filepath.Join(root, "modulo2", "~$Sessão 1.docx"))
	writeFile(t, filepath.Join(root, "modulo2", "Anexo.docx"))
	writeFile(t, filepath.Join(root, "modulo2", "notes.txt"))
	writeFile(t, filepath.Join(root, ".trash", "Sessão 9.docx"))

	d, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []struct {
		module  string
		session int
		format  Format
	}{
		{"modulo2", 1, FormatMarkdown},
		{"modulo2", 3, FormatDOCX},
		{"modulo10", 1, FormatDOCX},
	}
	if len(d.Sources) != len(want) {
		t.Fatalf("got %d sources, want %d: %+v", len(d.Sources), len(want), d.Sources)
	}
	for i, w := range want {
		got := d.Sources[i]
		if got.Module != w.module || got.Session != w.session || got.Format != w.format {
			t.Errorf("source %d = %+v, want %+v", i, got, w)
		}
	}
	if len(d.Skipped) != 1 || filepath.Base(d.Skipped[0]) != "Anexo.docx" {
		t.Errorf("Skipped = %v, want [Anexo.docx]", d.Skipped)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "modulo4", "M4 - Sessão 2.docx")
	writeFile(t, path)

	d, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(d.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(d.Sources))
	}
	src := d.Sources[0]
	if src.Module != "modulo4" || src.ModuleNumber != 4 || src.Session != 2 {
		t.Errorf("source = %+v", src)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	txt := filepath.Join(root, "Sessão 1.txt")
	writeFile(t, txt)
	noNum := filepath.Join(root, "Resumo.docx")
	writeFile(t, noNum)

	if _, err := Discover(txt); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("Discover(txt) error = %v, want ErrUnsupportedFile", err)
	}
	if _, err := Discover(noNum); !errors.Is(err, ErrNoSessionNumber) {
		t.Errorf("Discover(no number) error = %v, want ErrNoSessionNumber", err)
	}
	if _, err := Discover(filepath.Join(root, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Discover(missing) error = %v, want os.ErrNotExist", err)
	}
}
