// Package layout maps session documents to guide pages: it finds session
// sources under an input tree and names the guides generated from them.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultGuidePattern names generated guides. {N} is the session number and
// {M} the module number.
const DefaultGuidePattern = "session{N}-guide.html"

var (
	ErrInvalidPattern  = errors.New("invalid guide name pattern")
	ErrUnsupportedFile = errors.New("unsupported source file")
	ErrNoSessionNumber = errors.New("no session number in file name")
)

// Format is the kind of a session source document.
type Format string

const (
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "markdown"
)

var (
	sessionPattern = regexp.MustCompile(`(?i)sess(?:ão|ao|ion)\s*[-_]?\s*(\d+)`)
	trailingDigits = regexp.MustCompile(`(\d+)\s*$`)
)

// FormatOf returns the source format implied by the file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return FormatDOCX, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	}
	return "", false
}

// SessionNumber extracts the session number from a file name such as
// "M2 - Sessão 4.docx" or "session-3.md".
func SessionNumber(name string) (int, bool) {
	m := sessionPattern.FindStringSubmatch(norm.NFC.String(filepath.Base(name)))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ModuleNumber extracts the trailing number of a module directory name
// ("modulo2", "Module 3").
func ModuleNumber(dir string) (int, bool) {
	m := trailingDigits.FindStringSubmatch(filepath.Base(dir))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Expand substitutes {M} and {N} in pattern.
func Expand(pattern string, module, session int) string {
	r := strings.NewReplacer("{M}", strconv.Itoa(module), "{N}", strconv.Itoa(session))
	return r.Replace(pattern)
}

// Source is one session document.
type Source struct {
	Path         string
	Module       string // module directory relative to the input root, "" at the root
	ModuleNumber int
	Session      int
	Format       Format
}

// Layout names guide files.
type Layout struct {
	pattern string
}

// New validates pattern. An empty pattern selects DefaultGuidePattern.
func New(pattern string) (*Layout, error) {
	if pattern == "" {
		pattern = DefaultGuidePattern
	}
	if !strings.Contains(pattern, "{N}") {
		return nil, fmt.Errorf("%w: %q must contain {N}", ErrInvalidPattern, pattern)
	}
	if strings.ContainsAny(pattern, `/\`) {
		return nil, fmt.Errorf("%w: %q must be a file name", ErrInvalidPattern, pattern)
	}
	if !strings.HasSuffix(strings.ToLower(pattern), ".html") {
		return nil, fmt.Errorf("%w: %q must end with .html", ErrInvalidPattern, pattern)
	}
	return &Layout{pattern: pattern}, nil
}

// Pattern returns the guide name pattern.
func (l *Layout) Pattern() string { return l.pattern }

// GuideName returns the file name of the guide for a session.
func (l *Layout) GuideName(module, session int) string {
	return Expand(l.pattern, module, session)
}

// GuidePath returns where the guide for src is written under outputDir.
func (l *Layout) GuidePath(outputDir string, src Source) string {
	return filepath.Join(outputDir, src.Module, l.GuideName(src.ModuleNumber, src.Session))
}

// GuideGlob returns a filepath.Match pattern matching every guide name.
func (l *Layout) GuideGlob() string {
	return strings.NewReplacer("{M}", "*", "{N}", "*").Replace(l.pattern)
}

// IsGuide reports whether name is a guide file name.
func (l *Layout) IsGuide(name string) bool {
	ok, err := filepath.Match(l.GuideGlob(), filepath.Base(name))
	return err == nil && ok
}

// Discovery is the result of scanning an input tree.
type Discovery struct {
	Sources []Source
	Skipped []string // supported files without a session number
}

// NewSource describes a single source file. module is the module directory
// recorded for it.
func NewSource(path, module string) (Source, error) {
	format, ok := FormatOf(path)
	if !ok {
		return Source{}, fmt.Errorf("%w: %s (use .docx, .md or .markdown)", ErrUnsupportedFile, path)
	}
	session, ok := SessionNumber(path)
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrNoSessionNumber, filepath.Base(path))
	}
	moduleNum, _ := ModuleNumber(module)
	return Source{
		Path:         path,
		Module:       module,
		ModuleNumber: moduleNum,
		Session:      session,
		Format:       format,
	}, nil
}

// Discover finds session sources. A file path yields one source whose module
// is its parent directory name. A directory is scanned recursively; sources
// are sorted by module then session. Office lock files ("~$...") and hidden
// entries are ignored.
func Discover(root string) (*Discovery, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		src, err := NewSource(root, filepath.Base(filepath.Dir(root)))
		if err != nil {
			return nil, err
		}
		return &Discovery{Sources: []Source{src}}, nil
	}

	d := &Discovery{}
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		name := entry.Name()
		if path != root && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			return nil
		}
		if _, ok := FormatOf(path); !ok {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		src, err := NewSource(path, rel)
		if errors.Is(err, ErrNoSessionNumber) {
			d.Skipped = append(d.Skipped, path)
			return nil
		}
		if err != nil {
			return err
		}
		d.Sources = append(d.Sources, src)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(d.Sources, func(i, j int) bool {
		a, b := d.Sources[i], d.Sources[j]
		if a.ModuleNumber != b.ModuleNumber {
			return a.ModuleNumber < b.ModuleNumber
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.Session < b.Session
	})
	return d, nil
}
