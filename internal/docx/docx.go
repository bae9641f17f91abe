// Package docx reads the paragraph stream of an Office Open XML document.
//
// Only what classification needs is extracted: body paragraphs in reading
// order with their style names, run text and direct bold formatting. Native
// Word list paragraphs carry the marker Word renders ("•" or "N.") in a
// separate field so they are recognized the same way as typed-in lists.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-docx2html/internal/extract"
)

// Sentinel errors.
var (
	ErrNotDOCX      = errors.New("not a docx archive")
	ErrMissingPart  = errors.New("missing document part")
	ErrMalformedXML = errors.New("malformed document xml")
)

const (
	partDocument  = "word/document.xml"
	partStyles    = "word/styles.xml"
	partNumbering = "word/numbering.xml"
	partCore      = "docProps/core.xml"

	// maxPartSize bounds decompressed part size to guard against zip bombs.
	maxPartSize = 64 << 20
)

// Document is the readable content of a .docx file.
type Document struct {
	Title      string
	Paragraphs []extract.Paragraph
}

// Open reads and parses the .docx file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided input
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses an in-memory .docx archive.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	docFile, ok := parts[partDocument]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, partDocument)
	}

	styles := styleTable{}
	if f, ok := parts[partStyles]; ok {
		raw, err := readPart(f)
		if err != nil {
			return nil, err
		}
		if styles, err = parseStyles(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedXML, partStyles, err)
		}
	}

	numbering := numberingTable{}
	if f, ok := parts[partNumbering]; ok {
		raw, err := readPart(f)
		if err != nil {
			return nil, err
		}
		if numbering, err = parseNumbering(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedXML, partNumbering, err)
		}
	}

	raw, err := readPart(docFile)
	if err != nil {
		return nil, err
	}
	rawParas, err := parseBody(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedXML, partDocument, err)
	}

	doc := &Document{Paragraphs: resolveParagraphs(rawParas, styles, numbering)}

	if f, ok := parts[partCore]; ok {
		if raw, err := readPart(f); err == nil {
			doc.Title = parseCoreTitle(raw)
		}
	}
	return doc, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDOCX, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDOCX, f.Name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrNotDOCX, f.Name, maxPartSize)
	}
	return data, nil
}

// resolveParagraphs attaches style names and list markers to raw paragraphs.
// The marker Word would render is kept apart from the paragraph text.
func resolveParagraphs(raw []rawParagraph, styles styleTable, numbering numberingTable) []extract.Paragraph {
	counters := newListCounters()
	out := make([]extract.Paragraph, 0, len(raw))
	for _, rp := range raw {
		styleID := rp.styleID
		if styleID == "" {
			styleID = styles.defaultID
		}
		p := extract.Paragraph{StyleName: styles.name(styleID)}

		num := rp.num
		if num == nil {
			num = styles.numbering(styleID)
		}
		if num != nil {
			p.ListMarker = strings.TrimSpace(counters.marker(numbering, *num))
		}

		var text bytes.Buffer
		for _, r := range rp.runs {
			text.WriteString(r.Text)
		}
		p.Text = text.String()
		p.Runs = rp.runs
		out = append(out, p)
	}
	return out
}
