// Package docxtest builds minimal .docx archives for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Numbering ids defined by the generated numbering.xml.
const (
	BulletList  = "1"
	DecimalList = "2"
)

// Paragraph describes one body paragraph. StyleID refers to styles.xml ids
// (Heading1, Heading2, Title, ListParagraph) and NumID to BulletList or
// DecimalList.
type Paragraph struct {
	StyleID string
	Text    string
	Bold    bool
	NumID   string
	ILvl    int
}

// P returns a plain paragraph.
func P(text string) Paragraph { return Paragraph{Text: text} }

// H returns a paragraph styled as Heading N.
func H(level int, text string) Paragraph {
	return Paragraph{StyleID: fmt.Sprintf("Heading%d", level), Text: text}
}

// B returns a paragraph with a single bold run.
func B(text string) Paragraph { return Paragraph{Text: text, Bold: true} }

// Build returns the bytes of a .docx archive holding paras.
func Build(title string, paras ...Paragraph) []byte {
	var body strings.Builder
	for _, p := range paras {
		body.WriteString("<w:p>")
		if p.StyleID != "" || p.NumID != "" {
			body.WriteString("<w:pPr>")
			if p.StyleID != "" {
				fmt.Fprintf(&body, `<w:pStyle w:val="%s"/>`, p.StyleID)
			}
			if p.NumID != "" {
				fmt.Fprintf(&body, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%s"/></w:numPr>`, p.ILvl, p.NumID)
			}
			body.WriteString("</w:pPr>")
		}
		if p.Text != "" {
			body.WriteString("<w:r>")
			if p.Bold {
				body.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			fmt.Fprintf(&body, `<w:t xml:space="preserve">%s</w:t>`, escape(p.Text))
			body.WriteString("</w:r>")
		}
		body.WriteString("</w:p>")
	}

	parts := map[string]string{
		"[Content_Types].xml": contentTypes,
		"word/document.xml":   fmt.Sprintf(documentTmpl, body.String()),
		"word/styles.xml":     styles,
		"word/numbering.xml":  numbering,
		"docProps/core.xml":   fmt.Sprintf(coreTmpl, escape(title)),
	}
	return Zip(parts)
}

// Zip packs raw parts into an archive, for tests needing hand-written XML.
func Zip(parts map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Write stores a generated archive at path, creating parent directories.
func Write(t testing.TB, path, title string, paras ...Paragraph) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, Build(title, paras...), 0o600); err != nil {
		t.Fatalf("write docx: %v", err)
	}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`

const documentTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>%s<w:sectPr/></w:body></w:document>`

const styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/></w:style>
<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:pPr><w:numPr><w:numId w:val="1"/></w:numPr></w:pPr></w:style>
<w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>
</w:styles>`

const numbering = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:abstractNum w:abstractNumId="10"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="20"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl><w:lvl w:ilvl="1"><w:start w:val="1"/><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="10"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="20"/></w:num>
</w:numbering>`

const coreTmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>%s</dc:title></cp:coreProperties>`
