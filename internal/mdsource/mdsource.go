// Package mdsource reads Markdown session files into paragraphs so they go
// through the same classification as Word documents.
package mdsource

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-docx2html/internal/extract"
)

// Reader parses Markdown with GitHub Flavored Markdown extensions.
type Reader struct {
	md goldmark.Markdown
}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Parse converts Markdown source into paragraphs in reading order.
// Headings carry the style "Heading N" and strong text becomes bold runs.
// List items carry a "•" or "N." list marker beside their text.
func (r *Reader) Parse(source []byte) []extract.Paragraph {
	doc := r.md.Parser().Parse(text.NewReader(source))
	w := walker{source: source}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
	return w.out
}

// Parse uses a fresh Reader.
func Parse(source []byte) []extract.Paragraph {
	return NewReader().Parse(source)
}

type walker struct {
	source []byte
	out    []extract.Paragraph
}

func (w *walker) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		runs := w.inlineRuns(node)
		w.emit(fmt.Sprintf("Heading %d", node.Level), "", runs)
	case *ast.Paragraph, *ast.TextBlock:
		w.emit("Normal", "", w.inlineRuns(node))
	case *ast.List:
		w.list(node)
	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.emit("Normal", "", []extract.Run{{Text: w.lines(node)}})
	}
}

func (w *walker) list(l *ast.List) {
	i := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d.", l.Start+i)
		}
		i++

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if first {
					w.emit("Normal", marker, w.inlineRuns(c))
					first = false
					continue
				}
			}
			w.block(c)
		}
		if first {
			w.emit("Normal", marker, nil)
		}
	}
}

func (w *walker) emit(style, marker string, runs []extract.Run) {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	w.out = append(w.out, extract.Paragraph{
		Text:       sb.String(),
		StyleName:  style,
		Runs:       runs,
		ListMarker: marker,
	})
}

// inlineRuns flattens inline children into runs, splitting at strong
// emphasis boundaries.
func (w *walker) inlineRuns(n ast.Node) []extract.Run {
	var runs []extract.Run
	add := func(s string, bold bool) {
		if s == "" {
			return
		}
		if k := len(runs) - 1; k >= 0 && runs[k].Bold == bold {
			runs[k].Text += s
			return
		}
		runs = append(runs, extract.Run{Text: s, Bold: bold})
	}

	var visit func(n ast.Node, bold bool)
	visit = func(n ast.Node, bold bool) {
		switch node := n.(type) {
		case *ast.Text:
			add(string(node.Segment.Value(w.source)), bold)
			if node.SoftLineBreak() || node.HardLineBreak() {
				add(" ", bold)
			}
			return
		case *ast.String:
			add(string(node.Value), bold)
			return
		case *ast.AutoLink:
			add(string(node.URL(w.source)), bold)
			return
		case *ast.RawHTML, *ast.Image:
			return
		case *ast.Emphasis:
			bold = bold || node.Level >= 2
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c, bold)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		visit(c, false)
	}
	return runs
}

func (w *walker) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
