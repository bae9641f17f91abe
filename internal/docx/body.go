package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docx2html/internal/extract"
)

type numRef struct {
	numID string
	ilvl  int
}

type rawParagraph struct {
	styleID string
	num     *numRef
	runs    []extract.Run
}

// ignoredElements hold content that is not part of the paragraph's reading
// text: drawings and text boxes (which nest their own paragraphs), embedded
// objects and the alternate renderings of both.
var ignoredElements = map[string]bool{
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"AlternateContent": true,
}

// parseBody streams word/document.xml and returns top-level body paragraphs.
// Paragraphs inside tables are not part of the reading flow and are skipped.
func parseBody(data []byte) ([]rawParagraph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		out       []rawParagraph
		stack     []string
		para      *rawParagraph
		paraDepth int
		run       *extract.Run
		skip      int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := top(stack)
			stack = append(stack, name)

			if skip > 0 {
				skip++
				continue
			}
			if ignoredElements[name] {
				skip = 1
				continue
			}

			switch name {
			case "p":
				if para == nil && (parent == "body" || parent == "sdtContent") {
					para = &rawParagraph{}
					paraDepth = len(stack)
				}
			case "pStyle":
				if para != nil && parent == "pPr" {
					para.styleID = attr(t, "val")
				}
			case "numId", "ilvl":
				if para == nil || parent != "numPr" {
					continue
				}
				if para.num == nil {
					para.num = &numRef{}
				}
				if name == "numId" {
					para.num.numID = attr(t, "val")
				} else {
					para.num.ilvl, _ = strconv.Atoi(attr(t, "val"))
				}
			case "r":
				if para != nil {
					run = &extract.Run{}
				}
			case "b":
				if run != nil && parent == "rPr" {
					run.Bold = onOff(attr(t, "val"))
				}
			case "tab":
				if run != nil && parent == "r" {
					run.Text += "\t"
				}
			case "br", "cr":
				if run != nil && parent == "r" {
					run.Text += "\n"
				}
			case "sym":
				if run != nil && parent == "r" {
					run.Text += symbolText(attr(t, "char"))
				}
			}

		case xml.EndElement:
			name := t.Name.Local
			depth := len(stack)
			stack = stack[:depth-1]

			if skip > 0 {
				skip--
				continue
			}

			switch name {
			case "r":
				if para != nil && run != nil {
					if run.Text != "" {
						para.runs = append(para.runs, *run)
					}
					run = nil
				}
			case "p":
				if para != nil && depth == paraDepth {
					if para.num != nil && (para.num.numID == "" || para.num.numID == "0") {
						para.num = nil
					}
					out = append(out, *para)
					para = nil
				}
			}

		case xml.CharData:
			if skip == 0 && run != nil && top(stack) == "t" {
				run.Text += string(t)
			}
		}
	}
	return out, nil
}

func top(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// onOff interprets an ST_OnOff value; an absent value means on.
func onOff(val string) bool {
	switch strings.ToLower(val) {
	case "false", "0", "off", "none":
		return false
	default:
		return true
	}
}

// symbolText decodes a w:sym character. Symbol-font glyphs live in the
// private use area and have no portable text form, so they are dropped.
func symbolText(hex string) string {
	code, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || code == 0 {
		return ""
	}
	r := rune(code)
	if r >= 0xE000 && r <= 0xF8FF {
		return ""
	}
	return string(r)
}
