// Package docx2html turns Word session documents into styled HTML session
// guides for a training website.
//
// # Quick Start
//
//	conv, err := docx2html.NewConverter(
//	    docx2html.WithSite(docx2html.Site{Name: "Geração Futuro"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	data, _ := os.ReadFile("modulo2/M2 - Sessão 4.docx")
//	result, err := conv.Convert(ctx, docx2html.Input{
//	    Data:    data,
//	    Module:  2,
//	    Session: 4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("session4-guide.html", []byte(result.HTML), 0644)
//
// # Conversion Pipeline
//
//  1. Reading: .docx parts (or Markdown) become paragraphs with style
//     names and bold runs.
//  2. Extraction: paragraphs are classified into headings with icons, list
//     items and plain paragraphs.
//  3. Rendering: blocks become HTML, consecutive list items of the same kind
//     share one list, and the page template adds localized labels.
//  4. Post-processing: named passes clean the content, build the sidebar
//     navigation, add badges and dividers and inject the stylesheet.
//  5. Exports: optional Markdown and PDF (headless Chrome) copies.
//
// Passes are idempotent, so Restyle can re-apply them to guides generated
// earlier.
package docx2html
