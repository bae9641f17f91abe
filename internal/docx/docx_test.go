package docx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-docx2html/internal/docx"
	"github.com/alnah/go-docx2html/internal/docx/docxtest"
	"github.com/alnah/go-docx2html/internal/extract"
)

// ---------------------------------------------------------------------------
// TestParse - Paragraph stream from generated archives
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	data := docxtest.Build("Sessão 1",
		docxtest.P("📘 Sessão 1 – Quem sou eu"),
		docxtest.H(2, "Objetivos"),
		docxtest.Paragraph{Text: "Conhecer o grupo", NumID: docxtest.BulletList},
		docxtest.Paragraph{Text: "Primeiro passo", NumID: docxtest.DecimalList},
		docxtest.Paragraph{Text: "Segundo passo", NumID: docxtest.DecimalList},
		docxtest.Paragraph{Text: "Sub passo", NumID: docxtest.DecimalList, ILvl: 1},
		docxtest.Paragraph{Text: "Terceiro passo", NumID: docxtest.DecimalList},
		docxtest.B("Materiais necessários"),
		docxtest.P(""),
		docxtest.Paragraph{StyleID: "ListBullet", Text: "Cartolinas"},
	)

	doc, err := docx.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Sessão 1", doc.Title)

	var texts, markers, styles []string
	for _, p := range doc.Paragraphs {
		texts = append(texts, p.Text)
		markers = append(markers, p.ListMarker)
		styles = append(styles, p.StyleName)
	}
	assert.Equal(t, []string{
		"📘 Sessão 1 – Quem sou eu",
		"Objetivos",
		"Conhecer o grupo",
		"Primeiro passo",
		"Segundo passo",
		"Sub passo",
		"Terceiro passo",
		"Materiais necessários",
		"",
		"Cartolinas",
	}, texts)
	assert.Equal(t, []string{"", "", "•", "1.", "2.", "1.", "3.", "", "", "•"}, markers)
	assert.Equal(t, "Normal", styles[0])
	assert.Equal(t, "Heading 2", styles[1])
	assert.Equal(t, "List Bullet", styles[9])

	bold := doc.Paragraphs[7]
	require.Len(t, bold.Runs, 1)
	assert.True(t, bold.Runs[0].Bold)
}

func TestParse_FeedsExtractor(t *testing.T) {
	t.Parallel()

	data := docxtest.Build("",
		docxtest.H(1, "Objetivos"),
		docxtest.Paragraph{Text: "Primeiro", NumID: docxtest.BulletList},
		docxtest.Paragraph{Text: "Segundo", NumID: docxtest.BulletList},
		docxtest.P("Um texto normal."),
	)
	doc, err := docx.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []extract.Block{
		extract.HeadingBlock(2, "🎯", "Objetivos"),
		extract.ListItemBlock(false, "Primeiro"),
		extract.ListItemBlock(false, "Segundo"),
		extract.ParagraphBlock("Um texto normal."),
	}, extract.Extract(doc.Paragraphs))
}

// ---------------------------------------------------------------------------
// TestParse_NumberedHeadings - Markers stay out of heading text
// ---------------------------------------------------------------------------

func TestParse_NumberedHeadings(t *testing.T) {
	t.Parallel()

	data := docxtest.Build("",
		docxtest.Paragraph{StyleID: "Heading1", Text: "Objetivos da atividade", NumID: docxtest.DecimalList},
		docxtest.Paragraph{Text: "Materiais e recursos", Bold: true, NumID: docxtest.BulletList},
		docxtest.Paragraph{Text: "Cartolinas", NumID: docxtest.BulletList},
	)
	doc, err := docx.Parse(data)
	require.NoError(t, err)

	for _, p := range doc.Paragraphs {
		for _, r := range p.Runs {
			assert.NotContains(t, r.Text, "•")
		}
	}
	assert.Equal(t, []extract.Block{
		extract.HeadingBlock(2, "🎯", "Objetivos da atividade"),
		extract.HeadingBlock(2, "📦", "Materiais e recursos"),
		extract.ListItemBlock(false, "Cartolinas"),
	}, extract.Extract(doc.Paragraphs))
}

// ---------------------------------------------------------------------------
// TestParse_RawXML - Run-level details Word produces
// ---------------------------------------------------------------------------

func TestParse_RawXML(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><w:body>
<w:p><w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>Não negrito longo</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:b w:val="1"/></w:rPr><w:t>Parte</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve"> final</w:t></w:r></w:p>
<w:p><w:hyperlink><w:r><w:t>ligação</w:t></w:r></w:hyperlink><w:r><w:br/><w:t>linha</w:t></w:r></w:p>
<w:p><w:r><w:t>antes</w:t></w:r><w:r><mc:AlternateContent><mc:Fallback><w:pict><w:p><w:r><w:t>caixa</w:t></w:r></w:p></w:pict></mc:Fallback></mc:AlternateContent></w:r><w:ins><w:r><w:t> depois</w:t></w:r></w:ins><w:del><w:r><w:delText>apagado</w:delText></w:r></w:del></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>célula</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:sym w:font="Segoe UI Emoji" w:char="2705"/><w:t>ok</w:t></w:r></w:p>
<w:sectPr/></w:body></w:document>`

	doc, err := docx.Parse(docxtest.Zip(map[string]string{"word/document.xml": body}))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 5)

	assert.False(t, doc.Paragraphs[0].Runs[0].Bold)
	assert.Equal(t, "Normal", doc.Paragraphs[0].StyleName, "missing styles part falls back to Normal")

	assert.Equal(t, "Parte\t final", doc.Paragraphs[1].Text)
	assert.True(t, doc.Paragraphs[1].Runs[0].Bold)
	assert.False(t, doc.Paragraphs[1].Runs[1].Bold)

	assert.Equal(t, "ligação\nlinha", doc.Paragraphs[2].Text)
	assert.Equal(t, "antes depois", doc.Paragraphs[3].Text)
	assert.Equal(t, "✅ok", doc.Paragraphs[4].Text)
	assert.Empty(t, doc.Title)
}

// ---------------------------------------------------------------------------
// TestParse_Errors - Sentinel errors
// ---------------------------------------------------------------------------

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "not a zip",
			data:    []byte("plain text"),
			wantErr: docx.ErrNotDOCX,
		},
		{
			name:    "zip without document part",
			data:    docxtest.Zip(map[string]string{"word/styles.xml": "<w:styles/>"}),
			wantErr: docx.ErrMissingPart,
		},
		{
			name:    "broken document xml",
			data:    docxtest.Zip(map[string]string{"word/document.xml": "<w:document><w:body><w:p>"}),
			wantErr: docx.ErrMalformedXML,
		},
		{
			name: "broken styles xml",
			data: docxtest.Zip(map[string]string{
				"word/document.xml": "<document><body/></document>",
				"word/styles.xml":   "<styles><style>",
			}),
			wantErr: docx.ErrMalformedXML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := docx.Parse(tt.data)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "M1 - Sessão 1.docx")
	docxtest.Write(t, path, "t", docxtest.P("olá"))

	doc, err := docx.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "olá", doc.Paragraphs[0].Text)

	_, err = docx.Open(filepath.Join(dir, "missing.docx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
