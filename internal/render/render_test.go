package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-docx2html/internal/extract"
)

// ---------------------------------------------------------------------------
// TestBlocks - List folding and escaping
// ---------------------------------------------------------------------------

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		blocks []extract.Block
		want   string
	}{
		{
			name: "heading, bullet list and paragraph",
			blocks: []extract.Block{
				extract.HeadingBlock(2, "🎯", "Objetivos"),
				extract.ListItemBlock(false, "Primeiro"),
				extract.ListItemBlock(false, "Segundo"),
				extract.ParagraphBlock("Um texto normal."),
			},
			want: `<h2 id="objetivos">🎯 Objetivos</h2>
<ul class="list-disc">
<li>Primeiro</li>
<li>Segundo</li>
</ul>
<p>Um texto normal.</p>
`,
		},
		{
			name: "ordered items share one list",
			blocks: []extract.Block{
				extract.ListItemBlock(true, "Primeiro passo"),
				extract.ListItemBlock(true, "Segundo passo"),
			},
			want: `<ol class="list-decimal">
<li>Primeiro passo</li>
<li>Segundo passo</li>
</ol>
`,
		},
		{
			name: "orderedness change opens a new list",
			blocks: []extract.Block{
				extract.ListItemBlock(false, "a"),
				extract.ListItemBlock(true, "b"),
			},
			want: `<ul class="list-disc">
<li>a</li>
</ul>
<ol class="list-decimal">
<li>b</li>
</ol>
`,
		},
		{
			name: "paragraph splits a list",
			blocks: []extract.Block{
				extract.ListItemBlock(false, "a"),
				extract.ParagraphBlock("p"),
				extract.ListItemBlock(false, "b"),
			},
			want: `<ul class="list-disc">
<li>a</li>
</ul>
<p>p</p>
<ul class="list-disc">
<li>b</li>
</ul>
`,
		},
		{
			name:   "text is escaped",
			blocks: []extract.Block{extract.ParagraphBlock(`5 < 6 & "ok"`)},
			want:   "<p>5 &lt; 6 &amp; &#34;ok&#34;</p>\n",
		},
		{
			name:   "empty",
			blocks: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Blocks(tt.blocks).HTML)
		})
	}
}

func TestBlocks_HeadingsAndStats(t *testing.T) {
	t.Parallel()

	frag := Blocks([]extract.Block{
		extract.HeadingBlock(2, "🎯", "Objetivos"),
		extract.ListItemBlock(false, "x"),
		extract.HeadingBlock(3, "📝", "Sessão 1"),
		extract.HeadingBlock(2, "🎯", "Objetivos"),
		extract.ParagraphBlock("y"),
	})

	require.Len(t, frag.Headings, 3)
	assert.Equal(t, "objetivos", frag.Headings[0].ID)
	assert.Equal(t, "sessao-1", frag.Headings[1].ID)
	assert.Equal(t, 3, frag.Headings[1].Level)
	assert.Equal(t, "objetivos-2", frag.Headings[2].ID)
	assert.Equal(t, extract.CategoryObjectives, frag.Headings[0].Category)
	assert.Equal(t, Stats{Headings: 3, ListItems: 1, Lists: 1, Paragraphs: 1}, frag.Stats)
}

// ---------------------------------------------------------------------------
// TestSlug - Anchor ids
// ---------------------------------------------------------------------------

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Objetivos":                  "objetivos",
		"Preparação da Sessão":       "preparacao-da-sessao",
		"  1. Antes — de começar!  ": "1-antes-de-comecar",
		"🎯":                          "section",
		"":                           "section",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugger(t *testing.T) {
	t.Parallel()

	s := NewSlugger()
	s.Reserve("materiais-2")
	assert.Equal(t, "materiais", s.Slug("Materiais"))
	assert.Equal(t, "materiais-3", s.Slug("Materiais"))
	assert.Equal(t, "materiais-4", s.Slug("Materiais"))
}

// ---------------------------------------------------------------------------
// TestGroupByCategory - Sections regrouped in display order
// ---------------------------------------------------------------------------

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	blocks := []extract.Block{
		extract.ParagraphBlock("intro"),
		extract.HeadingBlock(2, "🚀", "Atividade 1"),
		extract.ParagraphBlock("a1"),
		extract.HeadingBlock(2, "🎯", "Objetivos"),
		extract.ParagraphBlock("o"),
		extract.HeadingBlock(2, "🚀", "Atividade 2"),
		extract.ParagraphBlock("a2"),
	}
	label := func(c extract.Category) string { return "Grupo " + string(c) }

	got := GroupByCategory(blocks, label)
	assert.Equal(t, []extract.Block{
		extract.ParagraphBlock("intro"),
		extract.HeadingBlock(2, "🎯", "Objetivos"),
		extract.ParagraphBlock("o"),
		extract.HeadingBlock(2, "🚀", "Grupo activities"),
		extract.HeadingBlock(3, "🚀", "Atividade 1"),
		extract.ParagraphBlock("a1"),
		extract.HeadingBlock(3, "🚀", "Atividade 2"),
		extract.ParagraphBlock("a2"),
	}, got)
}

// ---------------------------------------------------------------------------
// TestPageRenderer - Template execution and content bounds
// ---------------------------------------------------------------------------

const testTemplate = `<!DOCTYPE html><html lang="{{.Lang}}"><head><title>{{.PageTitle}}</title></head>` +
	`<body><a href="{{.HubHref}}">{{.Labels.BackToHub}}</a><h1>{{.SessionTitle}}</h1>` +
	`<article id="guide-content">{{.Content}}</article><footer>{{.Footer}}</footer></body></html>`

func TestPageRenderer_Render(t *testing.T) {
	t.Parallel()

	r, err := NewPageRenderer(testTemplate)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), &Page{
		Lang:         "pt",
		PageTitle:    "Guia <1>",
		SessionTitle: "Sessão 1",
		HubHref:      "../../index.html",
		Labels:       Labels{BackToHub: "Voltar ao Hub"},
		Content:      "<p>corpo</p>",
		Footer:       "© 2026",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Guia &lt;1&gt;</title>")
	assert.Contains(t, out, `<a href="../../index.html">Voltar ao Hub</a>`)
	assert.Equal(t, "<p>corpo</p>", ContentOf(out))
}

func TestPageRenderer_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewPageRenderer("{{.Broken")
	require.Error(t, err)

	r, err := NewPageRenderer("{{.Missing}}")
	require.NoError(t, err)
	_, err = r.Render(context.Background(), &Page{})
	require.ErrorIs(t, err, ErrPageRender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, &Page{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMapContent(t *testing.T) {
	t.Parallel()

	page := `<html><nav><p>nav</p></nav><article class="x" id="guide-content"><p>a</p></article></html>`
	got := MapContent(page, strings.ToUpper)
	assert.Equal(t, `<html><nav><p>nav</p></nav><article class="x" id="guide-content"><P>A</P></article></html>`, got)

	assert.Equal(t, "<P>B</P>", MapContent("<p>b</p>", strings.ToUpper), "bare fragments are content")
}
