package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	t.Parallel()

	blocks := []Block{
		ParagraphBlock("intro"),
		HeadingBlock(2, "🎯", "Objetivos"),
		ListItemBlock(false, "a"),
		HeadingBlock(3, "📝", "Sessão 1"),
		ParagraphBlock("detalhe"),
		HeadingBlock(2, "🚀", "Atividade"),
		ParagraphBlock("fazer"),
	}

	sections := Sections(blocks)
	require.Len(t, sections, 3)

	assert.Nil(t, sections[0].Heading)
	assert.Equal(t, []Block{ParagraphBlock("intro")}, sections[0].Blocks)

	require.NotNil(t, sections[1].Heading)
	assert.Equal(t, "Objetivos", sections[1].Heading.Text)
	assert.Len(t, sections[1].Blocks, 3, "level 3 heading stays inside its parent")

	assert.Equal(t, "Atividade", sections[2].Heading.Text)
	assert.Equal(t, blocks, Flatten(sections))
}

func TestSections_Edges(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Sections(nil))
	})

	t.Run("leading level 3 closed by level 2", func(t *testing.T) {
		t.Parallel()
		blocks := []Block{
			HeadingBlock(3, "📝", "Sessão 2"),
			ParagraphBlock("x"),
			HeadingBlock(2, "🎯", "Objetivos"),
		}
		sections := Sections(blocks)
		require.Len(t, sections, 2)
		assert.Equal(t, 3, sections[0].Heading.Level)
		assert.Equal(t, 2, sections[1].Heading.Level)
		assert.Empty(t, sections[1].Blocks)
	})

	t.Run("sibling headings", func(t *testing.T) {
		t.Parallel()
		blocks := []Block{
			HeadingBlock(2, "📝", "A"),
			HeadingBlock(2, "📝", "B"),
		}
		assert.Len(t, Sections(blocks), 2)
	})
}

func TestDetectTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []Paragraph
		want   string
		wantOK bool
	}{
		{
			name: "strips glyph and noise phrase",
			input: []Paragraph{
				NewParagraph("Módulo 2", "Normal", false),
				NewParagraph("📘 Sessão 4 – Atividade Assíncrona Comunicar melhor", "Title", false),
			},
			want:   "Sessão 4 – Comunicar melhor",
			wantOK: true,
		},
		{
			name:   "no marker",
			input:  []Paragraph{NewParagraph("Introdução", "Normal", false)},
			wantOK: false,
		},
		{
			name: "marker match is case-sensitive",
			input: []Paragraph{
				NewParagraph("Objetivos da sessão", "Normal", false),
				NewParagraph("Sessão 5 – Ouvir", "Title", false),
			},
			want:   "Sessão 5 – Ouvir",
			wantOK: true,
		},
		{
			name:   "marker that is only noise",
			input:  []Paragraph{NewParagraph("📘", "Normal", false)},
			wantOK: false,
		},
		{
			name: "marker beyond the first ten paragraphs",
			input: append(
				repeat(NewParagraph("texto", "Normal", false), 10),
				NewParagraph("Sessão 9", "Normal", false),
			),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := DetectTitle(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func repeat(p Paragraph, n int) []Paragraph {
	out := make([]Paragraph, n)
	for i := range out {
		out[i] = p
	}
	return out
}
