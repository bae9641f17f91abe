package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// TestMarkdownExporter_Export
// ---------------------------------------------------------------------------

func TestMarkdownExporter_Export(t *testing.T) {
	t.Parallel()

	page := `<html><body><nav id="guide-nav"><a href="#x">Nav</a></nav>` +
		`<article id="guide-content" class="guide-content">` +
		`<h2 id="objetivos"><span class="category-label">Objetivos</span> 🎯 Objetivos</h2>` + "\n" +
		`<div class="time-badge">⏱️ 10 min</div>` +
		`<ul class="list-disc"><li>Conhecer</li><li>Aplicar</li></ul>` +
		`<div class="section-divider"></div>` + "\n" +
		`<h2 id="atividade">🚀 Atividade</h2><p>Texto <strong>forte</strong></p>` +
		`</article></body></html>`

	md, err := NewMarkdownExporter().Export(page, "Sessão 4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Sessão 4\n\n## 🎯 Objetivos"), md)
	assert.Contains(t, md, "- Conhecer\n- Aplicar")
	assert.Contains(t, md, "## 🚀 Atividade")
	assert.Contains(t, md, "**forte**")
	assert.NotContains(t, md, "Nav")
	assert.NotContains(t, md, "10 min")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestMarkdownExporter_NoTitle(t *testing.T) {
	t.Parallel()

	md, err := NewMarkdownExporter().Export("<p>Olá</p>", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Olá\n", md)
}
