package review

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-docx2html/internal/layout"
)

func goodGuide() string {
	return `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>Guia</title></head><body>` +
		`<aside class="sidebar"><nav id="guide-nav"></nav></aside>` +
		`<a href="../../index.html">Voltar</a>` +
		`<article id="guide-content"><h2 id="a">A</h2><p>` + strings.Repeat("texto ", 200) + `</p><h2 id="b">B</h2></article>` +
		`<footer>f</footer><script>1</script></body></html>`
}

// ---------------------------------------------------------------------------
// TestCheckGuide
// ---------------------------------------------------------------------------

func TestCheckGuide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     string
		want     []Severity
		contains string
	}{
		{
			name: "complete guide",
			page: goodGuide(),
			want: []Severity{Success},
		},
		{
			name:     "too small",
			page:     "<p>x</p>",
			want:     []Severity{Issue},
			contains: "too small",
		},
		{
			name:     "missing footer and wrong hub link",
			page:     strings.Replace(strings.Replace(goodGuide(), "<footer>f</footer>", "", 1), "../../index.html", "/", 1),
			want:     []Severity{Warning, Issue},
			contains: "missing footer",
		},
		{
			name:     "single section",
			page:     strings.Replace(goodGuide(), `<h2 id="b">B</h2>`, "", 1),
			want:     []Severity{Success, Warning},
			contains: "1 sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &Report{}
			require.NoError(t, r.CheckGuide("m1/s.html", []byte(tt.page), DefaultOptions()))

			got := make([]Severity, len(r.Findings))
			var messages []string
			for i, f := range r.Findings {
				got[i] = f.Severity
				messages = append(messages, f.Message)
			}
			assert.Equal(t, tt.want, got, messages)
			if tt.contains != "" {
				assert.Contains(t, strings.Join(messages, "|"), tt.contains)
			}
			assert.Equal(t, 1, r.Guides)
		})
	}
}

func TestReport_Score(t *testing.T) {
	t.Parallel()

	r := &Report{}
	assert.Zero(t, r.Score())
	assert.Equal(t, "attention", r.Rating())

	for range 9 {
		r.add(Success, "x", "ok")
	}
	r.add(Warning, "y", "w")
	assert.InDelta(t, 90.0, r.Score(), 0.001)
	assert.Equal(t, "excellent", r.Rating())
	assert.False(t, r.HasIssues())

	r.add(Issue, "z", "bad")
	r.add(Issue, "z", "bad")
	assert.Equal(t, "good", r.Rating())
	assert.True(t, r.HasIssues())
	assert.Len(t, r.Filter(Issue), 2)
}

// ---------------------------------------------------------------------------
// TestReviewer_Review
// ---------------------------------------------------------------------------

func TestReviewer_Review(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	guides := filepath.Join(root, "site")
	sources := filepath.Join(root, "docs")

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write(filepath.Join(sources, "modulo1", "Sessão 1.docx"), "zip")
	write(filepath.Join(sources, "modulo1", "Sessão 2.docx"), "")
	write(filepath.Join(guides, "modulo1", "session1-guide.html"), goodGuide())
	write(filepath.Join(guides, "modulo1", "index.html"), "<p>not a guide</p>")

	lay, err := layout.New("")
	require.NoError(t, err)
	v := &Reviewer{Layout: lay, Options: DefaultOptions()}

	r, err := v.Review(context.Background(), guides, sources)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Guides)
	assert.Equal(t, 2, r.Sources)

	warnings := r.Filter(Warning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "modulo1/Sessão 2.docx", warnings[0].Subject)

	issues := r.Filter(Issue)
	require.Len(t, issues, 1)
	assert.Equal(t, "modulo1/session2-guide.html", issues[0].Subject)
}

func TestReviewer_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session1-guide.html"), []byte(goodGuide()), 0o644))

	lay, err := layout.New("")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = (&Reviewer{Layout: lay, Options: DefaultOptions()}).Review(ctx, dir, "")
	require.ErrorIs(t, err, context.Canceled)
}
