package postprocess

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-docx2html/internal/render"
)

// headingIDsPass gives every heading of the guide body an anchor id.
// Bodies where all headings already have ids are returned untouched.
type headingIDsPass struct{}

func (p *headingIDsPass) Name() string { return PassHeadingIDs }

func (p *headingIDsPass) Apply(ctx context.Context, page string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	var firstErr error
	out := render.MapContent(page, func(content string) string {
		fixed, err := assignHeadingIDs(content)
		if err != nil {
			firstErr = err
			return content
		}
		return fixed
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func assignHeadingIDs(content string) (string, error) {
	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(content), container)
	if err != nil {
		return "", err
	}

	slugs := render.NewSlugger()
	var missing []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attrValue(n, "id"); id != "" {
				slugs.Reserve(id)
			} else if isHeading(n) {
				missing = append(missing, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	if len(missing) == 0 {
		return content, nil
	}

	for _, n := range missing {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: slugs.Slug(nodeText(n))})
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates text descendants, skipping category label badges.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && strings.Contains(attrValue(n, "class"), "category-label") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
