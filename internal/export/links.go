package export

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// AbsoluteLinks rewrites relative link and image targets in page to file://
// URLs resolved against dir, the directory the guide is written to. A PDF is
// rendered from a temporary copy of the page, where relative targets would
// point nowhere. Images must stay under dir; links may point anywhere, so the
// download card and the back link keep working. An empty dir returns page
// unchanged.
func AbsoluteLinks(page, dir string) (string, error) {
	if dir == "" {
		return page, nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	rewriteLinks(doc, absDir)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func rewriteLinks(n *html.Node, dir string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "a":
			rewriteAttr(n, "href", dir, false)
		case "img":
			rewriteAttr(n, "src", dir, true)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteLinks(c, dir)
	}
}

func rewriteAttr(n *html.Node, key, dir string, confine bool) {
	for i, a := range n.Attr {
		if a.Key != key || !isRelative(a.Val) {
			continue
		}
		target, err := url.PathUnescape(a.Val)
		if err != nil {
			continue
		}
		target, fragment, _ := strings.Cut(target, "#")
		abs := filepath.Join(dir, filepath.FromSlash(target))
		if confine && !isUnder(abs, dir) {
			continue
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), Fragment: fragment}
		n.Attr[i].Val = u.String()
	}
}

// isRelative reports whether target is a relative file reference. URLs with
// a scheme, protocol-relative URLs, anchors and absolute paths are not.
func isRelative(target string) bool {
	if target == "" || strings.HasPrefix(target, "#") || strings.HasPrefix(target, "//") {
		return false
	}
	if u, err := url.Parse(target); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(target) && !strings.HasPrefix(target, "/")
}

func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
