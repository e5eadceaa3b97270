package feed

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveURLs makes the relative img[src] and a[href] of an HTML fragment
// absolute against base, the article URL. Feed readers resolve relative
// URLs against the feed, not the article, so bundle images would break.
// A fragment without relative URLs is returned unchanged.
func ResolveURLs(fragment, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range nodes {
		changed = resolveNode(n, baseURL) || changed
	}
	if !changed {
		return fragment, nil
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func resolveNode(n *html.Node, base *url.URL) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = resolveAttr(n, "src", base)
		case atom.A:
			changed = resolveAttr(n, "href", base)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		changed = resolveNode(c, base) || changed
	}
	return changed
}

func resolveAttr(n *html.Node, key string, base *url.URL) bool {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeURL(attr.Val) {
			continue
		}
		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
		return true
	}
	return false
}

// isRelativeURL reports whether u is a path relative to the article.
// Anchors, root paths, schemes and protocol-relative URLs are left alone.
func isRelativeURL(u string) bool {
	switch {
	case u == "",
		strings.HasPrefix(u, "#"),
		strings.HasPrefix(u, "/"),
		strings.HasPrefix(u, "data:"),
		strings.HasPrefix(u, "mailto:"):
		return false
	}
	parsed, err := url.Parse(u)
	return err == nil && parsed.Scheme == ""
}
