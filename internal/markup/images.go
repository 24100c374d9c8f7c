package markup

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageSources returns the src of every <img> in the fragment, in order.
func ImageSources(fragment string) ([]string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}

	var srcs []string
	walkImages(doc, func(n *html.Node, i int) {
		srcs = append(srcs, n.Attr[i].Val)
	})
	return srcs, nil
}

// RewriteImages replaces the src of every <img> in the fragment by the value
// returned from fn. The first error from fn stops rewriting and is returned.
func RewriteImages(fragment string, fn func(src string) (string, error)) (string, error) {
	if !strings.Contains(fragment, "<img") {
		return fragment, nil
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	var rewriteErr error
	walkImages(doc, func(n *html.Node, i int) {
		if rewriteErr != nil {
			return
		}
		val, err := fn(n.Attr[i].Val)
		if err != nil {
			rewriteErr = err
			return
		}
		n.Attr[i].Val = val
	})
	if rewriteErr != nil {
		return "", rewriteErr
	}

	return renderFragment(doc)
}

// LocalPath returns the filesystem path an image src refers to, resolving
// relative paths against baseDir. URLs, data URIs and anchors return false.
func LocalPath(src, baseDir string) (string, bool) {
	if !isLocalSource(src) {
		return "", false
	}

	path := src
	if unescaped, err := url.PathUnescape(src); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) && !isSlashAbs(src) {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path), true
}

// isLocalSource returns true if src names a file rather than a URL.
func isLocalSource(src string) bool {
	if src == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(src, "//") {
		return false
	}

	// Skip anchors and already packaged references
	return !strings.HasPrefix(src, "#") && !strings.HasPrefix(src, "$")
}

// isSlashAbs reports a rooted slash path, absolute on Unix and drive-relative
// on Windows.
func isSlashAbs(src string) bool {
	return strings.HasPrefix(src, "/")
}

// walkImages calls fn for the src attribute of every <img> below n.
func walkImages(n *html.Node, fn func(n *html.Node, attr int)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key == "src" {
				fn(n, i)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, fn)
	}
}

// parseFragment parses HTML with body context to avoid wrapping, collecting
// the nodes under a container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the children of a container built by parseFragment.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
