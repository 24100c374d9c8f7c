// Package markup turns question and answer text into sanitized HTML and
// rewrites the images it references.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates Markdown to HTML conversion failed.
var ErrRender = errors.New("markup rendering failed")

var (
	// <img ... /> followed by a width annotation [N]
	imageWidth = regexp.MustCompile(`(<img\b[^>]*?)\s*/?>\[(\d+)\]`)

	// A fragment that is exactly one paragraph
	singleParagraph = regexp.MustCompile(`(?s)^<p>(.*)</p>$`)
)

// Renderer converts exam text (Markdown with inline HTML) to HTML fragments.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GFM extensions, inline-styled syntax
// highlighting and a user-content sanitizing policy.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // LMS pages load no stylesheet
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // exam text carries <br> and <code>; sanitized below
		),
	)

	return &Renderer{md: md, policy: newPolicy()}
}

// newPolicy allows user-generated content plus the inline styles chroma emits.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color", "background-color", "font-weight", "font-style",
		"text-decoration", "display", "white-space").OnElements("span", "pre", "code")
	p.AllowAttrs("tabindex").Matching(regexp.MustCompile(`^-?\d+$`)).OnElements("pre")
	return p
}

// Block renders text as a sanitized HTML fragment. A width annotation
// directly after an image becomes its width attribute.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (r *Renderer) Block(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(text), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		out := imageWidth.ReplaceAllString(buf.String(), `$1 width="$2" />`)
		out = r.policy.Sanitize(out)
		done <- result{html: strings.TrimSpace(out)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// Inline renders text like Block but drops the wrapping paragraph when the
// result is a single paragraph, for use in answer choices.
func (r *Renderer) Inline(ctx context.Context, text string) (string, error) {
	out, err := r.Block(ctx, text)
	if err != nil {
		return "", err
	}
	if m := singleParagraph.FindStringSubmatch(out); m != nil && !strings.Contains(m[1], "<p>") {
		return m[1], nil
	}
	return out, nil
}
