package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates standard HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts markdown to plain HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// StandardRenderer renders markdown to unstyled HTML with inline-styled
// code highlighting. Feed readers get this output since they ignore
// external stylesheets.
type StandardRenderer struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ HTMLConverter = (*StandardRenderer)(nil)

// NewStandardRenderer creates a StandardRenderer using the named chroma
// style. An empty style selects DefaultHighlightStyle.
func NewStandardRenderer(style string) *StandardRenderer {
	if style == "" {
		style = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.TaskList,
			Metadata,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML is authored content and passes through as written.
			html.WithUnsafe(),
		),
	)
	return &StandardRenderer{md: md}
}

// ToHTML converts markdown to an HTML fragment.
func (r *StandardRenderer) ToHTML(ctx context.Context, content string) (string, error) {
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
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
