package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrParse indicates the markdown source could not be turned into events.
var ErrParse = errors.New("markdown parsing failed")

// EventSource abstracts the production of an event stream from markdown.
type EventSource interface {
	Events(ctx context.Context, source string) ([]Event, error)
}

// Parser produces event streams with goldmark. It recognizes tables, task
// list markers and a leading "+++" metadata block.
type Parser struct {
	md goldmark.Markdown
}

// Compile-time interface check.
var _ EventSource = (*Parser)(nil)

// NewParser creates a Parser.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.TaskList,
			Metadata,
		),
	)
	return &Parser{md: md}
}

// Events parses source and returns its event stream.
// Supports context cancellation via goroutine + select since goldmark
// doesn't take a context.
func (p *Parser) Events(ctx context.Context, source string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		events []Event
		err    error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, r)}
			}
		}()
		done <- result{events: p.Parse([]byte(source))}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.events, r.err
	}
}

// Parse parses source synchronously.
func (p *Parser) Parse(source []byte) []Event {
	doc := p.md.Parser().Parse(text.NewReader(source))
	w := &walker{source: source}
	_ = ast.Walk(doc, w.visit)
	return w.events
}

type walker struct {
	source []byte
	events []Event
}

func (w *walker) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *walker) startEnd(entering bool, e Event) {
	if entering {
		e.Kind = KindStart
	} else {
		e = Event{Kind: KindEnd, Tag: e.Tag, Text: e.Text}
	}
	w.emit(e)
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document, *ast.TextBlock:
		// transparent containers

	case *MetadataBlock:
		if entering {
			w.emit(Start(TagMetadataBlock))
			w.emit(Text(node.Content(w.source)))
			w.emit(End(TagMetadataBlock))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Paragraph:
		w.startEnd(entering, Event{Tag: TagParagraph})

	case *ast.Heading:
		w.startEnd(entering, Event{Tag: TagHeading, Level: node.Level})

	case *ast.Blockquote:
		w.startEnd(entering, Event{Tag: TagBlockQuote})

	case *ast.ThematicBreak:
		if entering {
			w.emit(Event{Kind: KindRule})
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		if entering {
			lang := ""
			if node.Info != nil {
				lang = string(node.Language(w.source))
			}
			w.emit(Event{Kind: KindStart, Tag: TagCodeBlock, Lang: lang, Fenced: true})
			if body := w.lines(node.Lines()); body != "" {
				w.emit(Text(body))
			}
			w.emit(End(TagCodeBlock))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			w.emit(Start(TagCodeBlock))
			if body := w.lines(node.Lines()); body != "" {
				w.emit(Text(body))
			}
			w.emit(End(TagCodeBlock))
		}
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		if entering {
			var buf bytes.Buffer
			buf.WriteString(w.lines(node.Lines()))
			if node.HasClosure() {
				buf.Write(node.ClosureLine.Value(w.source))
			}
			w.emit(Start(TagHTMLBlock))
			w.emit(Event{Kind: KindHTML, Text: buf.String()})
			w.emit(End(TagHTMLBlock))
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		w.startEnd(entering, Event{Tag: TagList, Ordered: node.IsOrdered(), Start: node.Start})

	case *ast.ListItem:
		w.startEnd(entering, Event{Tag: TagItem})

	case *ast.Emphasis:
		tag := TagEmphasis
		if node.Level >= 2 {
			tag = TagStrong
		}
		w.startEnd(entering, Event{Tag: tag})

	case *ast.CodeSpan:
		if entering {
			w.emit(Event{Kind: KindCode, Text: w.codeSpan(node)})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		w.startEnd(entering, Event{Tag: TagLink, URL: string(node.Destination), Title: string(node.Title)})

	case *ast.AutoLink:
		if entering {
			url := string(node.URL(w.source))
			if node.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower([]byte(url)), []byte("mailto:")) {
				url = "mailto:" + url
			}
			w.emit(Event{Kind: KindStart, Tag: TagLink, URL: url})
			w.emit(Text(string(node.Label(w.source))))
			w.emit(End(TagLink))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		w.startEnd(entering, Event{Tag: TagImage, URL: string(node.Destination), Title: string(node.Title)})

	case *ast.Text:
		if entering {
			value := node.Segment.Value(w.source)
			if !node.IsRaw() {
				value = unescape(value)
			}
			if len(value) > 0 {
				w.emit(Text(string(value)))
			}
			switch {
			case node.HardLineBreak():
				w.emit(Event{Kind: KindHardBreak})
			case node.SoftLineBreak():
				w.emit(Event{Kind: KindSoftBreak})
			}
		}

	case *ast.String:
		if entering && len(node.Value) > 0 {
			w.emit(Text(string(node.Value)))
		}

	case *ast.RawHTML:
		if entering {
			var buf bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(w.source))
			}
			w.emit(Event{Kind: KindInlineHTML, Text: buf.String()})
		}
		return ast.WalkSkipChildren, nil

	case *east.Table:
		if entering {
			aligns := make([]Alignment, len(node.Alignments))
			for i, a := range node.Alignments {
				aligns[i] = alignment(a)
			}
			w.emit(Event{Kind: KindStart, Tag: TagTable, Alignments: aligns})
		} else {
			w.emit(End(TagTable))
		}

	case *east.TableHeader:
		w.startEnd(entering, Event{Tag: TagTableHead})

	case *east.TableRow:
		w.startEnd(entering, Event{Tag: TagTableRow})

	case *east.TableCell:
		w.startEnd(entering, Event{Tag: TagTableCell})

	case *east.TaskCheckBox:
		if entering {
			w.emit(Event{Kind: KindTaskListMarker, Checked: node.IsChecked})
		}

	default:
		w.startEnd(entering, Event{Tag: TagOther, Text: n.Kind().String()})
	}

	return ast.WalkContinue, nil
}

// lines concatenates the raw value of every line segment.
func (w *walker) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.source))
	}
	return buf.String()
}

// codeSpan joins the code span content, turning line endings into spaces.
func (w *walker) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(w.source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
			continue
		}
		buf.Write(value)
	}
	return buf.String()
}

// unescape resolves backslash escapes and character references.
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func alignment(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}
