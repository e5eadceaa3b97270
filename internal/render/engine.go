package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-md2site/internal/markdown"
)

// RawHTMLPolicy decides what happens to raw HTML that holds no registered
// component.
type RawHTMLPolicy int

const (
	// RawHTMLPassthrough emits the chunk verbatim.
	RawHTMLPassthrough RawHTMLPolicy = iota
	// RawHTMLDrop discards the chunk.
	RawHTMLDrop
)

func (p RawHTMLPolicy) String() string {
	if p == RawHTMLDrop {
		return "drop"
	}
	return "passthrough"
}

// ParseRawHTMLPolicy parses "passthrough" or "drop". An empty string is the
// passthrough default.
func ParseRawHTMLPolicy(s string) (RawHTMLPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "passthrough":
		return RawHTMLPassthrough, nil
	case "drop":
		return RawHTMLDrop, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: passthrough, drop)", ErrInvalidRawHTMLPolicy, s)
	}
}

// Document carries what the engine knows about the document being rendered.
type Document struct {
	// AssetDir is the folder holding the document's assets, empty when the
	// document has none.
	AssetDir string
}

// Engine renders event streams. It is safe for concurrent use: all state
// lives in a single Render call.
type Engine struct {
	rawHTML     RawHTMLPolicy
	components  []Component
	highlighter *highlighter
}

// Option configures an Engine.
type Option func(*Engine)

// WithRawHTMLPolicy sets the treatment of unmatched raw HTML.
func WithRawHTMLPolicy(p RawHTMLPolicy) Option {
	return func(e *Engine) {
		e.rawHTML = p
	}
}

// WithComponents replaces the component table. Order matters: the first
// component found in a chunk wins.
func WithComponents(components ...Component) Option {
	return func(e *Engine) {
		e.components = components
	}
}

// WithHighlighting enables server-side highlighting of fenced code with the
// named chroma style.
func WithHighlighting(style string) Option {
	return func(e *Engine) {
		e.highlighter = newHighlighter(style)
	}
}

// New creates an Engine with the default components.
func New(opts ...Option) *Engine {
	e := &Engine{components: DefaultComponents()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render converts events into HTML fragments. Rendering is all or nothing:
// the first event without a rule fails the whole document with an
// *UnknownEventError.
func (e *Engine) Render(events []markdown.Event, doc Document) ([]string, error) {
	s := &state{engine: e, doc: doc}
	for _, ev := range events {
		if err := s.handle(ev); err != nil {
			return nil, err
		}
	}
	if s.buf.Len() > 0 {
		s.flush()
	}
	return s.fragments, nil
}

// RenderHTML renders events and joins the fragments with newlines.
func (e *Engine) RenderHTML(events []markdown.Event, doc Document) (string, error) {
	fragments, err := e.Render(events, doc)
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, "\n"), nil
}

type tablePhase int

const (
	phaseHead tablePhase = iota
	phaseBody
)

// state is the mutable part of one Render call.
type state struct {
	engine *Engine
	doc    Document

	suppress bool

	alignments []markdown.Alignment
	cell       int
	phase      tablePhase

	inImage bool
	heading int
	lists   []bool // ordered flag of each open list

	// code buffers fenced code while highlighting is enabled.
	code *codeBuffer

	buf       strings.Builder
	fragments []string
}

type codeBuffer struct {
	lang string
	text strings.Builder
}

func (s *state) flush() {
	s.fragments = append(s.fragments, s.buf.String())
	s.buf.Reset()
}

func (s *state) write(parts ...string) {
	for _, p := range parts {
		s.buf.WriteString(p)
	}
}

func (s *state) handle(ev markdown.Event) error {
	if ev.Tag == markdown.TagMetadataBlock && (ev.Kind == markdown.KindStart || ev.Kind == markdown.KindEnd) {
		s.suppress = ev.Kind == markdown.KindStart
		return nil
	}
	if s.suppress {
		return nil
	}

	switch ev.Kind {
	case markdown.KindStart:
		return s.start(ev)
	case markdown.KindEnd:
		return s.end(ev)
	case markdown.KindText:
		s.text(ev.Text)
	case markdown.KindCode:
		s.write(`<code class="`, classInlineCode, `">`, html.EscapeString(ev.Text), "</code>")
		s.flush()
	case markdown.KindHTML:
		return s.rawHTML(ev.Text)
	case markdown.KindSoftBreak:
		s.write("\n")
		s.flush()
	case markdown.KindHardBreak:
		s.write("<br />")
		s.flush()
	case markdown.KindRule:
		s.write("<hr />")
		s.flush()
	case markdown.KindTaskListMarker:
		if ev.Checked {
			s.write(`<input type="checkbox" checked class="`, classCheckbox, `" />`)
		} else {
			s.write(`<input type="checkbox" class="`, classCheckbox, `" />`)
		}
		s.flush()
	default:
		return &UnknownEventError{Event: ev}
	}
	return nil
}

func (s *state) text(t string) {
	switch {
	case s.code != nil:
		s.code.text.WriteString(t)
	case s.inImage:
		s.write(`<blockquote class="`, classCaption, `">`, html.EscapeString(t), "</blockquote>")
	default:
		s.write(html.EscapeString(t))
	}
}

func (s *state) start(ev markdown.Event) error {
	switch ev.Tag {
	case markdown.TagParagraph:
		s.write(`<p class="`, classParagraph, `">`)

	case markdown.TagHeading:
		s.heading = min(max(ev.Level, 1), 6)
		s.write(fmt.Sprintf(`<h%d class="%s">`, s.heading, headingClass(s.heading)))

	case markdown.TagBlockQuote:
		s.write(`<blockquote class="`, classBlockQuote, `">`)

	case markdown.TagCodeBlock:
		langClass := ""
		if ev.Lang != "" {
			langClass = ` class="language-` + html.EscapeString(markdown.CodeLanguage(ev.Lang)) + `"`
		}
		s.write(`<pre class="`, classCodeBlock, `"><code`, langClass, ">")
		if s.engine.highlighter != nil {
			s.code = &codeBuffer{lang: ev.Lang}
		}

	case markdown.TagHTMLBlock:
		// the chunk arrives as an Html event

	case markdown.TagList:
		s.lists = append(s.lists, ev.Ordered)
		if ev.Ordered {
			s.write(`<ol class="`, classOrderedList, `">`)
		} else {
			s.write(`<ul class="`, classBulletList, `">`)
		}

	case markdown.TagItem:
		s.write("<li>")

	case markdown.TagEmphasis:
		s.write(`<em class="`, classEmphasis, `">`)

	case markdown.TagStrong:
		s.write(`<strong class="`, classStrong, `">`)

	case markdown.TagLink:
		s.write(`<a href="`, html.EscapeString(ev.URL), `" class="`, classLink, `">`)

	case markdown.TagImage:
		s.inImage = true
		s.write(`<img loading="lazy" src="`, html.EscapeString(ev.URL), `" class="`, classImage, `" />`)

	case markdown.TagTable:
		s.alignments = ev.Alignments
		s.write(
			`<div class="`, classTableScroll, `">`,
			`<div class="`, classTableInner, `">`,
			`<table class="`, classTable, `">`,
		)

	case markdown.TagTableHead:
		s.phase = phaseHead
		s.cell = 0
		s.write("<thead><tr>")

	case markdown.TagTableRow:
		s.cell = 0
		s.write("<tr>")

	case markdown.TagTableCell:
		tag, class := "td", classTableData
		if s.phase == phaseHead {
			tag, class = "th", classTableHead
		}
		s.write("<", tag, ` class="`, joinClasses(class, alignmentClass(s.alignments, s.cell)), `">`)

	default:
		return &UnknownEventError{Event: ev}
	}
	return nil
}

func (s *state) end(ev markdown.Event) error {
	switch ev.Tag {
	case markdown.TagParagraph:
		s.write("</p>\n")

	case markdown.TagHeading:
		s.write(fmt.Sprintf("</h%d>", s.heading))

	case markdown.TagBlockQuote:
		s.write("</blockquote>")

	case markdown.TagCodeBlock:
		if s.code != nil {
			out, err := s.engine.highlighter.highlight(s.code.lang, s.code.text.String())
			s.code = nil
			if err != nil {
				return err
			}
			s.write(out)
		}
		s.write("</code></pre>")

	case markdown.TagHTMLBlock:
		return nil

	case markdown.TagList:
		ordered := false
		if n := len(s.lists); n > 0 {
			ordered = s.lists[n-1]
			s.lists = s.lists[:n-1]
		}
		if ordered {
			s.write("</ol>")
		} else {
			s.write("</ul>")
		}

	case markdown.TagItem:
		s.write("</li>")

	case markdown.TagEmphasis:
		s.write("</em>")

	case markdown.TagStrong:
		s.write("</strong>")

	case markdown.TagLink:
		s.write("</a>")

	case markdown.TagImage:
		s.inImage = false
		return nil

	case markdown.TagTable:
		s.write("</tbody></table>", "</div></div>")

	case markdown.TagTableHead:
		s.write("</tr></thead>", `<tbody class="`, classTableBody, `">`)
		s.phase = phaseBody

	case markdown.TagTableRow:
		s.write("</tr>")

	case markdown.TagTableCell:
		if s.phase == phaseHead {
			s.write("</th>")
		} else {
			s.write("</td>")
		}
		s.cell++

	default:
		return &UnknownEventError{Event: ev}
	}
	s.flush()
	return nil
}
