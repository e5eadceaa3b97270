package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// metadataDelimiter opens and closes a metadata block.
var metadataDelimiter = []byte("+++")

// KindMetadataBlock is the node kind of a metadata block.
var KindMetadataBlock = ast.NewNodeKind("MetadataBlock")

// MetadataBlock holds the raw lines between the two "+++" delimiters.
type MetadataBlock struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *MetadataBlock) Kind() ast.NodeKind { return KindMetadataBlock }

// IsRaw implements ast.Node.
func (n *MetadataBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MetadataBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Content returns the block lines joined as written.
func (n *MetadataBlock) Content(source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func isMetadataDelimiter(line []byte) bool {
	return bytes.Equal(bytes.TrimSpace(line), metadataDelimiter)
}

// metadataParser opens a metadata block on the first line of a document only.
type metadataParser struct{}

func (p *metadataParser) Trigger() []byte { return []byte{'+'} }

func (p *metadataParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if line, _ := reader.Position(); line != 0 {
		return nil, parser.NoChildren
	}
	line, _ := reader.PeekLine()
	if !isMetadataDelimiter(line) {
		return nil, parser.NoChildren
	}
	return &MetadataBlock{}, parser.NoChildren
}

func (p *metadataParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isMetadataDelimiter(line) {
		reader.Advance(segment.Len())
		return parser.Close
	}
	node.Lines().Append(segment)
	return parser.Continue | parser.NoChildren
}

func (p *metadataParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *metadataParser) CanInterruptParagraph() bool { return false }

func (p *metadataParser) CanAcceptIndentedLine() bool { return false }

// metadataRenderer keeps metadata out of goldmark's HTML output.
type metadataRenderer struct{}

func (r *metadataRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMetadataBlock, func(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
		return ast.WalkSkipChildren, nil
	})
}

type metadataExtension struct{}

// Metadata is a goldmark extension recognizing a "+++" delimited block on
// the first line of a document.
var Metadata goldmark.Extender = &metadataExtension{}

func (e *metadataExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&metadataParser{}, 0),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&metadataRenderer{}, 0),
	))
}
