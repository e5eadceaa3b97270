package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HandlerFunc expands a component into HTML. value is the component's
// attribute value.
type HandlerFunc func(doc Document, value string) (string, error)

// Component is a custom tag recognized inside raw HTML chunks.
type Component struct {
	// Tag is matched case-insensitively, as HTML tag names are.
	Tag       string
	Attribute string
	Handle    HandlerFunc
}

// DefaultComponents returns the built-in component table.
func DefaultComponents() []Component {
	return []Component{defaultImageGrid()}
}

// rawHTML expands the first registered component found in chunk. Chunks
// with no component follow the raw HTML policy.
func (s *state) rawHTML(chunk string) error {
	nodes, err := parseFragment(chunk)
	if err == nil {
		for _, c := range s.engine.components {
			el := findElement(nodes, c.Tag)
			if el == nil {
				continue
			}
			value, ok := attribute(el, c.Attribute)
			if !ok {
				continue
			}
			out, err := c.Handle(s.doc, value)
			if err != nil {
				return &ComponentError{Tag: c.Tag, Value: value, Err: err}
			}
			if out != "" {
				s.write(out)
				s.flush()
			}
			return nil
		}
	}

	if s.engine.rawHTML == RawHTMLPassthrough {
		s.write(strings.TrimRight(chunk, "\n"))
		s.flush()
	}
	return nil
}

// parseFragment parses chunk in a body context so no html/head/body wrapper
// is added.
func parseFragment(chunk string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(chunk), context)
}

// findElement returns the first element named tag in document order.
func findElement(nodes []*html.Node, tag string) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			return n
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		if found := findElement(children, tag); found != nil {
			return found
		}
	}
	return nil
}

func attribute(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
