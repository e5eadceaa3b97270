package markdown

import "fmt"

// Kind classifies an event.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
	KindText
	KindCode
	KindHTML
	KindInlineHTML
	KindSoftBreak
	KindHardBreak
	KindRule
	KindTaskListMarker
)

var kindNames = [...]string{
	KindStart:          "Start",
	KindEnd:            "End",
	KindText:           "Text",
	KindCode:           "Code",
	KindHTML:           "Html",
	KindInlineHTML:     "InlineHtml",
	KindSoftBreak:      "SoftBreak",
	KindHardBreak:      "HardBreak",
	KindRule:           "Rule",
	KindTaskListMarker: "TaskListMarker",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tag names the container opened or closed by a Start or End event.
type Tag int

const (
	TagParagraph Tag = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagHTMLBlock
	TagList
	TagItem
	TagEmphasis
	TagStrong
	TagLink
	TagImage
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagMetadataBlock
	// TagOther marks a goldmark node kind with no mapping. The node kind
	// name is carried in Event.Text.
	TagOther
)

var tagNames = [...]string{
	TagParagraph:     "Paragraph",
	TagHeading:       "Heading",
	TagBlockQuote:    "BlockQuote",
	TagCodeBlock:     "CodeBlock",
	TagHTMLBlock:     "HtmlBlock",
	TagList:          "List",
	TagItem:          "Item",
	TagEmphasis:      "Emphasis",
	TagStrong:        "Strong",
	TagLink:          "Link",
	TagImage:         "Image",
	TagTable:         "Table",
	TagTableHead:     "TableHead",
	TagTableRow:      "TableRow",
	TagTableCell:     "TableCell",
	TagMetadataBlock: "MetadataBlock",
	TagOther:         "Other",
}

func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Alignment is the alignment of a table column.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return "None"
	}
}

// Event is one item of the structural stream. Only the fields relevant to
// the Kind and Tag are set.
type Event struct {
	Kind Kind
	Tag  Tag

	// Level is the heading level (1-6).
	Level int
	// Ordered and Start describe a list.
	Ordered bool
	Start   int
	// Lang is the info-string language of a fenced code block.
	Lang   string
	Fenced bool
	// URL and Title describe a link or image.
	URL   string
	Title string
	// Alignments holds one entry per table column.
	Alignments []Alignment
	// Checked is the state of a task list marker.
	Checked bool
	// Text is the payload of Text, Code, HTML and InlineHTML events.
	Text string
}

// String formats the event for diagnostics, e.g. "Start(Table)" or
// "Text(\"hello\")".
func (e Event) String() string {
	switch e.Kind {
	case KindStart, KindEnd:
		if e.Tag == TagOther && e.Text != "" {
			return fmt.Sprintf("%s(%s)", e.Kind, e.Text)
		}
		return fmt.Sprintf("%s(%s)", e.Kind, e.Tag)
	case KindText, KindCode, KindHTML, KindInlineHTML:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	case KindTaskListMarker:
		return fmt.Sprintf("%s(%t)", e.Kind, e.Checked)
	default:
		return e.Kind.String()
	}
}

// Start returns a Start event for tag.
func Start(tag Tag) Event { return Event{Kind: KindStart, Tag: tag} }

// End returns an End event for tag.
func End(tag Tag) Event { return Event{Kind: KindEnd, Tag: tag} }

// Text returns a Text event.
func Text(s string) Event { return Event{Kind: KindText, Text: s} }

// codeAliases maps info-string languages to highlighter names.
var codeAliases = map[string]string{
	"html": "xml",
}

// CodeLanguage returns the highlighter name of a code block language.
func CodeLanguage(lang string) string {
	if alias, ok := codeAliases[lang]; ok {
		return alias
	}
	return lang
}
