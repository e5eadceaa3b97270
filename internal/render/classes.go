package render

import "github.com/alnah/go-md2site/internal/markdown"

// Utility classes of the generated markup.
const (
	classParagraph   = "my-1.5 text-justify"
	classImage       = "my-4"
	classCaption     = "p-4 mb-4 border-l-8 border-solid border-gray-500 bg-gray-800"
	classLink        = "underline text-yellow-400 break-all"
	classOrderedList = "ml-4 pl-4 list-decimal"
	classBulletList  = "ml-4 pl-4 list-disc"
	classEmphasis    = "italic"
	classStrong      = "font-bold"
	classInlineCode  = "font-mono bg-white text-black px-1 py-0.5"
	classCodeBlock   = "overflow-x-scroll font-mono bg-white text-black p-4"
	classTableScroll = "overflow-x-auto my-4"
	classTableInner  = "inline-block min-w-full align-middle"
	classTable       = "min-w-full divide-y divide-gray-700"
	classTableBody   = "divide-y divide-gray-800"
	classTableHead   = "px-3 py-3.5 text-left text-sm font-semibold text-white"
	classTableData   = "px-3 py-4 text-sm whitespace-nowrap text-gray-300"
	classBlockQuote  = "p-4 my-4 border-l-8 border-solid border-gray-500 bg-gray-800"
	classCheckbox    = "accent-yellow-600"
)

// headingSizes holds the text size of each heading level.
var headingSizes = [...]string{
	1: "text-4xl",
	2: "text-3xl",
	3: "text-2xl",
	4: "text-xl",
	5: "text-lg",
	6: "text-md",
}

func headingClass(level int) string {
	return "my-6 font-bold " + headingSizes[level]
}

// alignmentClass returns the class of a table column, empty when the column
// has no alignment or the index is past the known columns.
func alignmentClass(alignments []markdown.Alignment, index int) string {
	if index < 0 || index >= len(alignments) {
		return ""
	}
	switch alignments[index] {
	case markdown.AlignLeft:
		return "text-left"
	case markdown.AlignCenter:
		return "text-center"
	case markdown.AlignRight:
		return "text-right"
	default:
		return ""
	}
}

// joinClasses joins non-empty class lists with a space.
func joinClasses(classes ...string) string {
	out := ""
	for _, c := range classes {
		if c == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += c
	}
	return out
}
