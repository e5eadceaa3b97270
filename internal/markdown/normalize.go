package markdown

import (
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// byteOrderMark is stripped from the start of documents.
const byteOrderMark = "\uFEFF"

// Normalize converts \r\n and \r to \n and drops a leading byte order mark,
// so that the metadata block is found on the first line.
func Normalize(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}
