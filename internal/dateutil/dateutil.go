// Package dateutil turns human date formats such as "MMMM D, YYYY" into Go
// time layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength bounds a token format.
const MaxFormatLength = 50

// DefaultDateFormat is used when no format is given.
const DefaultDateFormat = "iso"

// Presets are named formats accepted wherever a token format is.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm Z",
	"rfc3339":  "YYYY-MM-DD[T]HH:mm:ssZZ",
}

// tokens lists longer tokens first: the replacer prefers earlier pairs, so
// MMMM wins over MM. Case matters, MM is the month and mm the minute.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"dddd", "Monday",
	"MMM", "Jan",
	"ddd", "Mon",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
	"ZZ", "-07:00",
	"M", "1",
	"D", "2",
	"Z", "MST",
)

// ToLayout converts a token format into a Go layout. Text in brackets is
// copied as is, so "[Posted] D MMM" keeps the word. Characters that are not
// tokens pass through.
func ToLayout(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(tokens.Replace(rest))
			return b.String(), nil
		}
		b.WriteString(tokens.Replace(rest[:open]))

		end := strings.IndexByte(rest[open:], ']')
		if end < 0 {
			return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
		}
		b.WriteString(rest[open+1 : open+end])
		rest = rest[open+end+1:]
	}
}

// Layout resolves a preset name, in any case, or a token format. A blank
// format selects DefaultDateFormat.
func Layout(format string) (string, error) {
	if strings.TrimSpace(format) == "" {
		format = DefaultDateFormat
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ToLayout(format)
}

// Format renders t in its own location.
func Format(t time.Time, format string) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
