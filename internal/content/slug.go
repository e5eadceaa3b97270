package content

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug derives the URL slug of a content id such as "2024-03-05-my-post".
// The leading year, month and day must match date in its own location;
// the remainder is normalized into the slug.
func Slug(id string, date time.Time) (string, error) {
	if id == "" {
		return "", &SlugError{ID: id, Err: ErrNoYear}
	}
	parts := strings.Split(id, "-")

	steps := []struct {
		want     int
		bits     int
		missing  error
		convert  error
		mismatch error
	}{
		{date.Year(), 16, ErrNoYear, ErrConvertYear, ErrYearMismatch},
		{int(date.Month()), 8, ErrNoMonth, ErrConvertMonth, ErrMonthMismatch},
		{date.Day(), 8, ErrNoDay, ErrConvertDay, ErrDayMismatch},
	}
	for i, step := range steps {
		if i >= len(parts) {
			return "", &SlugError{ID: id, Err: step.missing}
		}
		n, err := strconv.ParseInt(parts[i], 10, step.bits)
		if err != nil {
			return "", &SlugError{ID: id, Err: step.convert, Cause: err}
		}
		if int(n) != step.want {
			return "", &SlugError{ID: id, Err: step.mismatch}
		}
	}

	normalized, err := slugify(strings.Join(parts[len(steps):], "-"))
	if err != nil {
		return "", &SlugError{ID: id, Err: ErrEmptySlug, Cause: err}
	}
	if normalized == "" {
		return "", &SlugError{ID: id, Err: ErrEmptySlug}
	}
	return normalized, nil
}

// letters transliterates letters through the go-slug character map.
// Symbol entries such as "&" => "and" are left out: symbols separate words.
var letters = sync.OnceValues(func() (*strings.Replacer, error) {
	mapping, err := slug.GetCharMap()
	if err != nil {
		return nil, err
	}
	pairs := make([]string, 0, 2*len(mapping))
	for k, v := range mapping {
		if r, _ := utf8.DecodeRuneInString(k); unicode.IsLetter(r) {
			pairs = append(pairs, k, v)
		}
	}
	return strings.NewReplacer(pairs...), nil
})

// slugify lowercases title and joins its runs of letters and digits with
// "-". Letters with an ASCII form are transliterated, accents are dropped,
// and letters without one, such as CJK, are kept.
func slugify(title string) (string, error) {
	translit, err := letters()
	if err != nil {
		return "", err
	}
	plain, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		translit.Replace(norm.NFC.String(title)),
	)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(plain) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String(), nil
}
