package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2site/internal/markdown"
)

// Metadata keys recognized in the header block.
const (
	keyTitle = "title"
	keyDate  = "date"
	keyUUID  = "uuid"
)

// Metadata is the typed content of a document header block.
type Metadata struct {
	Title string
	Date  time.Time
	UUID  uuid.UUID
}

// ExtractMetadata reads the first metadata block of an event stream.
// Text outside the block is ignored. Every field must appear exactly once.
func ExtractMetadata(events []markdown.Event) (Metadata, error) {
	var (
		md      Metadata
		inBlock bool
		seen    = make(map[string]bool, 3)
	)

scan:
	for _, e := range events {
		switch {
		case e.Kind == markdown.KindStart && e.Tag == markdown.TagMetadataBlock:
			inBlock = true
		case e.Kind == markdown.KindEnd && e.Tag == markdown.TagMetadataBlock:
			break scan
		case inBlock && e.Kind == markdown.KindText:
			for _, line := range strings.Split(e.Text, "\n") {
				if err := md.parseLine(line, seen); err != nil {
					return Metadata{}, err
				}
			}
		}
	}

	for _, key := range []string{keyTitle, keyDate, keyUUID} {
		if !seen[key] {
			return Metadata{}, &MetadataError{Key: key, Err: ErrMissingField}
		}
	}
	return md, nil
}

// parseLine applies one "key = value" line. Blank lines are skipped.
func (m *Metadata) parseLine(line string, seen map[string]bool) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	rawKey, rawValue, ok := strings.Cut(line, "=")
	if !ok {
		return &MetadataError{Line: line, Err: ErrNoDelimiter}
	}
	key := strings.ToLower(strings.TrimSpace(rawKey))
	value := strings.Trim(strings.TrimSpace(rawValue), `"`)

	switch key {
	case keyTitle:
		m.Title = value
	case keyDate:
		date, err := ParseZoned(value)
		if err != nil {
			return &MetadataError{Key: key, Err: ErrInvalidValue, Cause: err}
		}
		m.Date = date
	case keyUUID:
		id, err := uuid.Parse(value)
		if err != nil {
			return &MetadataError{Key: key, Err: ErrInvalidValue, Cause: err}
		}
		m.UUID = id
	default:
		return &MetadataError{Key: key, Err: ErrUnknownTag}
	}

	if seen[key] {
		return &MetadataError{Key: key, Err: ErrDuplicateField}
	}
	seen[key] = true
	return nil
}
