package content

import (
	"errors"
	"fmt"
)

// Identity errors.
var (
	ErrInvalidFilename        = errors.New("invalid filename")
	ErrInvalidParentDirectory = errors.New("invalid parent directory")
)

// Metadata errors.
var (
	ErrNoDelimiter     = errors.New("metadata line has no '=' delimiter")
	ErrUnknownTag      = errors.New("unknown metadata tag")
	ErrInvalidValue    = errors.New("invalid metadata value")
	ErrMissingField    = errors.New("missing metadata field")
	ErrDuplicateField  = errors.New("duplicate metadata field")
	ErrInvalidDateTime = errors.New("invalid zoned date-time")
)

// Slug errors. Each date component can be missing, unparseable, or
// different from the metadata date.
var (
	ErrNoYear        = errors.New("could not find year in content id")
	ErrConvertYear   = errors.New("could not parse year in content id")
	ErrYearMismatch  = errors.New("year in content id mismatches metadata date")
	ErrNoMonth       = errors.New("could not find month in content id")
	ErrConvertMonth  = errors.New("could not parse month in content id")
	ErrMonthMismatch = errors.New("month in content id mismatches metadata date")
	ErrNoDay         = errors.New("could not find day in content id")
	ErrConvertDay    = errors.New("could not parse day in content id")
	ErrDayMismatch   = errors.New("day in content id mismatches metadata date")
	ErrEmptySlug     = errors.New("content id has no title after the date")
)

// ErrReadContent indicates a content file could not be read.
var ErrReadContent = errors.New("failed to read content file")

// IdentityError reports a path that does not yield an identity.
type IdentityError struct {
	Path string
	Err  error
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// MetadataError reports a malformed metadata block. Cause holds the
// underlying parse error of an invalid value.
type MetadataError struct {
	Key   string
	Line  string
	Err   error
	Cause error
}

func (e *MetadataError) Error() string {
	var msg string
	switch {
	case e.Key != "":
		msg = fmt.Sprintf("%v %q", e.Err, e.Key)
	case e.Line != "":
		msg = fmt.Sprintf("%v: %q", e.Err, e.Line)
	default:
		msg = e.Err.Error()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MetadataError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// SlugError reports a content id that cannot produce a slug.
type SlugError struct {
	ID    string
	Err   error
	Cause error
}

func (e *SlugError) Error() string {
	msg := fmt.Sprintf("content id %q: %v", e.ID, e.Err)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SlugError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
