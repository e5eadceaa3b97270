package render

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2site/internal/markdown"
)

// Sentinel errors for rendering.
var (
	ErrUnknownMarkdownEvent = errors.New("unknown markdown event")
	ErrComponent            = errors.New("custom component failed")
	ErrHighlight            = errors.New("code highlighting failed")
	ErrInvalidRawHTMLPolicy = errors.New("invalid raw HTML policy")
)

// UnknownEventError reports an event the engine has no rule for.
type UnknownEventError struct {
	Event markdown.Event
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownMarkdownEvent, e.Event)
}

func (e *UnknownEventError) Unwrap() error { return ErrUnknownMarkdownEvent }

// ComponentError reports a custom component whose handler failed.
type ComponentError struct {
	Tag   string
	Value string
	Err   error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("%v: <%s> %q: %v", ErrComponent, e.Tag, e.Value, e.Err)
}

func (e *ComponentError) Unwrap() []error { return []error{ErrComponent, e.Err} }
