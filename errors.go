package md2site

import "errors"

// Sentinel errors for library operations.
var (
	ErrBuildAborted         = errors.New("build aborted")
	ErrInvalidSite          = errors.New("invalid site")
	ErrBaseURLTrailingSlash = errors.New("base URL must start and end with '/'")
	ErrInvalidPolicy        = errors.New("invalid failure policy")
	ErrInvalidWorkers       = errors.New("invalid worker count")
	ErrEmptyContentDir      = errors.New("content directory cannot be empty")
	ErrTemplateLoad         = errors.New("failed to load template")
)

// Failure records a document left out of a lenient build. Err already names
// the file.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string { return f.Err.Error() }

func (f Failure) Unwrap() error { return f.Err }
