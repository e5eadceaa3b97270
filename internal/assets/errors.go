package assets

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidAssetName   = errors.New("invalid template name")
	ErrInvalidTemplateDir = errors.New("invalid template directory")
	// ErrTemplateRead covers unreadable overrides, including symlinks that
	// point outside the template directory.
	ErrTemplateRead = errors.New("failed to read template")
)
