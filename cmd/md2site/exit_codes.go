package main

import (
	"errors"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/opengraph"
	"github.com/alnah/go-md2site/internal/render"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitContent = 5 // One or more documents failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 5)
	if errors.Is(err, md2site.ErrBuildAborted) ||
		errors.Is(err, ErrDocumentsFailed) {
		return ExitContent
	}

	// Browser errors (exit 4)
	if errors.Is(err, opengraph.ErrBrowserConnect) ||
		errors.Is(err, opengraph.ErrPageCreate) ||
		errors.Is(err, opengraph.ErrPageLoad) ||
		errors.Is(err, opengraph.ErrScreenshot) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, md2site.ErrInvalidSite) ||
		errors.Is(err, md2site.ErrBaseURLTrailingSlash) ||
		errors.Is(err, md2site.ErrInvalidPolicy) ||
		errors.Is(err, md2site.ErrInvalidWorkers) ||
		errors.Is(err, md2site.ErrEmptyContentDir) ||
		errors.Is(err, md2site.ErrTemplateLoad) ||
		errors.Is(err, render.ErrInvalidRawHTMLPolicy) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrContentDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
