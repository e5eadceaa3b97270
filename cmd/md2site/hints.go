package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/hints"
	"github.com/alnah/go-md2site/internal/opengraph"
	"github.com/alnah/go-md2site/internal/render"
)

// slugErrors are the file name and date disagreements.
var slugErrors = []error{
	content.ErrNoYear, content.ErrConvertYear, content.ErrYearMismatch,
	content.ErrNoMonth, content.ErrConvertMonth, content.ErrMonthMismatch,
	content.ErrNoDay, content.ErrConvertDay, content.ErrDayMismatch,
	content.ErrEmptySlug, content.ErrInvalidFilename, content.ErrInvalidParentDirectory,
}

// hintFor returns the actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, opengraph.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigPaths(config.DefaultName))
	case errors.Is(err, ErrContentDir):
		return hints.ForContentDirectory()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, render.ErrUnknownMarkdownEvent):
		return hints.ForUnknownEvent()
	}

	for _, target := range slugErrors {
		if errors.Is(err, target) {
			return hints.ForSlugDate()
		}
	}

	var mdErr *content.MetadataError
	if errors.As(err, &mdErr) {
		return hints.ForMetadata()
	}
	return ""
}

// userConfigPaths returns the user config directory candidates for name.
func userConfigPaths(name string) []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "md2site", name+".yaml")}
}
