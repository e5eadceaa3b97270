// Package fileutil holds the small file helpers shared by the build and the
// preview renderer.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapes reports a relative path that leaves its base directory.
var ErrPathEscapes = errors.New("path escapes base directory")

// Contain joins rel onto base and returns the result only if it stays
// inside base.
func Contain(base, rel string) (string, error) {
	if filepath.IsAbs(rel) || strings.ContainsRune(rel, '\x00') {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, rel)
	}
	joined := filepath.Join(base, rel)
	r, err := filepath.Rel(base, joined)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscapes, rel)
	}
	return joined, nil
}

// WriteFile writes a site file to path, creating parent directories as
// needed. Site files are world readable so a web server can serve them.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 -- served directory
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- served file
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteTempPage stores an HTML page in the temp directory so a browser can
// load it by file URL. The returned func removes it.
func WriteTempPage(page string) (string, func(), error) {
	f, err := os.CreateTemp("", "md2site-card-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp page: %w", err)
	}
	path := f.Name()
	remove := func() { _ = os.Remove(path) }

	_, err = f.WriteString(page)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		remove()
		return "", nil, fmt.Errorf("writing temp page: %w", err)
	}
	return path, remove, nil
}

// FileExists reports whether path is an existing non-directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
