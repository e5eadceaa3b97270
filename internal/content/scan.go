package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/markdown"
)

// markdownExt is the extension of content files.
const markdownExt = ".md"

// Discover returns the markdown files under root in lexical path order.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == markdownExt {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return paths, nil
}

// Load reads, parses and validates the markdown file at path.
func Load(ctx context.Context, src markdown.EventSource, path string) (*Item, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadContent, err)
	}
	raw := markdown.Normalize(string(data))

	events, err := src.Events(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewItem(path, raw, events)
}
