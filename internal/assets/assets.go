package assets

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Template names.
const (
	ImageGridTemplate = "imagegrid"
	OpenGraphTemplate = "opengraph"
)

//go:embed templates/*.html
var builtin embed.FS

func fileName(name string) string {
	return name + ".html"
}

// ValidateName rejects names that are empty, carry an extension or could
// leave the template directory.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// LoadTemplate returns a built-in template.
func LoadTemplate(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile("templates/" + fileName(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// MustLoadTemplate is LoadTemplate for names known to be built in.
func MustLoadTemplate(name string) string {
	source, err := LoadTemplate(name)
	if err != nil {
		panic(err)
	}
	return source
}

// Templates looks templates up in a site's template directory first and in
// the built-in set second.
type Templates struct {
	dir string
}

// NewTemplates returns a lookup rooted at dir. An empty dir means built-in
// templates only.
func NewTemplates(dir string) (*Templates, error) {
	if dir == "" {
		return &Templates{}, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplateDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidTemplateDir, dir)
	}
	return &Templates{dir: dir}, nil
}

// Dir is the override directory, empty when none is set.
func (t *Templates) Dir() string {
	return t.dir
}

// Load returns the override for name when the directory has one and the
// built-in template otherwise.
func (t *Templates) Load(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if t.dir != "" {
		source, err := t.readOverride(name)
		if err == nil {
			return source, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return LoadTemplate(name)
}

// readOverride reads through an os.Root so symlinks cannot reach files
// outside the directory.
func (t *Templates) readOverride(name string) (string, error) {
	root, err := os.OpenRoot(t.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTemplateDir, err)
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(fileName(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRead, fileName(name), err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRead, fileName(name), err)
	}
	return string(data), nil
}
