package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// ImageGridTag is the custom tag listing the images of an asset folder,
// e.g. <ImageGrid src="photos" />.
const ImageGridTag = "ImageGrid"

// gridImage is one thumbnail of the grid. Path is relative to the document
// asset folder and uses forward slashes.
type gridImage struct {
	Path string
	Name string
}

type imageGridData struct {
	Images []gridImage
}

// NewImageGrid builds the ImageGrid component from template source.
func NewImageGrid(source string) (Component, error) {
	tmpl, err := template.New(assets.ImageGridTemplate).Parse(source)
	if err != nil {
		return Component{}, fmt.Errorf("parsing image grid template: %w", err)
	}
	return Component{
		Tag:       ImageGridTag,
		Attribute: "src",
		Handle:    imageGrid(tmpl),
	}, nil
}

func defaultImageGrid() Component {
	c, err := NewImageGrid(assets.MustLoadTemplate(assets.ImageGridTemplate))
	if err != nil {
		panic(err)
	}
	return c
}

// imageGrid renders the images found under the folder named by the
// attribute. Documents without an asset folder render nothing.
func imageGrid(tmpl *template.Template) HandlerFunc {
	return func(doc Document, value string) (string, error) {
		if doc.AssetDir == "" {
			return "", nil
		}

		images, err := listImages(doc.AssetDir, value)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, imageGridData{Images: images}); err != nil {
			return "", fmt.Errorf("rendering image grid: %w", err)
		}
		return strings.TrimSpace(buf.String()), nil
	}
}

// listImages walks dir (relative to assetDir) and returns the files whose
// content sniffs as an image, sorted by relative path.
func listImages(assetDir, dir string) ([]gridImage, error) {
	root, err := fileutil.Contain(assetDir, dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image directory: %s is not a directory", root)
	}

	var images []gridImage
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !isImage(path) {
			return nil
		}
		rel, err := filepath.Rel(assetDir, path)
		if err != nil {
			return err
		}
		images = append(images, gridImage{Path: filepath.ToSlash(rel), Name: d.Name()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})
	return images, nil
}

// isImage sniffs the file header. Unreadable files are not images.
func isImage(path string) bool {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mime.String(), "image/")
}
