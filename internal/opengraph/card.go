package opengraph

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Width and Height are the preview dimensions in CSS pixels.
const (
	Width  = 1200
	Height = 630
)

// Card is the content of one preview. A card without Title is the home page
// card and shows the tagline instead.
type Card struct {
	Lang     string
	Title    string
	SiteName string
	Tagline  string
	// URL is the displayed address, without scheme.
	URL string
	// Logo is a local path or an http(s) URL.
	Logo string
}

type cardData struct {
	Lang     string
	Title    string
	SiteName string
	Tagline  string
	URL      string
	Logo     template.URL
}

// render executes tmpl for c. Local logos become file:// URLs since the page
// is opened from a temporary directory.
func (c Card) render(tmpl *template.Template) (string, error) {
	logo, err := logoURL(c.Logo)
	if err != nil {
		return "", err
	}
	data := cardData{
		Lang:     c.Lang,
		Title:    c.Title,
		SiteName: c.SiteName,
		Tagline:  c.Tagline,
		URL:      c.URL,
		Logo:     logo,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

func logoURL(logo string) (template.URL, error) {
	if logo == "" || fileutil.IsURL(logo) {
		return template.URL(logo), nil // #nosec G203 -- logo comes from the site config
	}
	abs, err := filepath.Abs(logo)
	if err != nil {
		return "", fmt.Errorf("%w: logo %q: %v", ErrTemplate, logo, err)
	}
	return template.URL("file://" + filepath.ToSlash(abs)), nil // #nosec G203 -- local file from the site config
}
