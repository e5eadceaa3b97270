package md2site

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/feed"
	"github.com/alnah/go-md2site/internal/render"
)

// Item is one validated, ordered document.
type Item = content.Item

// Feed is the Atom document of a build.
type Feed = feed.Feed

// Policy decides what a build does with a failing document.
type Policy int

const (
	// PolicyLenient reports failing documents and builds the rest.
	PolicyLenient Policy = iota
	// PolicyStrict aborts on the first failing document.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// ParsePolicy parses "lenient" or "strict". An empty string is lenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: lenient, strict)", ErrInvalidPolicy, s)
	}
}

// Author is the feed author.
type Author struct {
	Name string
	URI  string
}

// Site describes the blog as a whole.
type Site struct {
	// UUID is the namespace of entry ids in the feed.
	UUID     uuid.UUID
	Lang     string
	Title    string
	Subtitle string
	Tagline  string
	// Host is scheme and authority, without trailing slash.
	Host string
	// BaseURL is the path of the blog, starting and ending with "/".
	BaseURL string
	Author  Author
	Logo    string
}

// URL returns the absolute URL of the blog, with a trailing slash.
func (s Site) URL() string {
	return s.Host + s.BaseURL
}

// ArticleURL returns the absolute URL of the article with slug.
func (s Site) ArticleURL(slug string) string {
	return feed.ArticleURL(s.URL(), slug)
}

// Validate checks the fields a build depends on.
func (s Site) Validate() error {
	if s.UUID == uuid.Nil {
		return fmt.Errorf("%w: uuid is required", ErrInvalidSite)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSite)
	}
	if strings.HasSuffix(s.Host, "/") {
		return fmt.Errorf("%w: host %q has a trailing slash", ErrInvalidSite, s.Host)
	}
	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		return fmt.Errorf("%w: %q", ErrBaseURLTrailingSlash, s.BaseURL)
	}
	return nil
}

func (s Site) feedSite() feed.Site {
	return feed.Site{
		UUID:     s.UUID,
		Lang:     s.Lang,
		Title:    s.Title,
		Subtitle: s.Subtitle,
		URL:      s.URL(),
		Author:   feed.Person{Name: s.Author.Name, URI: s.Author.URI},
	}
}

// BuildConfig configures a Builder.
type BuildConfig struct {
	ContentDir string
	Site       Site

	// RawHTML is the treatment of raw HTML holding no component.
	RawHTML render.RawHTMLPolicy
	// Highlight enables server-side highlighting with HighlightStyle.
	Highlight      bool
	HighlightStyle string

	Policy Policy
	// Workers is the render pool size; 0 picks one from GOMAXPROCS.
	Workers int

	// Feed enables Atom feed synthesis.
	Feed bool
	// FeedFilename is the feed file name used in its self link; empty
	// means atom.xml.
	FeedFilename string

	// TemplatesDir overrides embedded templates by file name.
	TemplatesDir string
}

// Validate checks the configuration.
func (c *BuildConfig) Validate() error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return ErrEmptyContentDir
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if c.Policy != PolicyLenient && c.Policy != PolicyStrict {
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, c.Policy)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

// Result is the outcome of a build.
type Result struct {
	// Items are the documents that built, newest first and linked.
	Items []*Item
	// Bodies maps each item slug to its HTML.
	Bodies map[string]string
	// Feed is nil when feed synthesis is disabled.
	Feed *Feed
	// Failures lists the documents left out, in discovery order.
	Failures []Failure
}
