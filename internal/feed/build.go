package feed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/markdown"
)

// Site describes the feed owner.
type Site struct {
	// UUID identifies the feed and namespaces entry ids.
	UUID     uuid.UUID
	Lang     string
	Title    string
	Subtitle string
	// URL is the absolute site URL, ending with "/".
	URL    string
	Author Person
}

// Source is the part of a content item the feed needs.
type Source struct {
	Title    string
	Date     time.Time
	UUID     uuid.UUID
	Slug     string
	Markdown string
}

// DefaultGenerator identifies md2site.
var DefaultGenerator = Generator{
	Name: "md2site",
	URI:  "https://github.com/alnah/go-md2site",
}

// Filename is the feed file name, relative to the site URL.
const Filename = "atom.xml"

const disclaimer = "\n\n[If the formatting of this post looks odd in your feed reader, [visit the original article](%s)]\n"

type options struct {
	converter markdown.HTMLConverter
	generator Generator
	filename  string
	logger    logging.Logger
}

// Option configures Build.
type Option func(*options)

// WithConverter sets the markdown to HTML converter used for entry bodies.
func WithConverter(c markdown.HTMLConverter) Option {
	return func(o *options) {
		if c != nil {
			o.converter = c
		}
	}
}

// WithGenerator overrides the generator element.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithFilename sets the file name of the feed in the self link. An empty
// name keeps Filename.
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Build creates the feed for sources, which are expected newest first.
// The feed is updated at the newest source date; an empty feed has no
// updated element.
func Build(ctx context.Context, site Site, sources []Source, opts ...Option) (*Feed, error) {
	o := options{generator: DefaultGenerator, filename: Filename, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.converter == nil {
		o.converter = markdown.NewStandardRenderer("")
	}

	if err := site.validate(); err != nil {
		return nil, err
	}

	log := o.logger.WithContext(ctx)
	author := site.author()

	f := &Feed{
		Namespace: Namespace,
		Lang:      site.Lang,
		Title:     site.Title,
		ID:        URN(site.UUID),
		Links: []Link{
			{Href: site.URL + o.filename, Rel: "self", Type: "application/atom+xml"},
			{Href: site.URL, Rel: "alternate", Type: "text/html"},
		},
		Author:    author,
		Generator: o.generator,
		Entries:   make([]Entry, 0, len(sources)),
	}
	if site.Subtitle != "" {
		f.Subtitle = &Text{Type: "text", Value: site.Subtitle}
	}

	var newest time.Time
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		link := ArticleURL(site.URL, src.Slug)
		body, err := o.converter.ToHTML(ctx, src.Markdown+fmt.Sprintf(disclaimer, link))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEntryContent, src.Slug, err)
		}
		if body, err = ResolveURLs(body, link); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEntryContent, src.Slug, err)
		}

		date := src.Date.Format(time.RFC3339)
		f.Entries = append(f.Entries, Entry{
			Title:     src.Title,
			ID:        URN(EntryID(site.UUID, src.UUID)),
			Published: date,
			Updated:   date,
			Author:    author,
			Link:      Link{Href: link, Rel: "alternate", Type: "text/html"},
			Content:   Content{Type: "html", Lang: site.Lang, Value: body},
		})
		if src.Date.After(newest) {
			newest = src.Date
		}
		log.Debug("feed.entry", "slug", src.Slug)
	}

	if !newest.IsZero() {
		f.Updated = newest.Format(time.RFC3339)
	}
	log.Info("feed.built", "entries", len(f.Entries))
	return f, nil
}

// EntryID derives an entry id from the site UUID and the item UUID.
func EntryID(site, item uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(site, item[:])
}

// URN formats id as a "urn:uuid:" IRI.
func URN(id uuid.UUID) string {
	return "urn:uuid:" + id.String()
}

// ArticleURL returns the absolute URL of the article with slug.
func ArticleURL(siteURL, slug string) string {
	return siteURL + slug + "/"
}

// WriteTo writes the XML document to w.
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Bytes returns the XML document.
func (f *Feed) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (s Site) validate() error {
	switch {
	case s.UUID == uuid.Nil:
		return fmt.Errorf("%w: missing uuid", ErrInvalidSite)
	case strings.TrimSpace(s.Title) == "":
		return fmt.Errorf("%w: missing title", ErrInvalidSite)
	case !strings.HasSuffix(s.URL, "/"):
		return fmt.Errorf("%w: url %q must end with '/'", ErrInvalidSite, s.URL)
	}
	return nil
}

func (s Site) author() *Person {
	if s.Author.Name == "" {
		return nil
	}
	p := s.Author
	return &p
}
