package content

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/alnah/go-md2site/internal/markdown"
)

// Item is one validated markdown document.
//
// Previous and Next are set once by Link and hold slugs, not pointers:
// Previous is the newer neighbor, Next the older one.
type Item struct {
	Path     string
	Identity Identity
	Raw      string
	Metadata Metadata
	Slug     string
	// AssetDir is the folder holding the item's assets, empty for
	// standalone items.
	AssetDir string
	Previous string
	Next     string
	// Languages lists the fenced code languages used by the document.
	Languages []string
	// Events is the parsed stream the item was validated from.
	Events []markdown.Event
}

// HasAssets reports whether the item owns an asset directory.
func (i *Item) HasAssets() bool { return i.AssetDir != "" }

// NewItem validates a parsed document and builds its item.
func NewItem(path, raw string, events []markdown.Event) (*Item, error) {
	id, err := ResolveIdentity(path)
	if err != nil {
		return nil, err
	}

	md, err := ExtractMetadata(events)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slug, err := Slug(id.Name, md.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	item := &Item{
		Path:      path,
		Identity:  id,
		Raw:       raw,
		Metadata:  md,
		Slug:      slug,
		Languages: CodeLanguages(events),
		Events:    events,
	}
	if id.Kind == WithAssets {
		item.AssetDir = filepath.Dir(path)
	}
	return item, nil
}

// CodeLanguages returns the sorted, distinct languages of fenced code
// blocks in events.
func CodeLanguages(events []markdown.Event) []string {
	set := make(map[string]struct{})
	for _, e := range events {
		if e.Kind != markdown.KindStart || e.Tag != markdown.TagCodeBlock || e.Lang == "" {
			continue
		}
		set[markdown.CodeLanguage(e.Lang)] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	langs := make([]string, 0, len(set))
	for lang := range set {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
