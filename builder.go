package md2site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/feed"
	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/markdown"
	"github.com/alnah/go-md2site/internal/render"
)

// ErrDuplicateSlug indicates two documents resolve to the same slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Builder runs the content pipeline. Create with NewBuilder; a Builder has
// no mutable state and can run several builds.
type Builder struct {
	cfg        BuildConfig
	source     markdown.EventSource
	converter  markdown.HTMLConverter
	components []render.Component
	engine     *render.Engine
	logger     Logger
	workers    int
}

// NewBuilder validates cfg and creates a Builder.
// Returns error if the configuration is invalid or a template override
// cannot be loaded.
func NewBuilder(cfg BuildConfig, opts ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:    cfg,
		source: markdown.NewParser(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.converter == nil {
		b.converter = markdown.NewStandardRenderer(cfg.HighlightStyle)
	}
	if b.components == nil {
		components, err := loadComponents(cfg.TemplatesDir)
		if err != nil {
			return nil, err
		}
		b.components = components
	}

	engineOpts := []render.Option{
		render.WithRawHTMLPolicy(cfg.RawHTML),
		render.WithComponents(b.components...),
	}
	if cfg.Highlight {
		engineOpts = append(engineOpts, render.WithHighlighting(cfg.HighlightStyle))
	}
	b.engine = render.New(engineOpts...)
	b.workers = ResolvePoolSize(cfg.Workers)

	return b, nil
}

// loadComponents builds the component table, reading template overrides
// from dir when set.
func loadComponents(dir string) ([]render.Component, error) {
	if dir == "" {
		return render.DefaultComponents(), nil
	}

	tmpls, err := assets.NewTemplates(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	source, err := tmpls.Load(assets.ImageGridTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, assets.ImageGridTemplate, err)
	}
	grid, err := render.NewImageGrid(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, assets.ImageGridTemplate, err)
	}
	return []render.Component{grid}, nil
}

// Config returns the configuration of the builder.
func (b *Builder) Config() BuildConfig {
	return b.cfg
}

// Build scans, renders and, when enabled, synthesizes the feed.
// Navigation and the feed only cover the items that rendered.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	log := b.logger.WithContext(ctx)

	items, failures, err := b.Scan(ctx)
	if err != nil {
		return nil, err
	}

	bodies, renderFailures, err := b.Render(ctx, items)
	if err != nil {
		return nil, err
	}
	if len(renderFailures) > 0 {
		items = rendered(items, bodies)
		content.Link(items)
		failures = append(failures, renderFailures...)
	}

	result = &Result{Items: items, Bodies: bodies, Failures: failures}

	if b.cfg.Feed {
		result.Feed, err = b.Feed(ctx, items)
		if err != nil {
			return nil, err
		}
	}

	log.Info("build.done",
		"items", len(items),
		"failures", len(failures),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return result, nil
}

// Scan loads every document of the content directory and returns the valid
// ones ordered newest first and linked. Failures come in discovery order.
func (b *Builder) Scan(ctx context.Context) ([]*Item, []Failure, error) {
	log := logging.WithFields(b.logger, map[string]any{"module": logging.ContentModule}).WithContext(ctx)

	paths, err := content.Discover(b.cfg.ContentDir)
	if err != nil {
		return nil, nil, err
	}

	var (
		items    = make([]*Item, 0, len(paths))
		failures []Failure
		owners   = make(map[string]string, len(paths))
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		item, err := content.Load(ctx, b.source, path)
		if err == nil {
			if prev, ok := owners[item.Slug]; ok {
				err = fmt.Errorf("%s: %w %q (also used by %s)", path, ErrDuplicateSlug, item.Slug, prev)
			}
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			if err := b.fail(&failures, log, path, err); err != nil {
				return nil, nil, err
			}
			continue
		}

		owners[item.Slug] = path
		items = append(items, item)
		log.Debug("content.loaded", "path", path, "slug", item.Slug)
	}

	content.Order(items)
	log.Info("content.scanned", "items", len(items), "failures", len(failures))
	return items, failures, nil
}

// Render renders items on the worker pool and returns their bodies by slug.
// Items that fail are missing from the map and listed in the failures, in
// item order.
func (b *Builder) Render(ctx context.Context, items []*Item) (map[string]string, []Failure, error) {
	log := logging.WithFields(b.logger, map[string]any{"module": logging.RenderModule}).WithContext(ctx)

	html := make([]string, len(items))
	errs := runPool(ctx, len(items), b.workers, func(_ context.Context, i int) error {
		item := items[i]
		out, err := b.engine.RenderHTML(item.Events, render.Document{AssetDir: item.AssetDir})
		if err != nil {
			return fmt.Errorf("%s: %w", item.Path, err)
		}
		html[i] = out
		log.Debug("render.item", "slug", item.Slug, "bytes", len(out))
		return nil
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	bodies := make(map[string]string, len(items))
	var failures []Failure
	for i, item := range items {
		if errs[i] != nil {
			if err := b.fail(&failures, log, item.Path, errs[i]); err != nil {
				return nil, nil, err
			}
			continue
		}
		bodies[item.Slug] = html[i]
	}
	return bodies, failures, nil
}

// Feed synthesizes the Atom feed of items, which must be ordered.
func (b *Builder) Feed(ctx context.Context, items []*Item) (*Feed, error) {
	sources := make([]feed.Source, len(items))
	for i, item := range items {
		sources[i] = feed.Source{
			Title:    item.Metadata.Title,
			Date:     item.Metadata.Date,
			UUID:     item.Metadata.UUID,
			Slug:     item.Slug,
			Markdown: item.Raw,
		}
	}

	return feed.Build(ctx, b.cfg.Site.feedSite(), sources,
		feed.WithConverter(b.converter),
		feed.WithFilename(b.cfg.FeedFilename),
		feed.WithLogger(logging.WithFields(b.logger, map[string]any{"module": logging.FeedModule})),
	)
}

// fail applies the failure policy to a document error.
func (b *Builder) fail(failures *[]Failure, log Logger, path string, err error) error {
	if b.cfg.Policy == PolicyStrict {
		return fmt.Errorf("%w: %w", ErrBuildAborted, err)
	}
	log.Warn("build.skipped", "path", path, "error", err.Error())
	*failures = append(*failures, Failure{Path: path, Err: err})
	return nil
}

// rendered keeps the items that have a body.
func rendered(items []*Item, bodies map[string]string) []*Item {
	kept := items[:0:0]
	for _, item := range items {
		if _, ok := bodies[item.Slug]; ok {
			kept = append(kept, item)
		}
	}
	return kept
}
