package opengraph

import (
	"context"
	"fmt"
	"html/template"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/logging"
)

// Generator renders cards to PNG using a Pool of screenshotters.
type Generator struct {
	tmpl   *template.Template
	pool   *Pool
	logger logging.Logger
}

type generatorOptions struct {
	template string
	pool     *Pool
	logger   logging.Logger
}

// Option configures a Generator.
type Option func(*generatorOptions)

// WithTemplate replaces the embedded card template.
func WithTemplate(source string) Option {
	return func(o *generatorOptions) {
		o.template = source
	}
}

// WithPool sets the screenshotter pool. The Generator closes it.
func WithPool(p *Pool) Option {
	return func(o *generatorOptions) {
		o.pool = p
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *generatorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewGenerator builds a Generator. Without WithPool it uses a single rod
// screenshotter with DefaultTimeout.
func NewGenerator(opts ...Option) (*Generator, error) {
	o := generatorOptions{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&o)
	}

	source := o.template
	if source == "" {
		var err error
		if source, err = assets.LoadTemplate(assets.OpenGraphTemplate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
		}
	}
	tmpl, err := template.New(assets.OpenGraphTemplate).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	pool := o.pool
	if pool == nil {
		pool = NewPool(1, func() Screenshotter { return NewRodScreenshotter(DefaultTimeout) })
	}

	return &Generator{tmpl: tmpl, pool: pool, logger: o.logger}, nil
}

// Render returns the PNG preview of card. It is safe for concurrent use;
// concurrency is bounded by the pool size.
func (g *Generator) Render(ctx context.Context, card Card) ([]byte, error) {
	page, err := card.render(g.tmpl)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempPage(page)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	s, err := g.pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer g.pool.Release(s)

	log := g.logger.WithContext(ctx)
	log.Debug("opengraph.capture", "title", card.Title)
	png, err := s.Capture(ctx, path)
	if err != nil {
		log.Warn("opengraph.capture_failed", "title", card.Title, "error", err)
		return nil, err
	}
	return png, nil
}

// Close releases the browsers.
func (g *Generator) Close() error {
	return g.pool.Close()
}
