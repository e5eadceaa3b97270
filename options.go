package md2site

import (
	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/markdown"
	"github.com/alnah/go-md2site/internal/render"
)

// Logger is the structured logger used by the builder.
type Logger = logging.Logger

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithEventSource replaces the markdown parser.
func WithEventSource(src markdown.EventSource) Option {
	return func(b *Builder) {
		b.source = src
	}
}

// WithFeedConverter replaces the renderer of feed entry bodies.
func WithFeedConverter(c markdown.HTMLConverter) Option {
	return func(b *Builder) {
		b.converter = c
	}
}

// WithComponents replaces the custom component table.
func WithComponents(components ...render.Component) Option {
	return func(b *Builder) {
		b.components = components
	}
}
