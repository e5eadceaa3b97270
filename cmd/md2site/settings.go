package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/logging/gologger"
	"github.com/alnah/go-md2site/internal/render"
)

// ErrContentDir indicates the content directory is missing or not a directory.
var ErrContentDir = errors.New("content directory not found")

// loadConfig loads the config named by the flag, MD2SITE_CONFIG, or the
// default name, then applies the environment.
func loadConfig(common commonFlags, env *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		name = config.DefaultName
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(env, cfg)
	applyLogFlags(common, cfg)
	return cfg, nil
}

// applyLogFlags maps --verbose and --quiet to log levels.
func applyLogFlags(common commonFlags, cfg *config.Config) {
	switch {
	case common.verbose:
		cfg.Log.Level = "debug"
	case common.quiet:
		cfg.Log.Level = "error"
	}
}

// mergeSiteFlags applies the flags given on the command line and the
// optional content directory argument. CLI wins over every other source.
func mergeSiteFlags(f *siteFlags, changed map[string]bool, args []string, cfg *config.Config) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one content directory, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		cfg.Content.Dir = args[0]
	}

	if changed["output"] {
		cfg.Output.Dir = f.output
	}
	if changed["workers"] {
		cfg.Build.Workers = f.workers
	}
	if changed["timeout"] {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return fmt.Errorf("%w: --timeout %q: %v", ErrUsage, f.timeout, err)
		}
		cfg.OpenGraph.Timeout = d.String()
	}
	if changed["policy"] {
		cfg.Build.Policy = f.policy
	}
	if changed["raw-html"] {
		cfg.Render.RawHTML = f.rawHTML
	}
	if changed["templates"] {
		cfg.Templates.Dir = f.templates
	}
	if changed["highlight"] {
		cfg.Render.Highlight = f.highlight
	}
	if f.noFeed {
		cfg.Feed.Enabled = false
	}
	if f.opengraph {
		cfg.OpenGraph.Enabled = true
	}
	if f.noOpengraph {
		cfg.OpenGraph.Enabled = false
	}
	return nil
}

// resolveSettings loads the config for a build-like command and applies
// environment and flags in precedence order.
func resolveSettings(f *buildFlags, args []string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(f.common, loadEnvConfig())
	if err != nil {
		return nil, err
	}
	if err := mergeSiteFlags(&f.site, f.changed, args, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkContentDir(cfg.Content.Dir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkContentDir verifies dir is an existing directory.
func checkContentDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrContentDir, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrContentDir, dir)
	}
	return nil
}

// toBuildConfig converts a validated config into the library input.
func toBuildConfig(cfg *config.Config) (md2site.BuildConfig, error) {
	id, err := uuid.Parse(cfg.Site.UUID)
	if err != nil {
		return md2site.BuildConfig{}, fmt.Errorf("%w: uuid: %v", md2site.ErrInvalidSite, err)
	}
	rawHTML, err := render.ParseRawHTMLPolicy(cfg.Render.RawHTML)
	if err != nil {
		return md2site.BuildConfig{}, err
	}
	policy, err := md2site.ParsePolicy(cfg.Build.Policy)
	if err != nil {
		return md2site.BuildConfig{}, err
	}

	return md2site.BuildConfig{
		ContentDir: cfg.Content.Dir,
		Site: md2site.Site{
			UUID:     id,
			Lang:     cfg.Site.Lang,
			Title:    cfg.Site.Title,
			Subtitle: cfg.Site.Subtitle,
			Tagline:  cfg.Site.Tagline,
			Host:     cfg.Site.Host,
			BaseURL:  cfg.Site.BaseURL,
			Author:   md2site.Author{Name: cfg.Site.Author.Name, URI: cfg.Site.Author.URI},
			Logo:     cfg.Site.Logo,
		},
		RawHTML:        rawHTML,
		Highlight:      cfg.Render.Highlight,
		HighlightStyle: cfg.Render.HighlightStyle,
		Policy:         policy,
		Workers:        cfg.Build.Workers,
		Feed:           cfg.Feed.Enabled,
		FeedFilename:   cfg.Feed.Filename,
		TemplatesDir:   cfg.Templates.Dir,
	}, nil
}

// newLogger builds the root logger from the log section.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return logging.ModuleLogger(provider, logging.RootModule), nil
}

// newBuilder creates the library builder for cfg.
func newBuilder(cfg *config.Config, logger logging.Logger) (*md2site.Builder, error) {
	bc, err := toBuildConfig(cfg)
	if err != nil {
		return nil, err
	}
	return md2site.NewBuilder(bc, md2site.WithLogger(logger))
}
