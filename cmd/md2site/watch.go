package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/watch"
)

// runWatch builds the site, then rebuilds it whenever the content or the
// template directory changes. It returns nil on interrupt.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args)
	if err != nil {
		return err
	}

	cfg, err := resolveSettings(&flags.buildFlags, positional, env)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	w, err := newSiteWatcher(cfg, flags, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	rebuild := func(ctx context.Context) {
		err := buildSite(ctx, cfg, logger, env, flags.common)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case errors.Is(err, ErrDocumentsFailed):
			// already reported per document
		default:
			printError(env, err)
		}
	}

	rebuild(ctx)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", cfg.Content.Dir)
	}

	return w.Run(ctx, func(ctx context.Context, events []watch.Event) error {
		if flags.common.verbose {
			for _, ev := range events {
				fmt.Fprintf(env.Stdout, "%s %s\n", ev.Op, ev.Path)
			}
		}
		rebuild(ctx)
		return nil
	})
}

// newSiteWatcher watches the content directory and the template override
// directory, ignoring the output directory.
func newSiteWatcher(cfg *config.Config, flags *watchFlags, logger logging.Logger) (*watch.Watcher, error) {
	w, err := watch.New(flags.delay,
		watch.WithFilter(watch.IgnoreHidden),
		watch.WithFilter(watch.IgnoreTemp),
		watch.WithFilter(watch.IgnoreDir(cfg.Output.Dir)),
		watch.WithLogger(logging.WithFields(logger, map[string]any{"module": logging.WatchModule})),
	)
	if err != nil {
		return nil, err
	}

	roots := []string{cfg.Content.Dir}
	if cfg.Templates.Dir != "" {
		roots = append(roots, cfg.Templates.Dir)
	}
	for _, root := range roots {
		if err := w.AddRecursive(root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return w, nil
}
