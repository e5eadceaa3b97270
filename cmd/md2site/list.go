package main

import (
	"context"
	"encoding/json"
	"fmt"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/dateutil"
)

// listEntry is one line of `md2site list --json`.
type listEntry struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Path     string `json:"path"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// runList prints the ordered items without rendering them.
func runList(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args)
	if err != nil {
		return err
	}
	if _, err := dateutil.Layout(flags.dateFormat); err != nil {
		return fmt.Errorf("%w: --date-format: %w", ErrUsage, err)
	}

	cfg, err := resolveListSettings(flags, positional, env)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	builder, err := newBuilder(cfg, logger)
	if err != nil {
		return err
	}

	items, failures, err := builder.Scan(ctx)
	if err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", f.Path, f.Err, hintFor(f.Err))
	}

	if flags.json {
		err = printListJSON(env, items, flags.dateFormat)
	} else {
		err = printListText(env, items, flags.dateFormat)
	}
	if err != nil {
		return err
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrDocumentsFailed, len(failures), len(failures)+len(items))
	}
	return nil
}

// resolveListSettings loads the config for list. Only the content directory
// argument overrides it.
func resolveListSettings(f *listFlags, args []string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(f.common, loadEnvConfig())
	if err != nil {
		return nil, err
	}
	if err := mergeSiteFlags(&siteFlags{}, nil, args, cfg); err != nil {
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

func printListText(env *Environment, items []*md2site.Item, format string) error {
	for _, item := range items {
		date, err := dateutil.Format(item.Metadata.Date, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s  %s  %s\n", date, item.Slug, item.Metadata.Title)
	}
	return nil
}

func printListJSON(env *Environment, items []*md2site.Item, format string) error {
	entries := make([]listEntry, 0, len(items))
	for _, item := range items {
		date, err := dateutil.Format(item.Metadata.Date, format)
		if err != nil {
			return err
		}
		entries = append(entries, listEntry{
			Slug:     item.Slug,
			Title:    item.Metadata.Title,
			Date:     date,
			Path:     item.Path,
			Previous: item.Previous,
			Next:     item.Next,
		})
	}

	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
