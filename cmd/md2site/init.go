package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// ErrConfigExists indicates init would overwrite a config file.
var ErrConfigExists = errors.New("config file already exists")

// Starter values written by init.
const (
	initFilename = config.DefaultName + ".yaml"
	initTitle    = "My Blog"
	initHost     = "https://example.com"
)

// runInit writes a starter config with a fresh site UUID.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one path, got %d", ErrUsage, len(positional))
	}

	path := initFilename
	if len(positional) == 1 {
		path = positional[0]
	}

	if !flags.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
	}

	data, err := config.Encode(starterConfig())
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}

// starterConfig is the default config with the required site fields set.
func starterConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Site.Title = initTitle
	cfg.Site.Host = initHost
	cfg.Site.UUID = uuid.New().String()
	return cfg
}
