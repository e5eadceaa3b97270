package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-md2site/internal/opengraph"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// NewScreenshotter creates one preview browser; the pool calls it lazily.
	NewScreenshotter func(timeout time.Duration) opengraph.Screenshotter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:              time.Now,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		NewScreenshotter: opengraph.NewRodScreenshotter,
	}
}
