package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2site/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2SITE_CONFIG: config file name or path
	ContentDir string        // MD2SITE_CONTENT_DIR: content directory
	OutputDir  string        // MD2SITE_OUTPUT_DIR: output directory
	Workers    int           // MD2SITE_WORKERS: parallel workers
	Timeout    time.Duration // MD2SITE_TIMEOUT: preview screenshot timeout
	LogLevel   string        // MD2SITE_LOG_LEVEL: trace, debug, info, warn, error
	Policy     string        // MD2SITE_POLICY: lenient or strict
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":      true,
	"MD2SITE_CONTENT_DIR": true,
	"MD2SITE_OUTPUT_DIR":  true,
	"MD2SITE_WORKERS":     true,
	"MD2SITE_TIMEOUT":     true,
	"MD2SITE_LOG_LEVEL":   true,
	"MD2SITE_POLICY":      true,
	// read by doctor only
	"MD2SITE_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2SITE_CONFIG"),
		ContentDir: os.Getenv("MD2SITE_CONTENT_DIR"),
		OutputDir:  os.Getenv("MD2SITE_OUTPUT_DIR"),
		LogLevel:   os.Getenv("MD2SITE_LOG_LEVEL"),
		Policy:     os.Getenv("MD2SITE_POLICY"),
	}

	if timeout := os.Getenv("MD2SITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2SITE_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "MD2SITE_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with the variables that are
// set. Flags are applied afterwards, giving:
// CLI flags > env vars > config file > defaults
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
	if env.Timeout > 0 {
		cfg.OpenGraph.Timeout = env.Timeout.String()
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Policy != "" {
		cfg.Build.Policy = env.Policy
	}
}
