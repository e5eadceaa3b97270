// Package config loads and validates the md2site configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrConfigTooLarge  = errors.New("config file too large")
)

// CurrentVersion is the only config schema version understood.
const CurrentVersion = 1

// DefaultName is the config name looked up when none is given.
const DefaultName = "md2site"

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxSubtitleLength = 200
	MaxNameLength     = 100
	MaxURLLength      = 2048 // Browser limit
	MaxPathLength     = 4096
	MaxWorkers        = 32
)

// Config is the versioned md2site configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	Site      SiteConfig      `yaml:"site" json:"site"`
	Content   ContentConfig   `yaml:"content" json:"content"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Render    RenderConfig    `yaml:"render" json:"render"`
	Build     BuildConfig     `yaml:"build" json:"build"`
	Feed      FeedConfig      `yaml:"feed" json:"feed"`
	OpenGraph OpenGraphConfig `yaml:"opengraph" json:"opengraph"`
	Log       LogConfig       `yaml:"log" json:"log"`
	Templates TemplatesConfig `yaml:"templates" json:"templates"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Tagline  string `yaml:"tagline" json:"tagline"` // Open Graph home card
	Lang     string `yaml:"lang" json:"lang"`       // BCP 47
	Host     string `yaml:"host" json:"host"`       // "https://example.com", no trailing slash
	BaseURL  string `yaml:"baseURL" json:"baseURL"` // "/" or "/blog/"
	UUID     string `yaml:"uuid" json:"uuid"`       // feed namespace
	Author   Author `yaml:"author" json:"author"`
	Logo     string `yaml:"logo" json:"logo"` // path or URL, Open Graph cards
}

// Author is the feed author.
type Author struct {
	Name string `yaml:"name" json:"name"`
	URI  string `yaml:"uri" json:"uri"`
}

// ContentConfig locates the markdown sources.
type ContentConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// OutputConfig locates the generated files.
type OutputConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// RenderConfig tunes the HTML renderer.
type RenderConfig struct {
	RawHTML        string `yaml:"rawHTML" json:"rawHTML"` // "passthrough" or "drop"
	Highlight      bool   `yaml:"highlight" json:"highlight"`
	HighlightStyle string `yaml:"highlightStyle" json:"highlightStyle"`
}

// BuildConfig tunes the batch.
type BuildConfig struct {
	Policy  string `yaml:"policy" json:"policy"`   // "lenient" or "strict"
	Workers int    `yaml:"workers" json:"workers"` // 0 = auto
}

// FeedConfig controls the Atom feed.
type FeedConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Filename string `yaml:"filename" json:"filename"`
}

// OpenGraphConfig controls preview image generation.
type OpenGraphConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Timeout string `yaml:"timeout" json:"timeout"` // Go duration
}

// LogConfig selects the logger.
type LogConfig struct {
	Level     string `yaml:"level" json:"level"`
	Format    string `yaml:"format" json:"format"`
	AddSource bool   `yaml:"addSource" json:"addSource"`
}

// TemplatesConfig points at template overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir" json:"dir"` // Empty = embedded templates
}

// DefaultConfig returns the configuration used for fields a file omits.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Lang:    "en",
			BaseURL: "/",
		},
		Content:   ContentConfig{Dir: "content"},
		Output:    OutputConfig{Dir: "dist"},
		Render:    RenderConfig{RawHTML: "passthrough", HighlightStyle: "github"},
		Build:     BuildConfig{Policy: "lenient"},
		Feed:      FeedConfig{Enabled: true, Filename: "atom.xml"},
		OpenGraph: OpenGraphConfig{Enabled: false, Timeout: "30s"},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// SiteURL returns the absolute site URL, host followed by base URL.
func (c *Config) SiteURL() string {
	return c.Site.Host + c.Site.BaseURL
}

// OpenGraphTimeout returns the parsed screenshot timeout, zero when unset or
// malformed. Validate rejects malformed values.
func (c *Config) OpenGraphTimeout() time.Duration {
	d, err := time.ParseDuration(c.OpenGraph.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks every section. Called automatically by LoadConfig, and
// again by callers that adjust a loaded Config (flags, environment).
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Version, validation.Required, validation.In(CurrentVersion).
			Error(fmt.Sprintf("must be %d", CurrentVersion))),
		validation.Field(&c.Site),
		validation.Field(&c.Content),
		validation.Field(&c.Output),
		validation.Field(&c.Render),
		validation.Field(&c.Build),
		validation.Field(&c.Feed),
		validation.Field(&c.OpenGraph),
		validation.Field(&c.Log),
		validation.Field(&c.Templates),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (s SiteConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&s.Subtitle, validation.RuneLength(0, MaxSubtitleLength)),
		validation.Field(&s.Tagline, validation.RuneLength(0, MaxSubtitleLength)),
		validation.Field(&s.Lang, validation.Required, validation.By(languageTag)),
		validation.Field(&s.Host, validation.Required, validation.Length(1, MaxURLLength), validation.By(siteHost)),
		validation.Field(&s.BaseURL, validation.Required, validation.Length(1, MaxURLLength), validation.By(basePath)),
		validation.Field(&s.UUID, validation.Required, validation.By(uuidString)),
		validation.Field(&s.Author),
		validation.Field(&s.Logo, validation.Length(0, MaxURLLength)),
	)
}

// Validate implements validation.Validatable.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&a.URI, validation.Length(0, MaxURLLength), is.URL),
	)
}

// Validate implements validation.Validatable.
func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required, validation.Length(1, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Dir, validation.Required, validation.Length(1, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RawHTML, validation.In("passthrough", "drop")),
		validation.Field(&r.HighlightStyle, validation.Length(0, MaxNameLength)),
	)
}

// Validate implements validation.Validatable.
func (b BuildConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Policy, validation.In("lenient", "strict")),
		validation.Field(&b.Workers, validation.Min(0), validation.Max(MaxWorkers)),
	)
}

// Validate implements validation.Validatable.
func (f FeedConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Filename,
			validation.Required.When(f.Enabled),
			validation.Length(0, MaxNameLength),
			validation.By(plainFilename),
		),
	)
}

// Validate implements validation.Validatable.
func (o OpenGraphConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Timeout, validation.Required.When(o.Enabled), validation.By(positiveDuration)),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&l.Format, validation.In("json", "console", "pretty")),
	)
}

// Validate implements validation.Validatable.
func (t TemplatesConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Dir, validation.Length(0, MaxPathLength)),
	)
}

func languageTag(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := language.Parse(s); err != nil {
		return validation.NewError("md2site_config_lang", "must be a BCP 47 language tag")
	}
	return nil
}

func siteHost(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("md2site_config_host", "must be an absolute http(s) URL")
	}
	if strings.HasSuffix(s, "/") || (u.Path != "" && u.Path != "/") {
		return validation.NewError("md2site_config_host_path", "must not have a path; use baseURL")
	}
	return nil
}

func basePath(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return validation.NewError("md2site_config_base_url", "must start and end with '/'")
	}
	return nil
}

func uuidString(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return validation.NewError("md2site_config_uuid", "must be a non-nil UUID")
	}
	return nil
}

func plainFilename(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return validation.NewError("md2site_config_filename", "must be a file name without directories")
	}
	return nil
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return validation.NewError("md2site_config_duration", "must be a positive duration such as 30s")
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields the file omits keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/md2site/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2site", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
