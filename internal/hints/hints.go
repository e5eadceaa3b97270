// Package hints suggests a next step for the errors users hit most. Every
// hint starts with "\n  hint: " so it can be appended to an error message.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// IsInContainer reports whether /.dockerenv exists. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during
// preview generation.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or skip previews with --no-opengraph")

	return join(hints...)
}

// ForTimeout returns a hint about increasing the screenshot timeout.
func ForTimeout() string {
	return join("raise --timeout or opengraph.timeout for slow machines")
}

// ForConfigNotFound suggests --config and, when the user config directory
// was searched, the file to create there.
func ForConfigNotFound(searchedPaths []string) string {
	hints := []string{"use --config /path/to/file.yaml or run 'md2site init'"}
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/md2site/") {
			hints = append(hints, "or create "+p)
			break
		}
	}
	return join(hints...)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForContentDirectory returns hints for a missing content directory.
func ForContentDirectory() string {
	return join("set content.dir in the config, MD2SITE_CONTENT_DIR, or pass the directory as an argument")
}

// ForSlugDate explains the file name convention checked against the
// metadata date.
func ForSlugDate() string {
	return join("name files YYYY-MM-DD-title.md (or YYYY-MM-DD-title/index.md) with the date of the metadata block, in its own time zone")
}

// ForMetadata shows the expected metadata block.
func ForMetadata() string {
	return join(`start the file with a +++ block: title = "...", date = 2024-03-05T10:00:00+01:00[Europe/Paris], uuid = "..."`)
}

// ForUnknownEvent suggests the markdown constructs that have no HTML rule.
func ForUnknownEvent() string {
	return join("inline HTML inside a paragraph is not supported; move it to its own block")
}

// join renders hints as one indented line appended to an error message.
func join(hints ...string) string {
	if len(hints) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(hints, "; ")
}
