package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/opengraph"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, config and content fixtures
// ---------------------------------------------------------------------------

const testSiteUUID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

var testNow = time.Date(2024, 4, 1, 12, 0, 0, 400_000_000, time.UTC)

// fakeScreenshotter returns a fixed PNG and counts captures.
type fakeScreenshotter struct {
	mu       sync.Mutex
	captures int
	err      error
}

func (f *fakeScreenshotter) Capture(_ context.Context, htmlPath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, err := os.Stat(htmlPath); err != nil {
		return nil, err
	}
	f.captures++
	return []byte("\x89PNG fake"), nil
}

func (f *fakeScreenshotter) Close() error { return nil }

func (f *fakeScreenshotter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captures
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	shot   *fakeScreenshotter
}

func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	shot := &fakeScreenshotter{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return testNow },
			Stdout: stdout,
			Stderr: stderr,
			NewScreenshotter: func(time.Duration) opengraph.Screenshotter {
				return shot
			},
		},
		stdout: stdout,
		stderr: stderr,
		shot:   shot,
	}
}

// writeConfig writes a valid config into a temp dir and returns its path.
func writeConfig(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	cfg := starterConfig()
	cfg.Site.UUID = testSiteUUID
	cfg.Site.Title = "Notes"
	cfg.Site.Tagline = "Things I learned"
	cfg.Log.Level = "error"
	if mutate != nil {
		mutate(cfg)
	}

	data, err := config.Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "md2site.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func doc(title, date, id, body string) string {
	return "+++\n" +
		"title = \"" + title + "\"\n" +
		"date = " + date + "\n" +
		"uuid = \"" + id + "\"\n" +
		"+++\n\n" + body
}

// newContent writes a standalone post and a bundle with one asset.
func newContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024-01-10-first.md"), doc("First", "2024-01-10T09:00:00+01:00[Europe/Paris]",
		"11111111-1111-4111-8111-111111111111", "# First\n\nHello.\n"))
	writeFile(t, filepath.Join(dir, "2024-02-20-second", "index.md"), doc("Second", "2024-02-20T09:00:00Z[UTC]",
		"22222222-2222-4222-8222-222222222222", "![cat](photos/cat.png)\n"))
	writeFile(t, filepath.Join(dir, "2024-02-20-second", "photos", "cat.png"), "\x89PNG")
	writeFile(t, filepath.Join(dir, "2024-02-20-second", ".draft"), "hidden")
	return dir
}

// addBrokenDoc adds a document whose file name disagrees with its date.
func addBrokenDoc(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "2024-03-06-broken.md"), doc("Broken", "2024-03-05T09:00:00Z[UTC]",
		"33333333-3333-4333-8333-333333333333", "Oops.\n"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
