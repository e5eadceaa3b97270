package md2site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/feed"
	"github.com/alnah/go-md2site/internal/markdown"
	"github.com/alnah/go-md2site/internal/render"
)

var testSiteUUID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func doc(title, date, id, body string) string {
	return "+++\n" +
		"title = \"" + title + "\"\n" +
		"date = " + date + "\n" +
		"uuid = \"" + id + "\"\n" +
		"+++\n\n" + body
}

func writeDoc(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func testConfig(dir string) BuildConfig {
	return BuildConfig{
		ContentDir: dir,
		Site: Site{
			UUID:    testSiteUUID,
			Lang:    "en",
			Title:   "Notes",
			Host:    "https://example.com",
			BaseURL: "/blog/",
		},
		Workers: 2,
		Feed:    true,
	}
}

// newContent writes three valid documents, oldest first on disk.
func newContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDoc(t, dir, "2024-01-10-first.md", doc("First", "2024-01-10T09:00:00+01:00[Europe/Paris]",
		"11111111-1111-4111-8111-111111111111", "# First\n\nHello.\n"))
	writeDoc(t, dir, "2024-02-20-second/index.md", doc("Second", "2024-02-20T09:00:00+01:00[Europe/Paris]",
		"22222222-2222-4222-8222-222222222222", "Second *post*.\n"))
	writeDoc(t, dir, "2024-03-05-third.md", doc("Third", "2024-03-05T09:00:00Z[UTC]",
		"33333333-3333-4333-8333-333333333333", "```go\nfunc main() {}\n```\n"))
	return dir
}

func slugs(items []*Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Slug
	}
	return out
}

type fakeConverter struct{}

func (fakeConverter) ToHTML(_ context.Context, md string) (string, error) {
	return "<p>" + strings.SplitN(md, "\n", 2)[0] + "</p>", nil
}

// ---------------------------------------------------------------------------
// TestNewBuilder - Configuration validation
// ---------------------------------------------------------------------------

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*BuildConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*BuildConfig) {}},
		{name: "empty content dir", mutate: func(c *BuildConfig) { c.ContentDir = " " }, wantErr: ErrEmptyContentDir},
		{name: "nil site uuid", mutate: func(c *BuildConfig) { c.Site.UUID = uuid.Nil }, wantErr: ErrInvalidSite},
		{name: "missing title", mutate: func(c *BuildConfig) { c.Site.Title = "" }, wantErr: ErrInvalidSite},
		{name: "host with trailing slash", mutate: func(c *BuildConfig) { c.Site.Host = "https://example.com/" }, wantErr: ErrInvalidSite},
		{name: "base url without trailing slash", mutate: func(c *BuildConfig) { c.Site.BaseURL = "/blog" }, wantErr: ErrBaseURLTrailingSlash},
		{name: "base url without leading slash", mutate: func(c *BuildConfig) { c.Site.BaseURL = "blog/" }, wantErr: ErrBaseURLTrailingSlash},
		{name: "unknown policy", mutate: func(c *BuildConfig) { c.Policy = Policy(7) }, wantErr: ErrInvalidPolicy},
		{name: "negative workers", mutate: func(c *BuildConfig) { c.Workers = -1 }, wantErr: ErrInvalidWorkers},
		{name: "missing templates dir", mutate: func(c *BuildConfig) { c.TemplatesDir = "/does/not/exist" }, wantErr: ErrTemplateLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t.TempDir())
			tt.mutate(&cfg)
			_, err := NewBuilder(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewBuilder() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBuilder() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuild - End to end over a content directory
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(newContent(t)))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, want := strings.Join(slugs(res.Items), ","), "third,second,first"; got != want {
		t.Fatalf("items = %s, want %s", got, want)
	}
	if len(res.Failures) != 0 {
		t.Errorf("Failures = %v, want none", res.Failures)
	}

	nav := []struct{ prev, next string }{{"", "second"}, {"third", "first"}, {"second", ""}}
	for i, item := range res.Items {
		if item.Previous != nav[i].prev || item.Next != nav[i].next {
			t.Errorf("%s: previous/next = %q/%q, want %q/%q", item.Slug, item.Previous, item.Next, nav[i].prev, nav[i].next)
		}
	}

	second := res.Items[1]
	if !second.HasAssets() {
		t.Error("bundle item has no asset directory")
	}
	if !strings.Contains(res.Bodies["first"], "First</h1>") {
		t.Errorf("first body = %q", res.Bodies["first"])
	}
	if !strings.Contains(res.Bodies["second"], "post</em>") {
		t.Errorf("second body = %q", res.Bodies["second"])
	}
	if strings.Contains(res.Bodies["first"], "title =") {
		t.Errorf("metadata leaked into body: %q", res.Bodies["first"])
	}
	if got := res.Items[0].Languages; len(got) != 1 || got[0] != "go" {
		t.Errorf("third languages = %v, want [go]", got)
	}

	if res.Feed == nil {
		t.Fatal("Feed is nil")
	}
	if len(res.Feed.Entries) != 3 {
		t.Fatalf("feed entries = %d, want 3", len(res.Feed.Entries))
	}
	entry := res.Feed.Entries[0]
	if entry.Title != "Third" || entry.Link.Href != "https://example.com/blog/third/" {
		t.Errorf("first entry = %+v", entry)
	}
	wantID := feed.URN(feed.EntryID(testSiteUUID, uuid.MustParse("33333333-3333-4333-8333-333333333333")))
	if entry.ID != wantID {
		t.Errorf("entry id = %s, want %s", entry.ID, wantID)
	}
	if res.Feed.Updated != "2024-03-05T09:00:00Z" {
		t.Errorf("feed updated = %s", res.Feed.Updated)
	}
}

func TestBuild_FeedDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(newContent(t))
	cfg.Feed = false
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if res.Feed != nil {
		t.Error("Feed built while disabled")
	}
}

func TestBuild_EmptyDirectory(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(res.Items) != 0 || len(res.Bodies) != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
	if res.Feed == nil || len(res.Feed.Entries) != 0 || res.Feed.Updated != "" {
		t.Errorf("feed = %+v, want empty feed without updated", res.Feed)
	}
}

func TestBuild_MissingDirectory(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(filepath.Join(t.TempDir(), "absent")))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if _, err := b.Build(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Build() error = %v, want os.ErrNotExist", err)
	}
}

func TestBuild_Canceled(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(newContent(t)))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuild_FeedConverter(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(newContent(t)), WithFeedConverter(fakeConverter{}))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := res.Feed.Entries[0].Content.Value; got != "<p>+++</p>" {
		t.Errorf("entry content = %q, want converter output", got)
	}
}

// ---------------------------------------------------------------------------
// TestBuild_Policy - Lenient and strict failure handling
// ---------------------------------------------------------------------------

// newBrokenContent adds a document with a date mismatch and one with inline
// raw HTML, which the renderer has no rule for.
func newBrokenContent(t *testing.T) (dir, badDate, badBody string) {
	t.Helper()
	dir = newContent(t)
	badDate = writeDoc(t, dir, "2024-01-01-wrong-date.md", doc("Wrong", "2024-01-02T09:00:00Z[UTC]",
		"44444444-4444-4444-8444-444444444444", "Body.\n"))
	badBody = writeDoc(t, dir, "2024-02-01-inline.md", doc("Inline", "2024-02-01T09:00:00Z[UTC]",
		"55555555-5555-4555-8555-555555555555", "Text with <span>inline</span> HTML.\n"))
	return dir, badDate, badBody
}

func TestBuild_Lenient(t *testing.T) {
	t.Parallel()

	dir, badDate, badBody := newBrokenContent(t)
	b, err := NewBuilder(testConfig(dir))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, want := strings.Join(slugs(res.Items), ","), "third,second,first"; got != want {
		t.Errorf("items = %s, want %s", got, want)
	}
	// first links straight to second: the failed item between them is gone
	if res.Items[1].Next != "first" || res.Items[2].Previous != "second" {
		t.Errorf("navigation not relinked: second.next=%q first.previous=%q", res.Items[1].Next, res.Items[2].Previous)
	}
	if len(res.Feed.Entries) != 3 {
		t.Errorf("feed entries = %d, want 3", len(res.Feed.Entries))
	}
	if _, ok := res.Bodies["inline"]; ok {
		t.Error("failed item has a body")
	}

	if len(res.Failures) != 2 {
		t.Fatalf("Failures = %v, want 2", res.Failures)
	}
	if res.Failures[0].Path != badDate || !errors.Is(res.Failures[0], content.ErrDayMismatch) {
		t.Errorf("Failures[0] = %v, want day mismatch for %s", res.Failures[0], badDate)
	}
	if res.Failures[1].Path != badBody || !errors.Is(res.Failures[1], render.ErrUnknownMarkdownEvent) {
		t.Errorf("Failures[1] = %v, want unknown event for %s", res.Failures[1], badBody)
	}
}

func TestBuild_Strict(t *testing.T) {
	t.Parallel()

	dir, _, _ := newBrokenContent(t)
	cfg := testConfig(dir)
	cfg.Policy = PolicyStrict
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	_, err = b.Build(context.Background())
	if !errors.Is(err, ErrBuildAborted) || !errors.Is(err, content.ErrDayMismatch) {
		t.Errorf("Build() error = %v, want ErrBuildAborted wrapping the first failure", err)
	}
}

func TestBuild_DuplicateSlug(t *testing.T) {
	t.Parallel()

	dir := newContent(t)
	dup := writeDoc(t, dir, "2024-01-10-first/index.md", doc("First again", "2024-01-10T10:00:00+01:00[Europe/Paris]",
		"66666666-6666-4666-8666-666666666666", "Again.\n"))

	b, err := NewBuilder(testConfig(dir))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// the bundle sorts before the file, so it owns the slug
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrDuplicateSlug) {
		t.Fatalf("Failures = %v, want one duplicate slug", res.Failures)
	}
	if res.Failures[0].Path != filepath.Join(dir, "2024-01-10-first.md") {
		t.Errorf("failure path = %s, want the file form (bundle %s came first)", res.Failures[0].Path, dup)
	}
}

// ---------------------------------------------------------------------------
// TestBuild_Options - Injected collaborators
// ---------------------------------------------------------------------------

type panickingSource struct{}

func (panickingSource) Events(context.Context, string) ([]markdown.Event, error) {
	panic("boom")
}

func TestBuild_RecoversPanics(t *testing.T) {
	t.Parallel()

	b, err := NewBuilder(testConfig(newContent(t)), WithEventSource(panickingSource{}))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	_, err = b.Build(context.Background())
	if err == nil || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("Build() error = %v, want recovered panic", err)
	}
}

func TestBuild_CustomComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "2024-03-05-note.md", doc("Note", "2024-03-05T09:00:00Z[UTC]",
		"77777777-7777-4777-8777-777777777777", "<Note text=\"hi\" />\n"))

	note := render.Component{
		Tag:       "Note",
		Attribute: "text",
		Handle: func(_ render.Document, v string) (string, error) {
			return "<aside>" + v + "</aside>", nil
		},
	}
	b, err := NewBuilder(testConfig(dir), WithComponents(note))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := res.Bodies["note"]; got != "<aside>hi</aside>" {
		t.Errorf("body = %q, want component output", got)
	}
}

func TestBuild_TemplateOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "2024-03-05-gallery/index.md", doc("Gallery", "2024-03-05T09:00:00Z[UTC]",
		"88888888-8888-4888-8888-888888888888", "<ImageGrid src=\"photos\" />\n"))
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"
	writeDoc(t, dir, "2024-03-05-gallery/photos/a.png", png)

	templates := t.TempDir()
	writeDoc(t, templates, "imagegrid.html", `<ul>{{range .Images}}<li>{{.Path}}</li>{{end}}</ul>`)

	cfg := testConfig(dir)
	cfg.TemplatesDir = templates
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	res, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := res.Bodies["gallery"]; got != "<ul><li>photos/a.png</li></ul>" {
		t.Errorf("body = %q, want override template output", got)
	}
}
