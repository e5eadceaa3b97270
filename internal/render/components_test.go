package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/markdown"
)

func htmlBlock(chunk string) []markdown.Event {
	return []markdown.Event{
		start(markdown.TagHTMLBlock),
		{Kind: markdown.KindHTML, Text: chunk},
		end(markdown.TagHTMLBlock),
	}
}

func echo(name string) HandlerFunc {
	return func(_ Document, value string) (string, error) {
		return "<" + name + ":" + value + ">", nil
	}
}

// ---------------------------------------------------------------------------
// TestRawHTML_Components - Component table resolution
// ---------------------------------------------------------------------------

func TestRawHTML_Components(t *testing.T) {
	t.Parallel()

	foo := Component{Tag: "Foo", Attribute: "x", Handle: echo("foo")}
	bar := Component{Tag: "Bar", Attribute: "x", Handle: echo("bar")}

	tests := []struct {
		name       string
		components []Component
		chunk      string
		want       []string
	}{
		{
			name:       "first registered component wins over document order",
			components: []Component{foo, bar},
			chunk:      `<Bar x="2"></Bar><Foo x="1"></Foo>` + "\n",
			want:       []string{"<foo:1>"},
		},
		{
			name:       "table order decides",
			components: []Component{bar, foo},
			chunk:      `<Bar x="2"></Bar><Foo x="1"></Foo>` + "\n",
			want:       []string{"<bar:2>"},
		},
		{
			name:       "nested element is found",
			components: []Component{foo},
			chunk:      `<div><section><foo X="deep"></foo></section></div>`,
			want:       []string{"<foo:deep>"},
		},
		{
			name:       "missing attribute tries the next component",
			components: []Component{foo, bar},
			chunk:      `<Foo y="1"></Foo><Bar x="2"></Bar>`,
			want:       []string{"<bar:2>"},
		},
		{
			name:       "unmatched chunk passes through",
			components: []Component{foo},
			chunk:      "<div class=\"note\">raw</div>\n",
			want:       []string{`<div class="note">raw</div>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := New(WithComponents(tt.components...))
			got, err := engine.Render(htmlBlock(tt.chunk), Document{})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			equalFragments(t, got, tt.want)
		})
	}
}

func TestRawHTML_DropPolicy(t *testing.T) {
	t.Parallel()

	engine := New(WithRawHTMLPolicy(RawHTMLDrop))
	got, err := engine.Render(htmlBlock("<div>raw</div>\n"), Document{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Render() = %q, want no fragments", got)
	}
}

func TestRawHTML_HandlerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := Component{
		Tag:       "Foo",
		Attribute: "x",
		Handle: func(Document, string) (string, error) {
			return "", boom
		},
	}

	_, err := New(WithComponents(failing)).Render(htmlBlock(`<Foo x="v" />`), Document{})
	if !errors.Is(err, ErrComponent) || !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want ErrComponent wrapping handler error", err)
	}
	var compErr *ComponentError
	if !errors.As(err, &compErr) || compErr.Tag != "Foo" || compErr.Value != "v" {
		t.Errorf("error = %#v, want *ComponentError{Tag: Foo, Value: v}", err)
	}
}

// ---------------------------------------------------------------------------
// TestImageGrid - Default component
// ---------------------------------------------------------------------------

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
)

func writeAsset(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newAssetDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "2024-03-05-gallery")
	writeAsset(t, filepath.Join(dir, "photos", "b.png"), pngHeader)
	writeAsset(t, filepath.Join(dir, "photos", "a.gif"), gifHeader)
	writeAsset(t, filepath.Join(dir, "photos", "sub", "c.png"), pngHeader)
	writeAsset(t, filepath.Join(dir, "photos", "notes.txt"), []byte("hello"))
	writeAsset(t, filepath.Join(dir, "photos", "fake.png"), []byte("not an image at all"))
	writeAsset(t, filepath.Join(dir, "index.md"), []byte("+++\n+++\n"))
	return dir
}

func TestImageGrid(t *testing.T) {
	t.Parallel()

	t.Run("lists sniffed images sorted by path", func(t *testing.T) {
		t.Parallel()

		dir := newAssetDir(t)
		got, err := New().Render(htmlBlock(`<ImageGrid src="photos" />`+"\n"), Document{AssetDir: dir})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		thumb := func(path, name string) string {
			return `<a class="w-full h-full border-2 border-dashed border-yellow-600" href="` + path + `">` +
				`<img loading="lazy" class="h-auto max-w-32" src="` + path + `" alt="` + name + `" /></a>`
		}
		want := `<div class="my-4 grid grid-cols-2 gap-5">` +
			thumb("photos/a.gif", "a.gif") +
			thumb("photos/b.png", "b.png") +
			thumb("photos/sub/c.png", "c.png") +
			`</div>`
		equalFragments(t, got, []string{want})
	})

	t.Run("document without assets renders nothing", func(t *testing.T) {
		t.Parallel()

		got, err := New().Render(htmlBlock(`<ImageGrid src="photos" />`), Document{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Render() = %q, want no fragments", got)
		}
	})

	t.Run("missing directory fails the document", func(t *testing.T) {
		t.Parallel()

		dir := newAssetDir(t)
		_, err := New().Render(htmlBlock(`<ImageGrid src="absent" />`), Document{AssetDir: dir})
		if !errors.Is(err, ErrComponent) || !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Render() error = %v, want ErrComponent wrapping os.ErrNotExist", err)
		}
	})

	t.Run("escaping the asset folder fails", func(t *testing.T) {
		t.Parallel()

		dir := newAssetDir(t)
		_, err := New().Render(htmlBlock(`<ImageGrid src="../.." />`), Document{AssetDir: dir})
		if !errors.Is(err, ErrComponent) || !errors.Is(err, fileutil.ErrPathEscapes) {
			t.Errorf("Render() error = %v, want ErrComponent wrapping ErrPathEscapes", err)
		}
	})

	t.Run("empty folder renders an empty grid", func(t *testing.T) {
		t.Parallel()

		dir := newAssetDir(t)
		if err := os.Mkdir(filepath.Join(dir, "empty"), 0o750); err != nil {
			t.Fatal(err)
		}
		got, err := New().RenderHTML(htmlBlock(`<ImageGrid src="empty" />`), Document{AssetDir: dir})
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}
		if got != `<div class="my-4 grid grid-cols-2 gap-5"></div>` {
			t.Errorf("RenderHTML() = %q", got)
		}
	})

	t.Run("from markdown source", func(t *testing.T) {
		t.Parallel()

		dir := newAssetDir(t)
		events := markdown.NewParser().Parse([]byte("Intro\n\n<ImageGrid src=\"photos\" />\n"))
		got, err := New().RenderHTML(events, Document{AssetDir: dir})
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}
		if !strings.Contains(got, `src="photos/b.png"`) {
			t.Errorf("grid missing from output:\n%s", got)
		}
		if strings.Contains(got, "ImageGrid") {
			t.Errorf("custom tag leaked into output:\n%s", got)
		}
	})
}

func TestNewImageGrid_CustomTemplate(t *testing.T) {
	t.Parallel()

	grid, err := NewImageGrid(`<ul>{{range .Images}}<li>{{.Name}}</li>{{end}}</ul>`)
	if err != nil {
		t.Fatalf("NewImageGrid() error = %v", err)
	}

	dir := newAssetDir(t)
	got, err := New(WithComponents(grid)).RenderHTML(htmlBlock(`<imagegrid src="photos"/>`), Document{AssetDir: dir})
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if want := "<ul><li>a.gif</li><li>b.png</li><li>c.png</li></ul>"; got != want {
		t.Errorf("RenderHTML() = %q, want %q", got, want)
	}

	if _, err := NewImageGrid("{{range}}"); err == nil {
		t.Error("NewImageGrid() accepted a broken template")
	}
}
