package opengraph

import (
	"context"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-md2site/internal/assets"
)

// fakeScreenshotter records the pages it was asked to capture.
type fakeScreenshotter struct {
	mu     sync.Mutex
	pages  []string
	err    error
	closed bool
}

func (f *fakeScreenshotter) Capture(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, string(data))
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG"), nil
}

func (f *fakeScreenshotter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func newFakeGenerator(t *testing.T, fake *fakeScreenshotter) *Generator {
	t.Helper()
	g, err := NewGenerator(WithPool(NewPool(1, func() Screenshotter { return fake })))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

// ---------------------------------------------------------------------------
// TestCard - Template data
// ---------------------------------------------------------------------------

func TestCard_Render(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("og").Parse(assets.MustLoadTemplate(assets.OpenGraphTemplate)))

	t.Run("content card", func(t *testing.T) {
		t.Parallel()

		page, err := Card{
			Lang:     "en",
			Title:    "Tips & <tricks>",
			SiteName: "Notes",
			URL:      "example.com/tips/",
			Logo:     "https://example.com/logo.png",
		}.render(tmpl)
		if err != nil {
			t.Fatalf("render() error = %v", err)
		}
		for _, want := range []string{
			`<html lang="en">`,
			`id="opengraph"`,
			"Tips &amp; &lt;tricks&gt;",
			`src="https://example.com/logo.png"`,
			"example.com/tips/",
		} {
			if !strings.Contains(page, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("home card shows tagline", func(t *testing.T) {
		t.Parallel()

		page, err := Card{SiteName: "Notes", Tagline: "Short notes"}.render(tmpl)
		if err != nil {
			t.Fatalf("render() error = %v", err)
		}
		if !strings.Contains(page, "Short notes") {
			t.Errorf("home card missing tagline:\n%s", page)
		}
		if strings.Contains(page, "<img") {
			t.Errorf("card without logo has an image:\n%s", page)
		}
	})

	t.Run("local logo becomes a file URL", func(t *testing.T) {
		t.Parallel()

		logo := filepath.Join(t.TempDir(), "logo.png")
		page, err := Card{Title: "T", Logo: logo}.render(tmpl)
		if err != nil {
			t.Fatalf("render() error = %v", err)
		}
		if !strings.Contains(page, `src="file://`+filepath.ToSlash(logo)+`"`) {
			t.Errorf("page has no file URL for %s:\n%s", logo, page)
		}
	})
}

// ---------------------------------------------------------------------------
// TestGenerator - Rendering through the pool
// ---------------------------------------------------------------------------

func TestGenerator_Render(t *testing.T) {
	t.Parallel()

	fake := &fakeScreenshotter{}
	g := newFakeGenerator(t, fake)

	png, err := g.Render(context.Background(), Card{Title: "Hello", SiteName: "Notes"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(png) != "\x89PNG" {
		t.Errorf("Render() = %q", png)
	}
	if len(fake.pages) != 1 || !strings.Contains(fake.pages[0], "Hello") {
		t.Errorf("captured pages = %v", fake.pages)
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not close the screenshotter")
	}
	if _, err := g.Render(context.Background(), Card{Title: "late"}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Render() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Parallel()

	t.Run("capture failure", func(t *testing.T) {
		t.Parallel()

		g := newFakeGenerator(t, &fakeScreenshotter{err: ErrScreenshot})
		defer g.Close()
		if _, err := g.Render(context.Background(), Card{Title: "x"}); !errors.Is(err, ErrScreenshot) {
			t.Errorf("Render() error = %v, want ErrScreenshot", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		g := newFakeGenerator(t, &fakeScreenshotter{})
		defer g.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := g.Render(ctx, Card{Title: "x"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Render() error = %v, want context.Canceled", err)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()

		if _, err := NewGenerator(WithTemplate("{{.Title")); !errors.Is(err, ErrTemplate) {
			t.Errorf("NewGenerator() error = %v, want ErrTemplate", err)
		}
	})

	t.Run("template execution failure", func(t *testing.T) {
		t.Parallel()

		g, err := NewGenerator(
			WithTemplate("{{.Missing}}"),
			WithPool(NewPool(1, func() Screenshotter { return &fakeScreenshotter{} })),
		)
		if err != nil {
			t.Fatalf("NewGenerator() error = %v", err)
		}
		defer g.Close()
		if _, err := g.Render(context.Background(), Card{}); !errors.Is(err, ErrTemplate) {
			t.Errorf("Render() error = %v, want ErrTemplate", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPool - Lazy creation and reuse
// ---------------------------------------------------------------------------

func TestPool(t *testing.T) {
	t.Parallel()

	var created int
	var mu sync.Mutex
	p := NewPool(2, func() Screenshotter {
		mu.Lock()
		created++
		mu.Unlock()
		return &fakeScreenshotter{}
	})

	if p.Size() != 2 {
		t.Errorf("Size() = %d, want 2", p.Size())
	}

	a, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	p.Release(a)
	b, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("released screenshotter was not reused")
	}
	c, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if created != 2 || c == b {
		t.Errorf("created = %d, want a second instance", created)
	}

	done := make(chan Screenshotter)
	go func() {
		s, _ := p.Acquire()
		done <- s
	}()
	p.Release(c)
	if got := <-done; got != c {
		t.Error("blocked Acquire did not receive the released screenshotter")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	p.Release(b)
	if _, err := p.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestPool_ClosedWithIdleScreenshotters(t *testing.T) {
	t.Parallel()

	fake := &fakeScreenshotter{}
	p := NewPool(2, func() Screenshotter { return fake })

	s, err := p.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	p.Release(s)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := p.Acquire()
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() = %v, %v, want ErrPoolClosed", got, err)
	}
}

func TestNewPool_MinimumSize(t *testing.T) {
	t.Parallel()

	if got := NewPool(0, nil).Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}
