package opengraph

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2site/internal/process"
)

// Screenshotter captures the preview element of a local HTML file.
type Screenshotter interface {
	Capture(ctx context.Context, htmlPath string) ([]byte, error)
	Close() error
}

// Selector is the element captured from the page.
const Selector = "#opengraph"

// DefaultTimeout bounds page load and capture.
const DefaultTimeout = 30 * time.Second

var _ Screenshotter = (*rodScreenshotter)(nil)

// rodScreenshotter drives headless Chrome through go-rod. Rod downloads
// Chromium on first run if none is found.
type rodScreenshotter struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// NewRodScreenshotter returns a Screenshotter that starts its browser on
// first use.
func NewRodScreenshotter(timeout time.Duration) Screenshotter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &rodScreenshotter{timeout: timeout}
}

func (r *rodScreenshotter) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Capture opens htmlPath at the preview size and returns the PNG of the
// Selector element.
func (r *rodScreenshotter) Capture(ctx context.Context, htmlPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Timeout(timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             Width,
		Height:            Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	el, err := page.Element(Selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScreenshot, Selector, err)
	}
	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return png, nil
}

// Close shuts the browser and kills its process tree.
func (r *rodScreenshotter) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if r.launcher != nil {
		// helper processes are not children of the launcher
		_ = process.KillTree(r.launcher.PID())
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.browser = nil
	r.launcher = nil
	return err
}
