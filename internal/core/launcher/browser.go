package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/chromedp"
	"github.com/pkg/browser"
)

// SystemBrowser hands the URL to the desktop's default browser.
type SystemBrowser struct{}

func (SystemBrowser) Open(_ context.Context, url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open system browser: %w", err)
	}
	return nil
}

// ChromeWindow starts a dedicated Chrome/Chromium window over the DevTools
// protocol and blocks until the user closes it.
type ChromeWindow struct {
	// ChromePath optionally overrides the Chrome/Chromium executable path.
	ChromePath string
}

func (c ChromeWindow) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", false),
		chromedp.Flag("hide-scrollbars", false),
		chromedp.Flag("mute-audio", false),
		chromedp.WindowSize(1100, 800),
	)
	if c.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.ChromePath))
	}
	return opts
}

// Open returns nil once the window is closed, or ctx's error if ctx ends first.
func (c ChromeWindow) Open(ctx context.Context, url string) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("open chrome window: %w", err)
	}

	closed := make(chan struct{})
	var once sync.Once
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*inspector.EventDetached); ok {
			slog.Debug("chrome target detached", "reason", e.Reason)
			once.Do(func() { close(closed) })
		}
	})

	select {
	case <-closed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-browserCtx.Done():
		// Chrome exited on its own (last window closed).
		return nil
	}
}
