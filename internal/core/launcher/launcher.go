// Package launcher runs the web server and opens it in a browser once the
// listener is up.
package launcher

import (
	"context"
	"log/slog"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds how long in-flight requests get to finish.
const DefaultShutdownTimeout = 5 * time.Second

// Server is the part of web.Server the launcher drives.
type Server interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// Opener shows a URL to the user. Implementations that own a window block
// until it is closed; the rest return as soon as the request is handed off.
type Opener interface {
	Open(ctx context.Context, url string) error
}

type Options struct {
	// URL is what the opener is pointed at.
	URL string
	// Delay is waited after the listener is bound and before opening.
	Delay time.Duration
	// StopOnClose shuts the server down once Open returns successfully.
	// Only meaningful for openers that block while their window is open.
	StopOnClose     bool
	ShutdownTimeout time.Duration
}

// Launch serves on ln until ctx is cancelled (or, with StopOnClose, until the
// opener's window goes away) and then shuts srv down gracefully. A nil opener
// serves without opening anything. Browser failures are logged, never returned.
func Launch(ctx context.Context, srv Server, ln net.Listener, opener Opener, opts Options) error {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		return srv.Serve(ln)
	})

	if opener != nil {
		g.Go(func() error {
			if openAfterDelay(runCtx, opener, opts) && opts.StopOnClose {
				slog.Info("browser window closed, shutting down")
				stop()
			}
			return nil
		})
	}

	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.ShutdownTimeout)
		defer cancel()
		slog.Info("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openAfterDelay reports whether the opener ran to completion without error
// while ctx was still live.
func openAfterDelay(ctx context.Context, opener Opener, opts Options) bool {
	timer := time.NewTimer(opts.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return false
	}

	slog.Info("opening browser", "url", opts.URL)
	err := opener.Open(ctx, opts.URL)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		slog.Warn("failed to open browser, visit the URL manually", "url", opts.URL, "error", err)
		return false
	}
	return true
}
