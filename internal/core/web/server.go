package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/seckatie/feedmarks/internal/core/service"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

type Server struct {
	bookmarks  service.BookmarkService
	feeds      service.FeedService
	indexHTML  []byte
	echo       *echo.Echo
	httpServer *http.Server
}

// NewServer builds the echo instance and registers every route.
func NewServer(bookmarks service.BookmarkService, feeds service.FeedService) (*Server, error) {
	indexHTML, err := assetsFS.ReadFile("templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read index template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler

	ws := &Server{
		bookmarks: bookmarks,
		feeds:     feeds,
		indexHTML: indexHTML,
		echo:      e,
	}
	ws.registerMiddleware()
	ws.registerRoutes()

	ws.httpServer = &http.Server{
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ws, nil
}

func (ws *Server) registerMiddleware() {
	ws.echo.Use(middleware.Recover())
	ws.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	ws.echo.Use(requestLogger())
	ws.echo.Use(middleware.BodyLimit("1M"))
}

func (ws *Server) registerRoutes() {
	ws.echo.GET("/", ws.handleIndex)
	ws.echo.GET("/healthz", ws.handleHealth)
	ws.echo.StaticFS("/static", echo.MustSubFS(assetsFS, "static"))

	api := ws.echo.Group("/api")
	api.GET("/bookmarks", ws.handleListBookmarks)
	api.POST("/bookmarks", ws.handleCreateBookmark)
	api.DELETE("/bookmarks/:id", ws.handleDeleteBookmark)
	api.GET("/feeds", ws.handleListFeeds)
	api.POST("/feeds", ws.handleCreateFeed)
	api.GET("/feeds/opml", ws.handleExportFeeds)
	// Keeps DELETE /feeds/opml from matching /feeds/:id.
	api.DELETE("/feeds/opml", handleExportMethodNotAllowed)
	api.DELETE("/feeds/:id", ws.handleDeleteFeed)
}

// ServeHTTP lets the server be driven directly by httptest.
func (ws *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws.echo.ServeHTTP(w, r)
}

// Serve accepts connections on ln until Shutdown is called.
// It returns nil after a graceful shutdown.
func (ws *Server) Serve(ln net.Listener) error {
	slog.Info("web server listening", "addr", ln.Addr().String())
	if err := ws.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

func (ws *Server) Shutdown(ctx context.Context) error {
	return ws.httpServer.Shutdown(ctx)
}
