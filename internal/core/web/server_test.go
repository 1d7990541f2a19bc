package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/core/service"
)

// newTestDB creates a new in-memory SQLite database for testing.
func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("failed to close db: %v", err)
		}
	})
	return database
}

// newTestServer creates a Server backed by a fresh in-memory database.
func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()
	database := newTestDB(t)
	server, err := NewServer(service.NewBookmarkService(database), service.NewFeedService(database))
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	return server, database
}

// do sends a request through the full middleware stack.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	server, _ := newTestServer(t)

	require.NotNil(t, server.bookmarks)
	require.NotNil(t, server.feeds)
	require.NotEmpty(t, server.indexHTML)
	require.NotNil(t, server.echo)
	require.NotNil(t, server.httpServer)
}

func TestServer_Routes(t *testing.T) {
	server, _ := newTestServer(t)

	registered := map[string]bool{}
	for _, r := range server.echo.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /healthz",
		"GET /api/bookmarks",
		"POST /api/bookmarks",
		"DELETE /api/bookmarks/:id",
		"GET /api/feeds",
		"POST /api/feeds",
		"GET /api/feeds/opml",
		"DELETE /api/feeds/:id",
	} {
		require.True(t, registered[want], "route %q not registered", want)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	server, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	require.NoError(t, <-done)
}
