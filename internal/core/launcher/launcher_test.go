package launcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpServer adapts *http.Server to the Server interface.
type httpServer struct {
	srv *http.Server
}

func newHTTPServer() *httpServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &httpServer{srv: &http.Server{Handler: mux}}
}

func (s *httpServer) Serve(ln net.Listener) error {
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// fakeOpener records calls and checks the server is already answering.
type fakeOpener struct {
	mu       sync.Mutex
	urls     []string
	openedAt time.Time
	status   int
	err      error
	called   chan struct{}
}

func newFakeOpener(err error) *fakeOpener {
	return &fakeOpener{err: err, called: make(chan struct{}, 1)}
}

func (f *fakeOpener) Open(_ context.Context, url string) error {
	status := 0
	if resp, err := http.Get(url); err == nil {
		status = resp.StatusCode
		resp.Body.Close()
	}

	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.openedAt = time.Now()
	f.status = status
	f.mu.Unlock()

	select {
	case f.called <- struct{}{}:
	default:
	}
	return f.err
}

func listen(t *testing.T) (net.Listener, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln, "http://" + ln.Addr().String() + "/"
}

func runLaunch(ctx context.Context, srv Server, ln net.Listener, opener Opener, opts Options) <-chan error {
	done := make(chan error, 1)
	go func() { done <- Launch(ctx, srv, ln, opener, opts) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("launch did not return")
		return nil
	}
}

func TestLaunch_OpensAfterDelay(t *testing.T) {
	ln, url := listen(t)
	opener := newFakeOpener(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	done := runLaunch(ctx, newHTTPServer(), ln, opener, Options{URL: url, Delay: 100 * time.Millisecond})

	select {
	case <-opener.called:
	case <-time.After(5 * time.Second):
		t.Fatal("opener was not called")
	}

	opener.mu.Lock()
	assert.Equal(t, []string{url}, opener.urls)
	assert.GreaterOrEqual(t, opener.openedAt.Sub(start), 100*time.Millisecond)
	assert.Equal(t, http.StatusOK, opener.status, "server should answer before the browser opens")
	opener.mu.Unlock()

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestLaunch_OpenerErrorKeepsServing(t *testing.T) {
	ln, url := listen(t)
	opener := newFakeOpener(errors.New("no display"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := runLaunch(ctx, newHTTPServer(), ln, opener, Options{URL: url, StopOnClose: true})
	<-opener.called

	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestLaunch_StopOnClose(t *testing.T) {
	ln, url := listen(t)
	opener := newFakeOpener(nil)

	done := runLaunch(context.Background(), newHTTPServer(), ln, opener, Options{URL: url, StopOnClose: true})
	require.NoError(t, waitDone(t, done))

	_, err := http.Get(url)
	assert.Error(t, err, "server should be closed after the window closes")
}

func TestLaunch_CancelBeforeDelay(t *testing.T) {
	ln, url := listen(t)
	opener := newFakeOpener(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := runLaunch(ctx, newHTTPServer(), ln, opener, Options{URL: url, Delay: time.Hour})
	cancel()
	require.NoError(t, waitDone(t, done))

	opener.mu.Lock()
	defer opener.mu.Unlock()
	assert.Empty(t, opener.urls)
}

func TestLaunch_NilOpener(t *testing.T) {
	ln, url := listen(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := runLaunch(ctx, newHTTPServer(), ln, nil, Options{URL: url})

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestChromeWindow_AllocatorOptions(t *testing.T) {
	base := len(ChromeWindow{}.allocatorOptions())
	withPath := len(ChromeWindow{ChromePath: "/usr/bin/chromium"}.allocatorOptions())
	assert.Equal(t, base+1, withPath)
}
