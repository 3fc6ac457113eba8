package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/patchwork/pkg/render"
	"github.com/vango-dev/patchwork/pkg/updater"
)

// Server serves one view and its patch stream.
type Server struct {
	updater  *updater.Updater
	router   chi.Router
	upgrader websocket.Upgrader

	logger       *slog.Logger
	writeTimeout time.Duration
	queueSize    int
	gatherer     prometheus.Gatherer

	title        string
	renderConfig render.RendererConfig
	clientJS     []byte
	clientETag   string

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New creates a Server for u.
func New(u *updater.Updater, opts ...Option) *Server {
	s := &Server{
		updater:      u,
		logger:       slog.Default(),
		writeTimeout: defaultWriteTimeout,
		queueSize:    defaultQueueSize,
		gatherer:     prometheus.DefaultGatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.clientJS) > 0 {
		sum := sha256.Sum256(s.clientJS)
		s.clientETag = fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:]))
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleStream)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get(render.DefaultClientScript, s.handleClientScript)
	r.Head(render.DefaultClientScript, s.handleClientScript)
	return r
}

// Handler returns the server's routes for mounting in another router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down,
// closing open streams.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeStreams()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	seq, root := s.updater.Current()
	sr := render.NewStreamingRenderer(w, s.renderConfig)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := sr.RenderPage(render.PageData{
		Title:    s.title,
		Body:     root,
		Endpoint: streamURL(r),
		Seq:      seq,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

// streamURL derives the WebSocket URL for the request's host.
func streamURL(r *http.Request) string {
	scheme := "ws"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "wss"
	}
	return scheme + "://" + r.Host + "/ws"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.updater.Err(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "out of sync: %v\n", err)
		return
	}
	fmt.Fprintf(w, "ok seq=%d\n", s.updater.Seq())
}

func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	if len(s.clientJS) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("ETag", s.clientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), s.clientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.clientJS)
}

// etagMatches handles lists and weak validators: "abc", W/"def".
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == etag || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (s *Server) track(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) closeStreams() {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := time.Now().Add(time.Second)
	for conn := range s.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline)
		conn.Close()
	}
}
