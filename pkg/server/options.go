package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/patchwork/pkg/render"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultQueueSize    = 64
	defaultReadLimit    = 64 << 10
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithWriteTimeout bounds each frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithQueueSize sets how many frames may wait for a slow connection before
// it is dropped.
func WithQueueSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithGatherer sets the registry served on /metrics.
// Default: prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithRendererConfig sets how the page body is rendered.
func WithRendererConfig(cfg render.RendererConfig) Option {
	return func(s *Server) {
		s.renderConfig = cfg
	}
}

// WithClientScript serves js at render.DefaultClientScript.
func WithClientScript(js []byte) Option {
	return func(s *Server) {
		s.clientJS = js
	}
}

// WithCheckOrigin sets the WebSocket origin check.
// Default: same host only.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}
