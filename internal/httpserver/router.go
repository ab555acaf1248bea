package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alscos/sample-app/internal/config"
	"github.com/alscos/sample-app/internal/sysinfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SystemReader is the slice of sysinfo.Collector the handlers need.
type SystemReader interface {
	Hostname() string
	System() sysinfo.System
	Process() sysinfo.Process
	HeapUsed() uint64
}

// ReadinessCheck reports whether the instance should receive traffic.
// A nil check means always ready.
type ReadinessCheck func(ctx context.Context) error

type RouterDeps struct {
	Config config.Config
	Sys    SystemReader
	Ready  ReadinessCheck
	Logger *slog.Logger
}

type Server struct {
	cfg     config.Config
	sys     SystemReader
	ready   ReadinessCheck
	log     *slog.Logger
	metrics *metrics
	now     func() time.Time
}

func NewRouter(deps RouterDeps) http.Handler {
	return newServer(deps).routes()
}

func newServer(deps RouterDeps) *Server {
	s := &Server{
		cfg:   deps.Config,
		sys:   deps.Sys,
		ready: deps.Ready,
		log:   deps.Logger,
		now:   time.Now,
	}
	if s.sys == nil {
		s.sys = sysinfo.NewCollector()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.cfg.StartTime.IsZero() {
		s.cfg.StartTime = time.Now()
	}
	if s.cfg.MetricsEnabled {
		s.metrics = newMetrics()
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.metrics.middleware)
	r.Use(s.recoverJSON)
	r.Use(middleware.GetHead)

	r.NotFound(s.handleNotFound)
	// Only GET (and HEAD via GetHead) is routed; any other method is treated
	// like an unknown path.
	r.MethodNotAllowed(s.handleNotFound)

	r.Get("/", s.handle(s.handleRoot))
	r.Get("/health", s.handle(s.handleHealth))
	r.Get("/version", s.handle(s.handleVersion))
	r.Get("/info", s.handle(s.handleInfo))
	r.Get("/ready", s.handle(s.handleReady))
	r.Get("/live", s.handle(s.handleLive))

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	}

	return r
}
