package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

// ErrUnknownPage is returned for page names the server does not serve.
var ErrUnknownPage = errors.New("server: unknown page")

// Page is a root component served under /examples/{name}.
type Page struct {
	Name    string
	Title   string
	Summary string
	App     vdom.Component

	// Props builds the root bundle. It is called for every composition.
	Props func() props.Bundle
}

// Config configures a Server.
type Config struct {
	// Addr is the listen address for Run (default: "localhost:3000").
	Addr string

	// Pages are served in order on the index.
	Pages []Page

	// Composer expands pages. Defaults to compose.New().
	Composer *compose.Composer

	// Renderer renders mounted trees and documents.
	Renderer *render.Renderer

	// Live injects the live client script and enables /live/{name}.
	Live bool

	// StaticDir is served under StaticPrefix when set.
	StaticDir    string
	StaticPrefix string

	// Mount receives every tree mounted by the server in addition to the
	// in-memory mount point, e.g. a snapshot store.
	Mount mount.Mount

	// Registry collects the server's metrics. A new registry is created
	// when nil.
	Registry *prometheus.Registry
	Metrics  MetricsConfig

	// TracerName names the otel tracer (default: DefaultTracerName).
	TracerName string

	// ShutdownTimeout bounds graceful shutdown (default: 10s).
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// Server composes pages on request, mounts them in memory and serves the
// result over HTTP. Events posted by browsers are dispatched to the
// callbacks of the mounted trees, and re-mounted content is pushed to live
// clients.
type Server struct {
	config      Config
	pages       map[string]Page
	memory      *mount.Memory
	mount       mount.Mount
	hub         *Hub
	metrics     *metrics
	tracer      tracer
	logger      *slog.Logger
	router      chi.Router
	unsubscribe func()
	httpServer  *http.Server
}

// New creates a Server.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = "localhost:3000"
	}
	if config.Composer == nil {
		config.Composer = compose.New()
	}
	if config.Renderer == nil {
		config.Renderer = render.NewRenderer(render.RendererConfig{})
	}
	if config.StaticPrefix == "" {
		config.StaticPrefix = "/static/"
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	logger := config.Logger.With("component", "server")
	m := newMetrics(config.Registry, config.Metrics)
	s := &Server{
		config:  config,
		pages:   make(map[string]Page, len(config.Pages)),
		metrics: m,
		tracer:  newTracer(config.TracerName),
		logger:  logger,
		hub:     newHub(config.Logger.With("component", "server.hub"), m),
	}
	for _, p := range config.Pages {
		s.pages[p.Name] = p
	}

	s.memory = mount.NewMemory(mount.Options{Renderer: config.Renderer, Logger: config.Logger})
	s.mount = s.memory
	if config.Mount != nil {
		s.mount = mount.Tee(s.memory, config.Mount)
	}
	s.unsubscribe = s.memory.Subscribe(s.hub.Publish)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))

	r.Get("/examples/{name}", s.handlePage)
	r.Post("/examples/{name}/events", s.handleEvent)
	r.Post("/examples/{name}/reset", s.handleReset)
	if s.config.Live {
		r.Get("/live/{name}", s.handleLive)
	}
	if s.config.StaticDir != "" {
		prefix := s.config.StaticPrefix
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(s.config.StaticDir))))
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Memory returns the in-memory mount point holding the served pages.
func (s *Server) Memory() *mount.Memory { return s.memory }

// Hub returns the live client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Registry returns the metrics registry.
func (s *Server) Registry() *prometheus.Registry { return s.config.Registry }

// Refresh composes the named page from a fresh root bundle and mounts it.
// On failure the previously mounted content stays in place.
func (s *Server) Refresh(ctx context.Context, name string) error {
	page, ok := s.pages[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}
	return s.tracer.span(ctx, "proptree.refresh", func(ctx context.Context) error {
		var tree *vdom.VNode
		err := s.tracer.span(ctx, "proptree.compose", func(context.Context) error {
			start := time.Now()
			var err error
			tree, err = s.config.Composer.Compose(page.App, page.Props())
			s.metrics.recordComposition(name, time.Since(start), err)
			return err
		}, attribute.String("proptree.page", name))
		if err != nil {
			s.logger.WarnContext(ctx, "composition failed", "page", name, "error", err)
			s.hub.PublishError(name, err)
			return err
		}

		err = s.tracer.span(ctx, "proptree.mount", func(ctx context.Context) error {
			return s.mount.Mount(ctx, tree, name)
		}, attribute.String("proptree.target", name))
		if err != nil {
			return err
		}
		s.metrics.mounts.WithLabelValues(name).Inc()
		return nil
	}, attribute.String("proptree.page", name))
}

// Dispatch invokes the callback of the mounted page and returns the alerts
// it raised.
func (s *Server) Dispatch(ctx context.Context, name, hid, event string) ([]string, error) {
	var log mount.AlertLog
	err := s.tracer.span(mount.WithAlerter(ctx, &log), "proptree.dispatch", func(ctx context.Context) error {
		return s.memory.Dispatch(ctx, name, hid, event)
	},
		attribute.String("proptree.target", name),
		attribute.String("proptree.hid", hid),
		attribute.String("proptree.event", event),
	)

	status := "ok"
	switch {
	case errors.Is(err, mount.ErrUnknownTarget), errors.Is(err, mount.ErrUnknownHandler):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.metrics.dispatches.WithLabelValues(name, event, status).Inc()

	alerts := log.Messages()
	s.metrics.alerts.Add(float64(len(alerts)))
	return alerts, err
}

// Run serves HTTP on Config.Addr until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("server started", "addr", s.config.Addr, "pages", len(s.pages), "live", s.config.Live)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects live clients and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.unsubscribe()
	s.hub.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("server stopped")
	return nil
}

// ensure mounts the page on first use, or again when refresh is set.
func (s *Server) ensure(ctx context.Context, name string, refresh bool) (mount.Page, error) {
	if !refresh {
		if p, ok := s.memory.Page(name); ok {
			return p, nil
		}
	}
	if err := s.Refresh(ctx, name); err != nil {
		return mount.Page{}, err
	}
	p, _ := s.memory.Page(name)
	return p, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
