// Package httpserver runs the chi router behind the task API.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/core"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/logging"
)

// RouteRegisterFunc registers routes onto router; the container is provided for resolving components.
type RouteRegisterFunc func(r chi.Router, c *core.Container) error

type Server struct {
	*core.BaseComponent
	cfg        *Config
	container  *core.Container
	router     chi.Router
	server     *http.Server
	registrars []RouteRegisterFunc
	addr       net.Addr
	started    bool
}

func NewServer(cfg *Config, c *core.Container) *Server {
	return &Server{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_HTTP_SERVER, consts.COMPONENT_LOGGING),
		cfg:           cfg,
		container:     c,
	}
}

// AddRouteRegistrar queues fn to run against the router on Start.
func (s *Server) AddRouteRegistrar(fn RouteRegisterFunc) error {
	if fn == nil {
		return nil
	}
	if s.started {
		return fmt.Errorf("cannot register route: http_server already started")
	}
	s.registrars = append(s.registrars, fn)
	return nil
}

func (s *Server) Router() chi.Router { return s.router }

// Addr is the bound listen address; nil before Start.
func (s *Server) Addr() net.Addr { return s.addr }

func (s *Server) Start(ctx context.Context) error {
	if err := s.BaseComponent.Start(ctx); err != nil {
		return err
	}
	ln, err := s.listen()
	if err != nil {
		_ = s.BaseComponent.Stop(ctx)
		return err
	}
	s.addr = ln.Addr()
	s.server = &http.Server{
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		Handler:      s.router,
	}

	go func() {
		logging.Infof(ctx, "http_server listening on %s", s.addr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Errorf(ctx, "http_server server error: %v", err)
		}
	}()

	s.started = true
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	if s.cfg == nil || !s.cfg.Enabled {
		return nil, errors.New("http_server component enabled flag mismatch")
	}
	if err := s.buildRouter(); err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("http_server listen %s: %w", s.cfg.Address, err)
	}
	return ln, nil
}

func (s *Server) Stop(ctx context.Context) error {
	defer func() { _ = s.BaseComponent.Stop(ctx) }()
	if !s.started || s.server == nil {
		return nil
	}
	stopCtx, cancel := context.WithTimeout(ctx, s.cfg.GracefulTimeout)
	defer cancel()
	if err := s.server.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("http_server graceful shutdown failed: %w", err)
	}
	s.started = false
	logging.Infof(ctx, "http_server server stopped")
	return nil
}

func (s *Server) HealthCheck() error {
	if err := s.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	if !s.started {
		return fmt.Errorf("http_server server not started")
	}
	return nil
}

func (s *Server) buildRouter() error {
	s.applyDefaults()
	s.router = chi.NewRouter()
	s.setupMiddlewares()

	if s.cfg.EnableHealth {
		s.router.Get("/healthz", s.healthHandler)
	}
	for _, fn := range s.registrars {
		if err := fn(s.router, s.container); err != nil {
			return fmt.Errorf("route register failed: %w", err)
		}
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) setupMiddlewares() {
	s.router.Use(middleware.RealIP)
	s.router.Use(requestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.HandlerTimeout))

	serviceName := s.cfg.ServiceName
	if serviceName == "" {
		serviceName = s.cfg.Address
	}
	s.router.Use(otelchi.Middleware(serviceName))
	s.router.Use(accessLog)
}

// requestID keeps an incoming X-Request-Id or mints one, and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(consts.HEADER_RequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(consts.HEADER_RequestID, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			w.Header().Set("traceparent", fmt.Sprintf("00-%s-%s-01", sc.TraceID().String(), sc.SpanID().String()))
		}

		next.ServeHTTP(sw, r)

		logging.Info(r.Context(), "http_access",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", sw.status),
			zap.Duration("dur", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) applyDefaults() {
	if s.cfg.Address == "" {
		s.cfg.Address = ":8080"
	}
	if s.cfg.ReadTimeout == 0 {
		s.cfg.ReadTimeout = 15 * time.Second
	}
	if s.cfg.WriteTimeout == 0 {
		s.cfg.WriteTimeout = 15 * time.Second
	}
	if s.cfg.IdleTimeout == 0 {
		s.cfg.IdleTimeout = 60 * time.Second
	}
	if s.cfg.GracefulTimeout == 0 {
		s.cfg.GracefulTimeout = 10 * time.Second
	}
	if s.cfg.HandlerTimeout == 0 {
		s.cfg.HandlerTimeout = 60 * time.Second
	}
}
