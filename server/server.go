package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/aseag-nextbus/config"
	"github.com/theoremus-urban-solutions/aseag-nextbus/formatter"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
)

const shutdownTimeout = 10 * time.Second

// Server serves sensor state. Create it with New.
type Server struct {
	registry   *sensor.Registry
	cfg        config.ServerConfig
	router     chi.Router
	builder    *formatter.ResponseBuilder
	now        func() time.Time
	logger     zerolog.Logger
	validFor   time.Duration
	httpServer *http.Server
}

type Option func(*Server)

// WithClock replaces time.Now for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithValidFor sets how long SIRI deliveries are declared valid.
func WithValidFor(d time.Duration) Option {
	return func(s *Server) {
		s.validFor = d
	}
}

func New(cfg config.ServerConfig, registry *sensor.Registry, options ...Option) *Server {
	s := &Server{
		registry: registry,
		cfg:      cfg,
		builder:  formatter.NewResponseBuilder(),
		now:      time.Now,
		logger:   log.With().Str("component", "server").Logger(),
	}
	for _, o := range options {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}))
	}
	r.Use(s.requestLogger)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/sensors", s.handleSensors)
	r.Get("/api/gtfsrt/trip-updates.pb", s.handleAllTripUpdates)
	r.Route("/api/sensors/{name}", func(r chi.Router) {
		r.Get("/", s.handleSensor)
		r.Get("/siri/stop-monitoring.json", s.handleStopMonitoringJSON)
		r.Get("/siri/stop-monitoring.xml", s.handleStopMonitoringXML)
		r.Get("/gtfsrt/trip-updates.pb", s.handleTripUpdates)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured port until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info().Msg("server shut down successfully")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
