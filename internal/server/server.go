// Package server exposes chart rendering over HTTP.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/satindergrewal/chartwheel"
	"github.com/satindergrewal/chartwheel/internal/config"
)

// Config holds server dependencies.
type Config struct {
	Log        zerolog.Logger
	Renderer   *chartwheel.Renderer
	Chart      config.ChartConfig
	Server     config.ServerConfig
	Defs       string // glyph definitions embedded in every SVG document
	Registerer prometheus.Registerer
}

// Server is the chart HTTP server.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	renderer *chartwheel.Renderer
	chart    config.ChartConfig
	maxBody  int64
	defs     string
	metrics  *Metrics
}

// New creates a server and registers its routes and metrics.
func New(cfg Config) (*Server, error) {
	metrics, err := NewMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		renderer: cfg.Renderer,
		chart:    cfg.Chart,
		maxBody:  cfg.Server.MaxBodyBytes,
		defs:     cfg.Defs,
		metrics:  metrics,
	}
	s.setupMiddleware(cfg.Server.CORSOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.Server.SelfSigned {
		cert, err := SelfSignedCert(cfg.Server.Host)
		if err != nil {
			return nil, fmt.Errorf("tls cert: %w", err)
		}
		s.server.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}
	return s, nil
}

func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/chart.svg", s.handleSVG)
		r.Post("/chart.png", s.handlePNG)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. With a self-signed certificate
// the server speaks HTTPS only.
func (s *Server) Start() error {
	var err error
	if s.server.TLSConfig != nil {
		s.log.Info().Str("addr", s.server.Addr).IPAddr("lan", LANIP()).Msg("starting chart server (https, self-signed)")
		err = s.server.ListenAndServeTLS("", "")
	} else {
		s.log.Info().Str("addr", s.server.Addr).Msg("starting chart server")
		err = s.server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down chart server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	body, chart, ok := s.render(w, r, "svg")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := chartwheel.WriteDocument(w, s.chart.Width, s.chart.Height, s.defs, body); err != nil {
		s.log.Warn().Err(err).Str("request_id", requestIDFrom(r.Context())).Stringer("type", chart.Type).Msg("writing svg")
	}
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	body, chart, ok := s.render(w, r, "png")
	if !ok {
		return
	}
	img := chartwheel.Rasterize(body,
		int(float64(s.chart.Width)*s.chart.Scale),
		int(float64(s.chart.Height)*s.chart.Scale),
		s.chart.Scale)
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn().Err(err).Str("request_id", requestIDFrom(r.Context())).Stringer("type", chart.Type).Msg("writing png")
	}
}

// render decodes and renders the request chart, writing an error response
// and returning ok=false on failure. The body is already offset by the
// configured margin.
func (s *Server) render(w http.ResponseWriter, r *http.Request, format string) (chartwheel.Fragment, chartwheel.Chart, bool) {
	start := time.Now()
	log := s.log.With().Str("request_id", requestIDFrom(r.Context())).Str("format", format).Logger()

	var chart chartwheel.Chart
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&chart); err != nil {
		s.metrics.Observe("unknown", format, "bad_request", time.Since(start))
		log.Debug().Err(err).Msg("decoding chart")
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid chart: %v", err))
		return nil, chart, false
	}
	if chart.Language == "" {
		chart.Language = s.chart.Language
	}

	body, err := s.renderer.Render(r.Context(), chart)
	if err != nil {
		status, label := http.StatusInternalServerError, "error"
		if errors.Is(err, chartwheel.ErrInvalidInput) || errors.Is(err, chartwheel.ErrMissingParameter) {
			status, label = http.StatusBadRequest, "bad_request"
		}
		s.metrics.Observe(chart.Type.String(), format, label, time.Since(start))
		log.Warn().Err(err).Stringer("type", chart.Type).Msg("rendering chart")
		writeError(w, status, err.Error())
		return nil, chart, false
	}

	s.metrics.Observe(chart.Type.String(), format, "ok", time.Since(start))
	log.Info().Stringer("type", chart.Type).Dur("took", time.Since(start)).Msg("chart rendered")
	return chartwheel.Translate(s.chart.Margin, s.chart.Margin, body), chart, true
}

type requestIDKey struct{}

// requestID tags each request with the caller's X-Request-ID or a new UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
