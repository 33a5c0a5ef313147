package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"netshield/internal/gateway"
	"netshield/internal/models"
)

const (
	errSSIDRequired     = "SSID is required"
	errStatusFailed     = "backend status failed"
	errBackendFetch     = "Backend fetch failed"
	errBackendUnreached = "backend unreachable"
)

// Options tunes optional server behaviour.
type Options struct {
	StreamInterval time.Duration
	AdminAPIKey    string
	AllowedOrigins []string
}

// Server exposes the widget and dashboard proxy routes.
type Server struct {
	httpServer     *http.Server
	router         *mux.Router
	gateway        *gateway.Client
	log            zerolog.Logger
	streamInterval time.Duration
	adminAPIKey    string
	allowedOrigins map[string]struct{}
}

// New creates a configured HTTP server forwarding to gw.
func New(addr string, gw *gateway.Client, log zerolog.Logger, opts Options) *Server {
	if opts.StreamInterval <= 0 {
		opts.StreamInterval = 10 * time.Second
	}

	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		origins[o] = struct{}{}
	}

	s := &Server{
		router:         mux.NewRouter(),
		gateway:        gw,
		log:            log,
		streamInterval: opts.StreamInterval,
		adminAPIKey:    opts.AdminAPIKey,
		allowedOrigins: origins,
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.router.Use(s.requestIDMiddleware, s.accessLogMiddleware, s.corsMiddleware)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	s.router.HandleFunc("/api/status", s.handleStatus).
		Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/api/status/stream", s.handleStatusStream).
		Methods(http.MethodGet)
	s.router.Handle("/api/getDevices", requireSSID(s.apiKeyMiddleware(http.HandlerFunc(s.handleDevices)))).
		Methods(http.MethodGet, http.MethodOptions)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	body, err := s.gateway.Status(r.Context())
	if err != nil {
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			log.Error().Int("backend_status", statusErr.Code).Msg("backend /status failed")
			writeError(w, http.StatusInternalServerError, errStatusFailed)
			return
		}
		log.Error().Err(err).Msg("error calling backend /status")
		writeError(w, http.StatusBadGateway, errBackendUnreached)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	ssid := r.URL.Query().Get("ssid")
	body, err := s.gateway.Devices(r.Context(), ssid)
	if err != nil {
		if errors.Is(err, gateway.ErrSSIDRequired) {
			writeError(w, http.StatusBadRequest, errSSIDRequired)
			return
		}
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			log.Error().Int("backend_status", statusErr.Code).Str("ssid", ssid).Msg("backend device lookup failed")
			writeError(w, statusErr.Code, errBackendFetch)
			return
		}
		log.Error().Err(err).Str("ssid", ssid).Msg("error calling backend device lookup")
		writeError(w, http.StatusBadGateway, errBackendUnreached)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
