package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"netshield/internal/metrics"
	"netshield/internal/models"
)

const streamWriteTimeout = 5 * time.Second

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := s.allowedOrigins[origin]; ok {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			host := strings.ToLower(strings.TrimSpace(r.Host))
			originHost := strings.ToLower(strings.TrimSpace(u.Host))
			return host == originHost
		},
	}
}

func (s *Server) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("status stream upgrade failed")
		return
	}

	s.serveStream(r.Context(), conn)
}

func (s *Server) serveStream(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	if err := writeSnapshot(conn, s.buildSnapshot(ctx)); err != nil {
		return
	}

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := writeSnapshot(conn, s.buildSnapshot(ctx)); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) buildSnapshot(ctx context.Context) models.StatusSnapshot {
	snapshot := models.StatusSnapshot{
		GeneratedAt: time.Now().UTC(),
		Devices:     []models.DeviceStatus{},
	}

	devices, err := s.gateway.StatusDevices(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("status stream poll failed")
		snapshot.Error = err.Error()
		return snapshot
	}
	if devices != nil {
		snapshot.Devices = devices
	}
	snapshot.Summary = metrics.Summarize(snapshot.Devices)
	return snapshot
}

func writeSnapshot(conn *websocket.Conn, payload models.StatusSnapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(payload)
}
