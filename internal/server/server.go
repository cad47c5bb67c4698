// SPDX-License-Identifier: MIT

// Package server exposes the spectrum analyzer over HTTP. It owns no
// analysis state of its own: a single long-lived Analyzer is injected at
// construction and shared by every request.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/neuragicus/spectrum-api/internal/config"
	"github.com/neuragicus/spectrum-api/internal/log"
	"github.com/neuragicus/spectrum-api/internal/spectrum"
)

// Server is the HTTP boundary for the analysis service.
//
// Thread Safety:
// - The analyzer is safe for concurrent use; handlers share it freely
// - Uses mutex for the WebSocket connection set
// - Shutdown is safe to call while requests are in flight
type Server struct {
	cfg        *config.Config
	analyzer   *spectrum.Analyzer
	httpServer *http.Server

	upgrader websocket.Upgrader

	connsMutex sync.Mutex               // Protects conns
	conns      map[*websocket.Conn]bool // Active WebSocket connections
}

// New builds a server around an existing analyzer. It fails when no API key
// is configured; running the boundary unauthenticated is never intended.
func New(cfg *config.Config, analyzer *spectrum.Analyzer) (*Server, error) {
	if cfg.Auth.Key == "" {
		return nil, errors.New("API key is not configured: set auth.key or the " +
			config.EnvAPIKeyValue + " environment variable")
	}

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		conns:    make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze_spectrum", s.requireAPIKey(s.handleAnalyze))
	mux.HandleFunc("/analyze_spectrum/ws", s.requireAPIKey(s.handleWebSocket))
	mux.HandleFunc("/cache_info", s.requireAPIKey(s.handleCacheInfo))
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:     mux,
		ReadTimeout: cfg.Server.ReadTimeout.Std(),
	}

	return s, nil
}

// Handler returns the route handler, so tests can drive the server through
// httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured address and serves until Shutdown is
// called. It blocks; run it on its own goroutine.
func (s *Server) Start() error {
	log.Infof("server: listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests, closes active WebSocket
// connections and waits for in-flight requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.connsMutex.Lock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
	s.connsMutex.Unlock()

	return s.httpServer.Shutdown(ctx)
}
