package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/neuragicus/spectrum-api/internal/log"
)

// handleWebSocket upgrades GET /analyze_spectrum/ws to a WebSocket analysis
// channel. Each text frame is one analysisRequest; the reply is either an
// analysisResponse or an errorResponse frame. Authentication has already run
// on the upgrade request.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("server: websocket upgrade: %v", err)
		return
	}

	s.connsMutex.Lock()
	s.conns[conn] = true
	s.connsMutex.Unlock()

	defer func() {
		s.connsMutex.Lock()
		delete(s.conns, conn)
		s.connsMutex.Unlock()
		conn.Close()
	}()

	for {
		var req analysisRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err) ||
				websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			// Undecodable frame: report it and keep the connection.
			if err := conn.WriteJSON(errorResponse{Detail: "Malformed request"}); err != nil {
				return
			}
			continue
		}

		bins, err := s.analyzer.Analyze(req.Data, req.TimeInterval)
		if err != nil {
			if err := conn.WriteJSON(errorResponse{Detail: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(analysisResponse{Result: bins}); err != nil {
			return
		}
	}
}
