package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/neuragicus/spectrum-api/internal/log"
	"github.com/neuragicus/spectrum-api/internal/spectrum"
	"github.com/neuragicus/spectrum-api/pkg/build"
)

// analysisRequest is the wire shape of an analysis call: the sampling
// interval in seconds and the time-domain samples.
type analysisRequest struct {
	TimeInterval float64   `json:"time_interval"`
	Data         []float64 `json:"data"`
}

// analysisResponse carries the ordered one-sided spectrum.
type analysisResponse struct {
	Result []spectrum.FrequencyBin `json:"result"`
}

// errorResponse is the uniform error body: a human-readable reason string.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// handleAnalyze serves POST /analyze_spectrum. Schema and numeric validation
// failures return 422; only malformed JSON returns 400. Validation happens
// inside the analyzer, so the boundary stays a thin codec.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			writeError(w, http.StatusUnprocessableEntity, "All data points must be numeric.")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusUnprocessableEntity, "Request body is empty")
		default:
			writeError(w, http.StatusBadRequest, "Malformed request body")
		}
		return
	}

	bins, err := s.analyzer.Analyze(req.Data, req.TimeInterval)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{Result: bins})
}

// handleCacheInfo serves GET /cache_info for operational introspection.
func (s *Server) handleCacheInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.CacheInfo())
}

// handleHealth serves GET /healthz. Unauthenticated so load balancers can
// probe it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := build.GetBuildFlags()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"name":    info.Name,
		"version": info.Version,
	})
}
