package server

import "net/http"

// requireAPIKey guards a handler with API key header authentication. The
// header name and expected value come from configuration; a missing or wrong
// key is rejected with 403 before the handler runs.
func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(s.cfg.Auth.HeaderName)
		if key == "" || key != s.cfg.Auth.Key {
			writeError(w, http.StatusForbidden, "Invalid or missing API key")
			return
		}
		next(w, r)
	}
}
