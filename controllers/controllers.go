// controllers/controllers.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go-foodorder/middleware"
	"go-foodorder/services"
	"go-foodorder/session"
)

// sessionFrom pulls the per-request session attached by the session
// middleware. Its absence is a wiring bug, not a client error. The
// session's startup resolution runs here, so whichever route a client
// hits first sees a loaded cart, not the pre-bootstrap empty one.
func sessionFrom(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Session not initialized", http.StatusInternalServerError)
		return nil
	}
	sess.Resolve(r.Context(), bearerToken(r))
	return sess
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// serviceError maps backend failures to client responses. An expired
// credential becomes a 401 so the client can redirect to login; backend
// status codes are passed through; everything else is a bad gateway.
func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrAuthExpired) {
		http.Error(w, "Session expired, please log in again", http.StatusUnauthorized)
		return
	}
	var se *services.StatusError
	if errors.As(err, &se) {
		http.Error(w, se.Message, se.Code)
		return
	}
	http.Error(w, "Upstream service unavailable", http.StatusBadGateway)
}
