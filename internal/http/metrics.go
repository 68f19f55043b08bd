package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"posture-backend-go/internal/services"
)

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteFailure(w, err, "Error fetching metrics history")
		return
	}
	WriteData(w, http.StatusOK, items)
}

// MetricsSocket streams live samples; websockets cannot carry an
// Authorization header from browsers, so the token rides a query param.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		WriteError(w, http.StatusForbidden, "Token not provided")
		return
	}
	principal, err := s.Tokens.ParsePrincipal(tokenStr)
	if err != nil || principal.Kind != services.PrincipalAccount {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
