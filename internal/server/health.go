package server

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}
