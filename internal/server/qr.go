package server

import (
	"net/http"

	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

type connectionResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Connection *models.Connection `json:"connection,omitempty"`
}

// POST /api/qr
func (s *Server) handleConnectWallet(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failMessage(w, r, err)
		return
	}

	if _, err := s.connectWallet.Run(r.Context(), req); err != nil {
		s.failMessage(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: usecase.ConnectedMessage})
}

// GET /api/qr?userId=
func (s *Server) handleGetConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.getConnection.Run(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		s.failMessage(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, connectionResponse{
		Success:    true,
		Message:    usecase.ConnectedMessage,
		Connection: conn,
	})
}
