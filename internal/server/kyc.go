package server

import (
	"net/http"

	"github.com/omamori-labs/omamori/internal/domain/models"
)

type kycResponse struct {
	Success bool              `json:"success"`
	KYC     *models.KYCRecord `json:"kyc"`
}

// POST /api/kyc
func (s *Server) handleSubmitKYC(w http.ResponseWriter, r *http.Request) {
	var req models.KYCRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	record, err := s.submitKYC.Run(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, kycResponse{Success: true, KYC: record})
}

// GET /api/kyc?lineUserId=
func (s *Server) handleGetKYC(w http.ResponseWriter, r *http.Request) {
	record, err := s.getKYC.Run(r.Context(), r.URL.Query().Get("lineUserId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, kycResponse{Success: true, KYC: record})
}
