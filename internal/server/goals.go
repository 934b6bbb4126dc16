package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

type goalResponse struct {
	Success bool               `json:"success"`
	Goal    *models.GoalStatus `json:"goal"`
}

type depositRequest struct {
	Amount uint64 `json:"amount"`
	TxHash string `json:"txHash"`
}

// GET /api/goals/{userId}
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	status, err := s.goals.Show(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{Success: true, Goal: status})
}

// POST /api/goals/{userId}/deposits
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	status, err := s.goals.Deposit(r.Context(), usecase.RecordDepositParams{
		UserID: mux.Vars(r)["userId"],
		Amount: req.Amount,
		TxHash: req.TxHash,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResponse{Success: true, Goal: status})
}
