package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/omamori-labs/omamori/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a single JSON object. Any failure is a validation error.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ValidationError{Field: "body"}
		}
		return domain.ValidationError{Field: "body", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	return nil
}

// statusFor maps use case errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		// client went away
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failures from clients
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusNotFound:
		return "not found"
	default:
		return err.Error()
	}
}

// fail writes {success:false, error} for err
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: publicMessage(status, err)})
}

// failMessage writes {success:false, message} for err
func (s *Server) failMessage(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, messageResponse{Message: publicMessage(status, err)})
}
