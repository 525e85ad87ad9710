package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/grubworks/grubbot/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgNoActiveOrderError  = "No open order in that channel"
	ErrMsgOrderClosedError    = "That order is already closed"
	ErrMsgPlaceNotFoundError  = "Place not found"
	ErrMsgNothingToApplyError = "Nothing to apply"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses without leaking internal detail.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNoActiveOrder):
		return http.StatusNotFound, ErrMsgNoActiveOrderError
	case errors.Is(err, domain.ErrOrderClosed):
		return http.StatusConflict, ErrMsgOrderClosedError
	case errors.Is(err, domain.ErrPlaceNotFound):
		return http.StatusBadRequest, ErrMsgPlaceNotFoundError
	case errors.Is(err, domain.ErrNothingToApply):
		return http.StatusBadRequest, ErrMsgNothingToApplyError
	}

	// Wrapped service errors keep their base classification
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
