package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// APIError represents an error response of the JSON API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates an APIError with optional details.
func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{Code: code, Message: message, Status: status}
	if len(details) > 0 {
		err.Details = details[0]
	}

	return err
}

var (
	ErrUnknownCategory = NewAPIError("UNKNOWN_CATEGORY", "Category not found", http.StatusNotFound)
	ErrInternal        = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// writeError writes err as a JSON APIError, wrapping unknown errors as internal ones.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewAPIError("UNKNOWN_ERROR", "Unexpected error", ErrInternal.Status, err.Error())
	}

	if apiErr.Status >= http.StatusInternalServerError {
		log.Error("Server error", "error", apiErr.Error(), "details", apiErr.Details)
	}

	writeJSON(w, log, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write reply", "error", err)
	}
}
