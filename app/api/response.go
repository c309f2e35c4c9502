// Package api holds the JSON plumbing shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/goldenhive/inventory/logger"
)

// DefaultMaxBodyBytes caps request bodies when no explicit limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

var (
	// ErrInvalidJSON is returned by DecodeJSON for bodies that are not valid JSON.
	ErrInvalidJSON = errors.New("invalid json body")
	// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// InternalError logs err against the request and answers 500.
// The raw error text is sent only when expose is true.
func InternalError(w http.ResponseWriter, r *http.Request, err error, expose bool) {
	logger.FromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	message := "Internal server error"
	if expose && err != nil {
		message = err.Error()
	}
	WriteError(w, http.StatusInternalServerError, message)
}

// DecodeJSON reads at most maxBytes of the request body into dst.
// An empty body leaves dst untouched and is not an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		default:
			return ErrInvalidJSON
		}
	}
	return nil
}

// WriteDecodeError maps a DecodeJSON failure onto its response.
func WriteDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	WriteError(w, http.StatusBadRequest, "Invalid JSON body")
}
