package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrNotFound = errors.New("deployment not found")
)

// APIError is a non-2xx response from the deployer backend. Message carries
// the backend-supplied error text verbatim when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Unwrap maps 404s onto ErrNotFound so callers can errors.Is against it.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// newAPIError extracts the backend error text from a response body. The
// backend reports failures as {"error": "..."}; older builds use
// {"detail": "..."}.
func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Detail
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}
