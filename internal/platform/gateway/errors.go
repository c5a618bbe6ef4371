package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured error response from the Falcon backend:
// {"error": "...", "detail": "...", "timestamp": "..."} plus the HTTP status.
// Responses with non-JSON bodies still yield an APIError carrying the status
// so callers can branch on it uniformly.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"error"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	// Best effort: a non-JSON body leaves Code/Detail empty.
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}

// IsUnauthorized reports whether err is an unauthorized API response.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ErrorDetail extracts the server-supplied detail string from err, falling
// back to the given generic message. Used for user-facing notifications.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
