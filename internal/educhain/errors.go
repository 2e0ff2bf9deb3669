package educhain

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/educhain/educhain-web/pkg/errors"
)

// APIError carries a non-2xx backend response through to the page that
// issued the call. The body is preserved unchanged so backend messages can
// be surfaced verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("educhain api: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code onto the shared sentinel errors so callers
// can branch with errors.Is without inspecting status codes themselves.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	default:
		return apperrors.ErrUpstream
	}
}

// Message extracts a display message from the error body. JSON bodies with a
// message or error field win; otherwise the raw body is returned, and an
// empty body falls back to a generic string.
func (e *APIError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return "Something went wrong! Please try again."
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	// Plain-text bodies arrive JSON-quoted from some endpoints
	var quoted string
	if err := json.Unmarshal([]byte(body), &quoted); err == nil && quoted != "" {
		return quoted
	}

	return body
}

// ErrorMessage returns a user-facing message for any error from the client,
// falling back to the given default for transport-level failures.
func ErrorMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Message()
	}
	return fallback
}
