package educhain

import (
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/educhain/educhain-web/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_Message(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json message field", `{"message":"Email already registered"}`, "Email already registered"},
		{"json error field", `{"error":"Invalid OTP"}`, "Invalid OTP"},
		{"quoted plain string", `"User not found"`, "User not found"},
		{"raw text", "service unavailable", "service unavailable"},
		{"empty body", "", "Something went wrong! Please try again."},
		{"blank body", "   ", "Something went wrong! Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: 400, Body: tt.body}
			assert.Equal(t, tt.want, err.Message())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(&APIError{StatusCode: http.StatusUnauthorized}, apperrors.ErrUnauthorized))
	assert.True(t, errors.Is(&APIError{StatusCode: http.StatusForbidden}, apperrors.ErrUnauthorized))
	assert.True(t, errors.Is(&APIError{StatusCode: http.StatusNotFound}, apperrors.ErrNotFound))
	assert.True(t, errors.Is(&APIError{StatusCode: http.StatusBadRequest}, apperrors.ErrInvalidInput))
	assert.True(t, errors.Is(&APIError{StatusCode: http.StatusBadGateway}, apperrors.ErrUpstream))
}

func TestErrorMessage(t *testing.T) {
	apiErr := &APIError{StatusCode: 409, Body: `{"message":"Request already sent"}`}
	assert.Equal(t, "Request already sent", ErrorMessage(apiErr, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: timeout"), "fallback"))
}
