package sessiontoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", "educhain-web", 24)

	token, err := m.Generate(Claims{
		APIToken:     "bearer-abc",
		UserID:       "42",
		Email:        "priya@example.com",
		Name:         "Priya",
		Role:         "LEARNER",
		ProfileImage: "https://cdn.example.com/p/42.png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", claims.APIToken)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.Equal(t, "Priya", claims.Name)
	assert.Equal(t, "LEARNER", claims.Role)
	assert.Equal(t, "https://cdn.example.com/p/42.png", claims.ProfileImage)
	assert.Equal(t, "educhain-web", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestManager_Validate_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", "educhain-web", 24)
	other := NewManager("secret-b", "educhain-web", 24)

	token, err := m.Generate(Claims{UserID: "1"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Validate_Expired(t *testing.T) {
	m := NewManager("test-secret", "educhain-web", 24)
	m.ttl = -time.Minute

	token, err := m.Generate(Claims{UserID: "1"})
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_Validate_Garbage(t *testing.T) {
	m := NewManager("test-secret", "educhain-web", 24)

	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
