package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldown_Allow(t *testing.T) {
	c := NewCooldown(50 * time.Millisecond)

	ok, _ := c.Allow("jane@example.com")
	assert.True(t, ok)

	ok, remaining := c.Allow("jane@example.com")
	assert.False(t, ok)
	assert.Positive(t, remaining)

	// a different address has its own window
	ok, _ = c.Allow("john@example.com")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	ok, _ = c.Allow("jane@example.com")
	assert.True(t, ok)
}
