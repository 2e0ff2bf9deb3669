package otp

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cooldown throttles OTP resends per email address. An entry in the cache
// means that address asked for a resend within the window and must wait.
type Cooldown struct {
	store  *cache.Cache
	window time.Duration
}

// NewCooldown creates a cooldown with the given window between resends
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		store:  cache.New(window, 2*window),
		window: window,
	}
}

// Allow arms the cooldown for email if it is not already armed. It returns
// false, with the time remaining, while a previous resend is still cooling
// down.
func (c *Cooldown) Allow(email string) (bool, time.Duration) {
	if armedAt, found := c.store.Get(email); found {
		remaining := c.window - time.Since(armedAt.(time.Time))
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining
	}

	c.store.Set(email, time.Now(), c.window)
	return true, 0
}

// Window returns the configured cooldown duration
func (c *Cooldown) Window() time.Duration {
	return c.window
}
