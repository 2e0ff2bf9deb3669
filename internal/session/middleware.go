package session

import (
	"net/http"

	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Require redirects unauthenticated requests to the login page. A cookie
// that fails validation is cleared before the redirect so the browser does
// not keep resending it.
func (m *Manager) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.Read(c)
		if err != nil {
			if _, cookieErr := c.Cookie(CookieName); cookieErr == nil {
				logger.Debug("Clearing invalid session cookie",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
				m.Clear(c)
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(contextKey, s)
		c.Next()
	}
}

// Optional attaches the session when a valid cookie is present and lets
// the request through either way. Used on pages like the landing page
// that render for both visitors and signed-in users.
func (m *Manager) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := m.Read(c); err == nil {
			c.Set(contextKey, s)
		}
		c.Next()
	}
}
