package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/educhain/educhain-web/internal/session"
	apperrors "github.com/educhain/educhain-web/pkg/errors"
	"github.com/gin-gonic/gin"
)

const flashCookie = "educhain_flash"

// Flash is a one-shot notice carried across a redirect in a short-lived
// cookie, popped on the next page render.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

func setFlash(c *gin.Context, kind, message string) {
	value := url.QueryEscape(kind + "|" + message)
	c.SetCookie(flashCookie, value, 60, "/", "", false, true)
}

func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(decoded, "|")
	if !found || message == "" {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

// render wraps c.HTML with the fields every template expects: the session
// when one exists, the pending flash, and the active nav item.
func (h *Handler) render(c *gin.Context, status int, name, active string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(c)
	}
	if s, ok := session.FromContext(c); ok {
		data["Session"] = s
	}
	data["Active"] = active

	c.HTML(status, name, data)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// expiredSession handles the backend rejecting the stored bearer token.
// The session cookie is cleared and the user sent back through login.
func (h *Handler) expiredSession(c *gin.Context, err error) bool {
	if err == nil || !apperrors.Is(err, apperrors.ErrUnauthorized) {
		return false
	}
	h.sessions.Clear(c)
	setFlash(c, "error", "Your session expired. Please sign in again.")
	redirect(c, "/login")
	return true
}
