package session

import (
	"net/http"
	"strconv"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/pkg/sessiontoken"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the session cookie set after login
	CookieName = "educhain_session"

	contextKey = "educhain_session_data"
)

// Session is the decoded identity attached to an authenticated request.
// It mirrors what the login response carried: the backend bearer token plus
// the display values pages render without an extra profile fetch.
type Session struct {
	Token        string
	UserID       int64
	Email        string
	Name         string
	Role         string
	ProfileImage string
}

// Manager issues and clears the session cookie. The cookie value is a
// signed token so a tampered cookie fails validation instead of being
// trusted.
type Manager struct {
	tokens *sessiontoken.Manager
	domain string
	secure bool
}

// NewManager creates a new Manager. secure controls the cookie's Secure
// flag and should be true everywhere except local development. domain may
// be empty to scope the cookie to the serving host.
func NewManager(tokens *sessiontoken.Manager, domain string, secure bool) *Manager {
	return &Manager{tokens: tokens, domain: domain, secure: secure}
}

// Establish replaces the session cookie with one built from a fresh login.
// When the login response has no profile image the new session carries
// none, so a stale image from a previous account never survives a login.
func (m *Manager) Establish(c *gin.Context, login *models.LoginResponse) error {
	return m.write(c, sessiontoken.Claims{
		APIToken:     login.Token,
		UserID:       strconv.FormatInt(login.UserID, 10),
		Email:        login.Email,
		Name:         login.FirstName,
		Role:         string(login.Role),
		ProfileImage: login.ProfileImage,
	})
}

// Refresh rewrites the cookie for an existing session with updated display
// values, keeping the same backend token. Used after profile edits.
func (m *Manager) Refresh(c *gin.Context, s Session) error {
	return m.write(c, sessiontoken.Claims{
		APIToken:     s.Token,
		UserID:       strconv.FormatInt(s.UserID, 10),
		Email:        s.Email,
		Name:         s.Name,
		Role:         s.Role,
		ProfileImage: s.ProfileImage,
	})
}

func (m *Manager) write(c *gin.Context, claims sessiontoken.Claims) error {
	signed, err := m.tokens.Generate(claims)
	if err != nil {
		return err
	}

	maxAge := int(m.tokens.TTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, maxAge, "/", m.domain, m.secure, true)
	return nil
}

// Clear removes the session cookie
func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", m.domain, m.secure, true)
}

// Read validates the cookie on the request and returns the session, or an
// error when the cookie is absent, expired or tampered with.
func (m *Manager) Read(c *gin.Context) (Session, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return Session{}, err
	}

	claims, err := m.tokens.Validate(raw)
	if err != nil {
		return Session{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return Session{}, sessiontoken.ErrInvalidClaim
	}

	return Session{
		Token:        claims.APIToken,
		UserID:       userID,
		Email:        claims.Email,
		Name:         claims.Name,
		Role:         claims.Role,
		ProfileImage: claims.ProfileImage,
	}, nil
}

// FromContext returns the session stored by the Require or Optional
// middleware. ok is false on pages served without a session.
func FromContext(c *gin.Context) (Session, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
