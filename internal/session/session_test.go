package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/pkg/sessiontoken"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestManager() *Manager {
	return NewManager(sessiontoken.NewManager("test-secret-key", "educhain-web", 24), "", false)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestManager_EstablishAndRead(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	err := m.Establish(c, &models.LoginResponse{
		Token:        "backend-token",
		UserID:       42,
		Email:        "jane@example.com",
		FirstName:    "Jane",
		Role:         models.RoleMentor,
		ProfileImage: "https://cdn.example.com/jane.png",
	})
	require.NoError(t, err)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	rec2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c2.Request.AddCookie(cookie)

	s, err := m.Read(c2)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", s.Token)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, "Jane", s.Name)
	assert.Equal(t, "https://cdn.example.com/jane.png", s.ProfileImage)
}

func TestManager_Establish_DropsStaleImage(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	// login response without a profile image must not carry one over
	require.NoError(t, m.Establish(c, &models.LoginResponse{
		Token:  "t",
		UserID: 1,
		Email:  "a@b.c",
	}))

	cookie := sessionCookie(t, rec)

	rec2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookie)

	s, err := m.Read(c2)
	require.NoError(t, err)
	assert.Empty(t, s.ProfileImage)
}

func TestManager_Read_TamperedCookie(t *testing.T) {
	m := newTestManager()
	other := NewManager(sessiontoken.NewManager("different-secret", "educhain-web", 24), "", false)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, other.Establish(c, &models.LoginResponse{Token: "t", UserID: 1}))

	rec2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(rec2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(sessionCookie(t, rec))

	_, err := m.Read(c2)
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	m := newTestManager()

	router := gin.New()
	router.GET("/dashboard", m.Require(), func(c *gin.Context) {
		s, ok := FromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, s.Email)
	})

	t.Run("no cookie redirects to login", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("garbage cookie is cleared and redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		cleared := sessionCookie(t, rec)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})

	t.Run("valid cookie passes through", func(t *testing.T) {
		loginRec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(loginRec)
		c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
		require.NoError(t, m.Establish(c, &models.LoginResponse{
			Token: "t", UserID: 7, Email: "jane@example.com",
		}))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(sessionCookie(t, loginRec))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "jane@example.com", rec.Body.String())
	})
}

func TestOptional(t *testing.T) {
	m := newTestManager()

	router := gin.New()
	router.GET("/", m.Optional(), func(c *gin.Context) {
		if _, ok := FromContext(c); ok {
			c.String(http.StatusOK, "signed-in")
			return
		}
		c.String(http.StatusOK, "visitor")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "visitor", rec.Body.String())
}
