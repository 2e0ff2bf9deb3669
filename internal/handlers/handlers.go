package handlers

import (
	"net/http"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/otp"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/gin-gonic/gin"
)

// Handler serves every page of the app. It holds no durable state of its
// own: each GET fetches fresh data from the backend and each POST forwards
// a single call, so the backend stays the only source of truth.
type Handler struct {
	api      educhain.API
	sessions *session.Manager
	cooldown *otp.Cooldown
}

// New creates a new Handler
func New(api educhain.API, sessions *session.Manager, cooldown *otp.Cooldown) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		cooldown: cooldown,
	}
}

// RegisterRoutes attaches all page and action routes. authLimiter fronts
// the credential endpoints only.
func (h *Handler) RegisterRoutes(router *gin.Engine, authLimiter gin.HandlerFunc) {
	router.GET("/", h.sessions.Optional(), h.Landing)
	router.GET("/health", h.Health)

	router.GET("/login", h.ShowLogin)
	router.POST("/login", authLimiter, h.SubmitLogin)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", authLimiter, h.SubmitRegister)
	router.GET("/otp", h.ShowOTP)
	router.POST("/otp", authLimiter, h.SubmitOTP)
	router.POST("/otp/resend", authLimiter, h.ResendOTP)
	router.GET("/forgot-password", h.ShowForgotPassword)
	router.POST("/forgot-password", authLimiter, h.SubmitForgotPassword)
	router.POST("/reset-password", authLimiter, h.SubmitResetPassword)
	router.POST("/logout", h.Logout)

	authed := router.Group("", h.sessions.Require())
	{
		authed.GET("/dashboard", h.Dashboard)
		authed.POST("/dashboard/notifications/:id/read", h.MarkNotificationRead)

		authed.GET("/explore", h.Explore)
		authed.POST("/explore/connect/:skillId", h.Connect)

		authed.GET("/requests", h.Requests)
		authed.POST("/requests/:id/accept", h.AcceptRequest)
		authed.POST("/requests/:id/reject", h.RejectRequest)
		authed.GET("/requests/:id/schedule", h.ShowScheduleMeeting)
		authed.POST("/requests/:id/schedule", h.SubmitScheduleMeeting)

		authed.GET("/meetings", h.Meetings)
		authed.POST("/meetings/:id/complete", h.CompleteMeeting)

		authed.GET("/profile", h.Profile)
		authed.POST("/profile", h.UpdateProfile)
		authed.POST("/profile/image", h.UploadProfileImage)
		authed.POST("/profile/skills", h.AddSkill)
		authed.POST("/profile/skills/:id", h.UpdateSkill)
		authed.POST("/profile/skills/:id/delete", h.DeleteSkill)
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
