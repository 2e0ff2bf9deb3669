package handlers

import (
	"net/http"
	"net/url"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/forms"
	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Landing serves the public home page. Signed-in visitors go straight to
// their dashboard.
func (h *Handler) Landing(c *gin.Context) {
	if _, ok := session.FromContext(c); ok {
		redirect(c, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "landing", "", nil)
}

// ShowLogin serves the sign-in form
func (h *Handler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login", "", nil)
}

// SubmitLogin validates the form locally, then exchanges credentials for a
// backend token and establishes the session cookie.
func (h *Handler) SubmitLogin(c *gin.Context) {
	form := forms.Login{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "login", "", gin.H{
			"Errors": errs,
			"Email":  form.Email,
		})
		return
	}

	login, err := h.api.Login(c.Request.Context(), models.LoginPayload{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		h.render(c, http.StatusUnauthorized, "login", "", gin.H{
			"Errors": forms.Errors{"form": educhain.ErrorMessage(err, "Invalid email or password")},
			"Email":  form.Email,
		})
		return
	}

	if err := h.sessions.Establish(c, login); err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		logger.LogError(err, "Failed to establish session")
		h.render(c, http.StatusInternalServerError, "login", "", gin.H{
			"Errors": forms.Errors{"form": "Something went wrong! Please try again."},
			"Email":  form.Email,
		})
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	redirect(c, "/dashboard")
}

// ShowRegister serves the sign-up form
func (h *Handler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register", "", gin.H{
		"Role": "LEARNER",
	})
}

// SubmitRegister creates the account and sends the user to OTP
// verification, carrying the email along so the verify call can identify
// the account.
func (h *Handler) SubmitRegister(c *gin.Context) {
	form := forms.Register{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Role:      c.PostForm("role"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "register", "", gin.H{
			"Errors":    errs,
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
			"Role":      form.Role,
		})
		return
	}

	if err := h.api.Register(c.Request.Context(), form.Payload()); err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		h.render(c, http.StatusUnprocessableEntity, "register", "", gin.H{
			"Errors":    forms.Errors{"form": educhain.ErrorMessage(err, "Registration failed. Please try again.")},
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
			"Email":     form.Email,
			"Role":      form.Role,
		})
		return
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	logger.Info("User registered", zap.String("email", form.Email))
	redirect(c, "/otp?email="+url.QueryEscape(form.Email))
}

// Logout clears the session cookie. The backend token is simply abandoned,
// there is no server-side logout call.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	redirect(c, "/login")
}
