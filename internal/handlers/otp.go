package handlers

import (
	"net/http"
	"net/url"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/forms"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// placeholderEmail is shown when the OTP page is opened without an email
// in the query, e.g. from a stale bookmark.
const placeholderEmail = "your-email@example.com"

func otpEmail(c *gin.Context) string {
	if email := c.Query("email"); email != "" {
		return email
	}
	return placeholderEmail
}

// ShowOTP serves the six-cell verification form. The address being
// verified travels in the query string since the user has no session yet.
func (h *Handler) ShowOTP(c *gin.Context) {
	h.render(c, http.StatusOK, "otp", "", gin.H{
		"Email":           otpEmail(c),
		"ResendRemaining": h.cooldown.Window().Seconds(),
	})
}

// SubmitOTP verifies the emailed code and sends the user to login
func (h *Handler) SubmitOTP(c *gin.Context) {
	email := c.PostForm("email")
	form := forms.OTP{Email: email, Code: c.PostForm("otp")}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "otp", "", gin.H{
			"Errors":          errs,
			"Email":           email,
			"ResendRemaining": h.cooldown.Window().Seconds(),
		})
		return
	}

	if err := h.api.VerifyOTP(c.Request.Context(), email, form.Code); err != nil {
		metrics.OTPVerifications.WithLabelValues("error").Inc()
		h.render(c, http.StatusUnprocessableEntity, "otp", "", gin.H{
			"Errors":          forms.Errors{"form": educhain.ErrorMessage(err, "Invalid or expired code")},
			"Email":           email,
			"ResendRemaining": h.cooldown.Window().Seconds(),
		})
		return
	}

	metrics.OTPVerifications.WithLabelValues("success").Inc()
	setFlash(c, "success", "Email verified! You can sign in now.")
	redirect(c, "/login")
}

// ResendOTP re-arms the countdown. The backend re-sends the code on its
// own schedule; there is no resend endpoint to call, so this only
// throttles how often the button can be pressed.
func (h *Handler) ResendOTP(c *gin.Context) {
	email := c.PostForm("email")

	if ok, _ := h.cooldown.Allow(email); !ok {
		setFlash(c, "error", "Please wait before requesting another code.")
	} else {
		setFlash(c, "success", "A new code is on its way.")
	}

	redirect(c, "/otp?email="+url.QueryEscape(email))
}
