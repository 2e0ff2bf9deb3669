package handlers

import (
	"net/http"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/forms"
	"github.com/educhain/educhain-web/internal/models"
	"github.com/gin-gonic/gin"
)

// ShowForgotPassword serves step one of the reset flow: the email form
func (h *Handler) ShowForgotPassword(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot_password", "", gin.H{
		"Step": 1,
	})
}

// SubmitForgotPassword asks the backend to email a reset code, then shows
// step two with the code and new-password fields.
func (h *Handler) SubmitForgotPassword(c *gin.Context) {
	form := forms.ForgotPassword{Email: c.PostForm("email")}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "forgot_password", "", gin.H{
			"Step":   1,
			"Errors": errs,
			"Email":  form.Email,
		})
		return
	}

	if err := h.api.ForgotPassword(c.Request.Context(), form.Email); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "forgot_password", "", gin.H{
			"Step":   1,
			"Errors": forms.Errors{"form": educhain.ErrorMessage(err, "Could not start the reset. Please try again.")},
			"Email":  form.Email,
		})
		return
	}

	h.render(c, http.StatusOK, "forgot_password", "", gin.H{
		"Step":  2,
		"Email": form.Email,
	})
}

// SubmitResetPassword completes step two with the emailed code and the new
// password, then sends the user to login.
func (h *Handler) SubmitResetPassword(c *gin.Context) {
	form := forms.ResetPassword{
		Email:       c.PostForm("email"),
		Code:        c.PostForm("otp"),
		NewPassword: c.PostForm("newPassword"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "forgot_password", "", gin.H{
			"Step":   2,
			"Errors": errs,
			"Email":  form.Email,
		})
		return
	}

	err := h.api.ResetPassword(c.Request.Context(), models.ResetPasswordPayload{
		Email:       form.Email,
		OTP:         form.Code,
		NewPassword: form.NewPassword,
	})
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, "forgot_password", "", gin.H{
			"Step":   2,
			"Errors": forms.Errors{"form": educhain.ErrorMessage(err, "Reset failed. Check the code and try again.")},
			"Email":  form.Email,
		})
		return
	}

	setFlash(c, "success", "Password reset! Sign in with your new password.")
	redirect(c, "/login")
}
