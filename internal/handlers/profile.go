package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/forms"
	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxProfileImageBytes caps uploads before they are streamed upstream
const maxProfileImageBytes = 5 << 20

// Profile serves the profile page: the user's details plus their skill
// postings, fetched concurrently.
func (h *Handler) Profile(c *gin.Context) {
	s, _ := session.FromContext(c)
	ctx := c.Request.Context()

	var (
		wg        sync.WaitGroup
		user      *models.User
		skills    []models.Skill
		userErr   error
		skillsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = h.api.User(ctx, s.Token, s.UserID)
	}()
	go func() {
		defer wg.Done()
		skills, skillsErr = h.api.UserSkills(ctx, s.Token, s.UserID)
	}()
	wg.Wait()

	if h.expiredSession(c, userErr) || h.expiredSession(c, skillsErr) {
		return
	}
	if userErr != nil {
		logger.LogError(userErr, "Failed to load profile", zap.Int64("user_id", s.UserID))
		h.render(c, http.StatusOK, "profile", "profile", gin.H{
			"Error": educhain.ErrorMessage(userErr, "Could not load your profile."),
		})
		return
	}
	if skillsErr != nil {
		logger.LogError(skillsErr, "Failed to load skills", zap.Int64("user_id", s.UserID))
	}

	var teach, learn []models.Skill
	for _, skill := range skills {
		if skill.Type == models.SkillTypeTeach {
			teach = append(teach, skill)
		} else {
			learn = append(learn, skill)
		}
	}

	h.render(c, http.StatusOK, "profile", "profile", gin.H{
		"User":          user,
		"TeachSkills":   teach,
		"LearnSkills":   learn,
		"Categories":    models.SkillCategories,
		"Proficiencies": models.SkillProficiencies,
	})
}

// UpdateProfile saves the edit form and refreshes the session cookie so
// the sidebar shows the new name immediately.
func (h *Handler) UpdateProfile(c *gin.Context) {
	s, _ := session.FromContext(c)

	form := forms.Profile{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Bio:       c.PostForm("bio"),
	}
	if errs := form.Validate(); !errs.Valid() {
		setFlash(c, "error", "First and last name are required.")
		redirect(c, "/profile")
		return
	}

	payload := form.Payload()
	payload.ProfileImage = s.ProfileImage

	updated, err := h.api.UpdateUser(c.Request.Context(), s.Token, s.UserID, payload)
	if err != nil {
		metrics.ProfileUpdates.WithLabelValues("error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not save your profile."))
		redirect(c, "/profile")
		return
	}

	s.Name = updated.FirstName
	s.ProfileImage = updated.ProfileImage
	if err := h.sessions.Refresh(c, s); err != nil {
		logger.LogError(err, "Failed to refresh session after profile update", zap.Int64("user_id", s.UserID))
	}

	metrics.ProfileUpdates.WithLabelValues("success").Inc()
	setFlash(c, "success", "Profile saved.")
	redirect(c, "/profile")
}

// UploadProfileImage forwards the photo to the backend and stores the
// returned image URL in the session.
func (h *Handler) UploadProfileImage(c *gin.Context) {
	s, _ := session.FromContext(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		setFlash(c, "error", "Please choose an image to upload.")
		redirect(c, "/profile")
		return
	}
	defer file.Close() //nolint:errcheck

	if header.Size > maxProfileImageBytes {
		setFlash(c, "error", "Image is too large. Keep it under 5 MB.")
		redirect(c, "/profile")
		return
	}

	updated, err := h.api.UploadProfileImage(c.Request.Context(), s.Token, s.UserID, header.Filename, file)
	if err != nil {
		metrics.ProfileImageUploads.WithLabelValues("error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not upload the image."))
		redirect(c, "/profile")
		return
	}

	s.ProfileImage = updated.ProfileImage
	if err := h.sessions.Refresh(c, s); err != nil {
		logger.LogError(err, "Failed to refresh session after image upload", zap.Int64("user_id", s.UserID))
	}

	metrics.ProfileImageUploads.WithLabelValues("success").Inc()
	setFlash(c, "success", "Photo updated.")
	redirect(c, "/profile")
}

func (h *Handler) skillForm(c *gin.Context) forms.Skill {
	return forms.Skill{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Proficiency: c.PostForm("proficiency"),
		Type:        c.PostForm("type"),
		Tags:        c.PostForm("tags"),
	}
}

// AddSkill creates a new skill posting from the profile page's modal
func (h *Handler) AddSkill(c *gin.Context) {
	s, _ := session.FromContext(c)

	form := h.skillForm(c)
	if errs := form.Validate(); !errs.Valid() {
		setFlash(c, "error", "Title, description and type are required.")
		redirect(c, "/profile")
		return
	}

	if _, err := h.api.AddSkill(c.Request.Context(), s.Token, form.Payload(s.UserID)); err != nil {
		metrics.SkillSaves.WithLabelValues("create", "error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not add the skill."))
		redirect(c, "/profile")
		return
	}

	metrics.SkillSaves.WithLabelValues("create", "success").Inc()
	setFlash(c, "success", "Skill added.")
	redirect(c, "/profile")
}

// UpdateSkill saves edits to an existing posting
func (h *Handler) UpdateSkill(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That skill no longer exists.")
		redirect(c, "/profile")
		return
	}

	form := h.skillForm(c)
	if errs := form.Validate(); !errs.Valid() {
		setFlash(c, "error", "Title, description and type are required.")
		redirect(c, "/profile")
		return
	}

	if _, err := h.api.UpdateSkill(c.Request.Context(), s.Token, id, form.Payload(s.UserID)); err != nil {
		metrics.SkillSaves.WithLabelValues("update", "error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not save the skill."))
		redirect(c, "/profile")
		return
	}

	metrics.SkillSaves.WithLabelValues("update", "success").Inc()
	setFlash(c, "success", "Skill saved.")
	redirect(c, "/profile")
}

// DeleteSkill removes a posting. The template asks for confirmation
// before submitting this form.
func (h *Handler) DeleteSkill(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That skill no longer exists.")
		redirect(c, "/profile")
		return
	}

	if err := h.api.DeleteSkill(c.Request.Context(), s.Token, id); err != nil {
		metrics.SkillSaves.WithLabelValues("delete", "error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not delete the skill."))
		redirect(c, "/profile")
		return
	}

	metrics.SkillSaves.WithLabelValues("delete", "success").Inc()
	setFlash(c, "success", "Skill deleted.")
	redirect(c, "/profile")
}
