package handlers

import (
	"net/http"
	"strconv"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/forms"
	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// meetingView pairs a meeting with the viewer's derived role. Only the
// learner of a scheduled meeting gets the complete-and-rate action.
type meetingView struct {
	models.Meeting
	Role        models.ExchangeRole
	CanComplete bool
}

// Meetings serves the user's scheduled and completed sessions
func (h *Handler) Meetings(c *gin.Context) {
	s, _ := session.FromContext(c)

	meetings, err := h.api.UserMeetings(c.Request.Context(), s.Token, s.UserID)
	if h.expiredSession(c, err) {
		return
	}
	if err != nil {
		logger.LogError(err, "Failed to load meetings", zap.Int64("user_id", s.UserID))
		h.render(c, http.StatusOK, "meetings", "meetings", gin.H{
			"Error": educhain.ErrorMessage(err, "Could not load your meetings."),
		})
		return
	}

	views := make([]meetingView, 0, len(meetings))
	for _, m := range meetings {
		role := m.RoleOf(s.UserID)
		views = append(views, meetingView{
			Meeting:     m,
			Role:        role,
			CanComplete: m.Status == models.MeetingScheduled && role == models.ExchangeLearner,
		})
	}

	h.render(c, http.StatusOK, "meetings", "meetings", gin.H{
		"Meetings": views,
	})
}

// CompleteMeeting records the learner's rating and marks the session
// complete. The mentor cannot rate their own session.
func (h *Handler) CompleteMeeting(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That meeting no longer exists.")
		redirect(c, "/meetings")
		return
	}

	meetings, err := h.api.UserMeetings(c.Request.Context(), s.Token, s.UserID)
	if err != nil {
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not load your meetings."))
		redirect(c, "/meetings")
		return
	}

	var target *models.Meeting
	for i := range meetings {
		if meetings[i].ID == id {
			target = &meetings[i]
			break
		}
	}
	if target == nil || target.Status != models.MeetingScheduled || target.RoleOf(s.UserID) != models.ExchangeLearner {
		setFlash(c, "error", "Only the learner can complete and rate this session.")
		redirect(c, "/meetings")
		return
	}

	form := forms.CompleteMeeting{
		Rating:   c.PostForm("rating"),
		Feedback: c.PostForm("feedback"),
	}
	if errs := form.Validate(); !errs.Valid() {
		setFlash(c, "error", errs["rating"])
		redirect(c, "/meetings")
		return
	}

	if err := h.api.CompleteMeeting(c.Request.Context(), s.Token, id, form.Payload()); err != nil {
		metrics.MeetingCompletions.WithLabelValues("error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not complete the meeting."))
		redirect(c, "/meetings")
		return
	}

	metrics.MeetingCompletions.WithLabelValues("success").Inc()
	setFlash(c, "success", "Thanks for the feedback!")
	redirect(c, "/meetings")
}
