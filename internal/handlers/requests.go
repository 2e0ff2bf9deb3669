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

// requestView pairs a connection request with the viewer-specific flags
// the template needs: only the derived mentor of an accepted exchange may
// schedule the meeting, the other side waits for it.
type requestView struct {
	models.ConnectionRequest
	CanSchedule bool
	Waiting     bool
}

// Requests serves the received and sent tabs of the requests page
func (h *Handler) Requests(c *gin.Context) {
	s, _ := session.FromContext(c)

	tab := models.RequestTab(c.Query("tab"))
	if !tab.Valid() {
		tab = models.TabReceived
	}

	var (
		list []models.ConnectionRequest
		err  error
	)
	if tab == models.TabReceived {
		list, err = h.api.ReceivedRequests(c.Request.Context(), s.Token)
	} else {
		list, err = h.api.SentRequests(c.Request.Context(), s.Token)
	}
	if h.expiredSession(c, err) {
		return
	}
	if err != nil {
		logger.LogError(err, "Failed to load requests",
			zap.Int64("user_id", s.UserID),
			zap.String("tab", string(tab)))
		h.render(c, http.StatusOK, "requests", "requests", gin.H{
			"Tab":   tab,
			"Error": educhain.ErrorMessage(err, "Could not load your requests."),
		})
		return
	}

	views := make([]requestView, 0, len(list))
	for _, r := range list {
		accepted := r.Status == models.RequestAccepted
		mentor := r.IsMentor(s.UserID)
		views = append(views, requestView{
			ConnectionRequest: r,
			CanSchedule:       accepted && mentor,
			Waiting:           accepted && !mentor,
		})
	}

	h.render(c, http.StatusOK, "requests", "requests", gin.H{
		"Tab":      tab,
		"Requests": views,
	})
}

// AcceptRequest accepts a received connection request
func (h *Handler) AcceptRequest(c *gin.Context) {
	h.updateRequestStatus(c, models.RequestAccepted)
}

// RejectRequest rejects a received connection request
func (h *Handler) RejectRequest(c *gin.Context) {
	h.updateRequestStatus(c, models.RequestRejected)
}

func (h *Handler) updateRequestStatus(c *gin.Context, status models.RequestStatus) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That request no longer exists.")
		redirect(c, "/requests")
		return
	}

	if err := h.api.UpdateRequestStatus(c.Request.Context(), s.Token, id, status); err != nil {
		metrics.RequestStatusUpdates.WithLabelValues(string(status), "error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not update the request."))
		redirect(c, "/requests")
		return
	}

	metrics.RequestStatusUpdates.WithLabelValues(string(status), "success").Inc()
	if status == models.RequestAccepted {
		setFlash(c, "success", "Request accepted. Time to schedule a session!")
	} else {
		setFlash(c, "success", "Request declined.")
	}
	redirect(c, "/requests")
}

// scheduleTarget loads the request being scheduled and checks the viewer
// is its derived mentor. Both tabs are searched because an accepted
// exchange can be scheduled from either side's list by its mentor.
func (h *Handler) scheduleTarget(c *gin.Context, s session.Session, id int64) (*models.ConnectionRequest, bool) {
	received, err := h.api.ReceivedRequests(c.Request.Context(), s.Token)
	if err != nil {
		return nil, false
	}
	sent, err := h.api.SentRequests(c.Request.Context(), s.Token)
	if err != nil {
		return nil, false
	}

	for _, list := range [][]models.ConnectionRequest{received, sent} {
		for i := range list {
			r := &list[i]
			if r.ID == id && r.Status == models.RequestAccepted && r.IsMentor(s.UserID) {
				return r, true
			}
		}
	}
	return nil, false
}

// ShowScheduleMeeting serves the scheduling form, mentor only
func (h *Handler) ShowScheduleMeeting(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That request no longer exists.")
		redirect(c, "/requests")
		return
	}

	target, ok := h.scheduleTarget(c, s, id)
	if !ok {
		setFlash(c, "error", "Only the mentor of an accepted request can schedule the session.")
		redirect(c, "/requests")
		return
	}

	h.render(c, http.StatusOK, "schedule_meeting", "requests", gin.H{
		"Request":  target,
		"Duration": "60",
	})
}

// SubmitScheduleMeeting creates the meeting from the form, mentor only
func (h *Handler) SubmitScheduleMeeting(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That request no longer exists.")
		redirect(c, "/requests")
		return
	}

	target, ok := h.scheduleTarget(c, s, id)
	if !ok {
		setFlash(c, "error", "Only the mentor of an accepted request can schedule the session.")
		redirect(c, "/requests")
		return
	}

	form := forms.ScheduleMeeting{
		RequestID:   id,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
		Time:        c.PostForm("time"),
		Duration:    c.PostForm("duration"),
		MeetingLink: c.PostForm("meetingLink"),
	}

	if errs := form.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, "schedule_meeting", "requests", gin.H{
			"Request": target,
			"Errors":  errs,
			"Form":    form,
		})
		return
	}

	if _, err := h.api.ScheduleMeeting(c.Request.Context(), s.Token, form.Payload()); err != nil {
		metrics.MeetingSchedules.WithLabelValues("error").Inc()
		h.render(c, http.StatusUnprocessableEntity, "schedule_meeting", "requests", gin.H{
			"Request": target,
			"Errors":  forms.Errors{"form": educhain.ErrorMessage(err, "Could not schedule the meeting.")},
			"Form":    form,
		})
		return
	}

	metrics.MeetingSchedules.WithLabelValues("success").Inc()
	setFlash(c, "success", "Meeting scheduled!")
	redirect(c, "/meetings")
}
