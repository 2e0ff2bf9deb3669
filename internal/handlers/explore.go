package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/educhain/educhain-web/internal/educhain"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Explore serves the marketplace, filtered by the search box when a query
// is present. The viewer's own postings are filtered out.
func (h *Handler) Explore(c *gin.Context) {
	s, _ := session.FromContext(c)
	query := c.Query("q")

	skills, err := h.api.ExploreSkills(c.Request.Context(), s.Token, query)
	if h.expiredSession(c, err) {
		return
	}
	if err != nil {
		logger.LogError(err, "Failed to load marketplace", zap.Int64("user_id", s.UserID))
		h.render(c, http.StatusOK, "explore", "explore", gin.H{
			"Query": query,
			"Error": educhain.ErrorMessage(err, "Could not load the marketplace right now."),
		})
		return
	}

	filtered := skills[:0]
	for _, skill := range skills {
		if skill.User == nil || skill.User.ID != s.UserID {
			filtered = append(filtered, skill)
		}
	}

	h.render(c, http.StatusOK, "explore", "explore", gin.H{
		"Query":  query,
		"Skills": filtered,
	})
}

// Connect sends a connection request for a skill and returns to the
// marketplace with the same search intact.
func (h *Handler) Connect(c *gin.Context) {
	s, _ := session.FromContext(c)

	skillID, err := strconv.ParseInt(c.Param("skillId"), 10, 64)
	if err != nil {
		setFlash(c, "error", "That skill no longer exists.")
		redirect(c, "/explore")
		return
	}

	back := "/explore"
	if query := c.PostForm("q"); query != "" {
		back += "?q=" + url.QueryEscape(query)
	}

	if err := h.api.SendConnectionRequest(c.Request.Context(), s.Token, skillID); err != nil {
		metrics.ConnectionRequests.WithLabelValues("error").Inc()
		setFlash(c, "error", educhain.ErrorMessage(err, "Could not send the request."))
		redirect(c, back)
		return
	}

	metrics.ConnectionRequests.WithLabelValues("success").Inc()
	setFlash(c, "success", "Request sent!")
	redirect(c, back)
}
