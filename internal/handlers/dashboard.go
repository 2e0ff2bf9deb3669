package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/internal/session"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dashboard fetches stats and notifications concurrently. Either fetch
// failing degrades its card to empty rather than failing the page.
func (h *Handler) Dashboard(c *gin.Context) {
	s, _ := session.FromContext(c)
	ctx := c.Request.Context()

	var (
		wg            sync.WaitGroup
		stats         *models.DashboardStats
		notifications []models.Notification
		statsErr      error
		notifErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = h.api.DashboardStats(ctx, s.Token)
	}()
	go func() {
		defer wg.Done()
		notifications, notifErr = h.api.Notifications(ctx, s.Token)
	}()
	wg.Wait()

	if h.expiredSession(c, statsErr) || h.expiredSession(c, notifErr) {
		return
	}
	if statsErr != nil {
		logger.LogError(statsErr, "Failed to load dashboard stats", zap.Int64("user_id", s.UserID))
		stats = &models.DashboardStats{}
	}
	if notifErr != nil {
		logger.LogError(notifErr, "Failed to load notifications", zap.Int64("user_id", s.UserID))
	}

	h.render(c, http.StatusOK, "dashboard", "dashboard", gin.H{
		"Stats":         stats,
		"Notifications": notifications,
		"UnreadCount":   models.UnreadCount(notifications),
	})
}

// MarkNotificationRead is the JSON endpoint behind the notification
// dropdown's click handler. The page updates optimistically; this call
// just persists the read flag.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	s, _ := session.FromContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.api.MarkNotificationRead(c.Request.Context(), s.Token, id); err != nil {
		metrics.NotificationReads.WithLabelValues("error").Inc()
		logger.LogError(err, "Failed to mark notification read",
			zap.Int64("user_id", s.UserID),
			zap.Int64("notification_id", id))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not mark notification read"})
		return
	}

	metrics.NotificationReads.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
