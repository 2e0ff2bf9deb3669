package models

// Notification is a backend-generated message for the current user
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

// UnreadCount counts the unread notifications in a list. The dashboard
// computes this locally from the fetched list rather than calling the
// dedicated unread-count endpoint.
func UnreadCount(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// DashboardStats is the aggregate the dashboard page renders
type DashboardStats struct {
	AverageRating   float64  `json:"averageRating"`
	TotalSessions   int      `json:"totalSessions"`
	TotalSkills     int      `json:"totalSkills"`
	PendingRequests int      `json:"pendingRequests"`
	NextMeeting     *Meeting `json:"nextMeeting,omitempty"`
}
