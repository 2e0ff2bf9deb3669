package models

import "time"

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "SCHEDULED"
	MeetingCompleted MeetingStatus = "COMPLETED"
)

// scheduledDateLayout is the backend's timestamp format for meeting dates.
// It carries no zone; the value is passed through unchanged.
const scheduledDateLayout = "2006-01-02T15:04:05"

// Meeting is a scheduled video session created from an accepted connection
// request. The meeting link points at an external video service.
type Meeting struct {
	ID            int64         `json:"id"`
	Mentor        *User         `json:"mentor"`
	Learner       *User         `json:"learner"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ScheduledDate string        `json:"scheduledDate"`
	Duration      int           `json:"duration"`
	MeetingLink   string        `json:"meetingLink"`
	Status        MeetingStatus `json:"status"`
	Rating        int           `json:"rating,omitempty"`
	Feedback      string        `json:"feedback,omitempty"`
}

// ScheduledAt parses the backend timestamp for display formatting. The zero
// time is returned when the value doesn't parse; callers fall back to the
// raw string.
func (m *Meeting) ScheduledAt() time.Time {
	t, err := time.Parse(scheduledDateLayout, m.ScheduledDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ScheduleMeetingPayload is the body for the meeting-creation call.
// ScheduledDate is the combined date and time from the schedule form in the
// backend's layout.
type ScheduleMeetingPayload struct {
	RequestID     int64  `json:"requestId" binding:"required"`
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description" binding:"max=2000"`
	ScheduledDate string `json:"scheduledDate" binding:"required"`
	Duration      int    `json:"duration" binding:"required,min=15,max=480"`
	MeetingLink   string `json:"meetingLink" binding:"required,url"`
}

// CompleteMeetingPayload is the body for the completion call. Rating is
// required; feedback is optional.
type CompleteMeetingPayload struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"max=2000"`
}
