package models

// RequestStatus represents the status of a connection request
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// ConnectionRequest is a proposal from one user to engage with another's
// skill posting. Status transitions are driven by accept/reject actions and
// enforced by the backend.
type ConnectionRequest struct {
	ID        int64         `json:"id"`
	Requester *User         `json:"requester"`
	Skill     *Skill        `json:"skill"`
	Status    RequestStatus `json:"status"`
}

// UpdateRequestStatusPayload is the body for the status-update call
type UpdateRequestStatusPayload struct {
	Status RequestStatus `json:"status" binding:"required,oneof=PENDING ACCEPTED REJECTED"`
}

// RequestTab selects which request list a view shows
type RequestTab string

const (
	TabReceived RequestTab = "received"
	TabSent     RequestTab = "sent"
)

// Valid reports whether the tab is one of the two known lists
func (t RequestTab) Valid() bool {
	return t == TabReceived || t == TabSent
}
