package models

// ExchangeRole is a per-exchange role derived from skill type and
// participant identity. It is not a stored user attribute.
type ExchangeRole string

const (
	ExchangeMentor  ExchangeRole = "mentor"
	ExchangeLearner ExchangeRole = "learner"
	ExchangeNone    ExchangeRole = ""
)

// MentorID derives who teaches in the exchange behind a connection request:
// a LEARN posting is a request to be taught, so the requester is the one
// offering to teach; for any other type the skill's poster teaches. The
// requests and meetings views must both go through this function so they
// never disagree.
func MentorID(skill *Skill, requesterID int64) int64 {
	if skill == nil {
		return 0
	}
	if skill.Type == SkillTypeLearn {
		return requesterID
	}
	if skill.User != nil {
		return skill.User.ID
	}
	return 0
}

// MentorID derives the mentor for this request's exchange
func (r *ConnectionRequest) MentorID() int64 {
	var requesterID int64
	if r.Requester != nil {
		requesterID = r.Requester.ID
	}
	return MentorID(r.Skill, requesterID)
}

// IsMentor reports whether userID is the derived mentor for this request
func (r *ConnectionRequest) IsMentor(userID int64) bool {
	return userID != 0 && r.MentorID() == userID
}

// RoleOf returns the viewer's relationship to a meeting by id comparison
func (m *Meeting) RoleOf(userID int64) ExchangeRole {
	if userID == 0 {
		return ExchangeNone
	}
	if m.Learner != nil && m.Learner.ID == userID {
		return ExchangeLearner
	}
	if m.Mentor != nil && m.Mentor.ID == userID {
		return ExchangeMentor
	}
	return ExchangeNone
}
