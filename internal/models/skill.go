package models

// SkillType distinguishes an offer to teach from a request to learn
type SkillType string

const (
	SkillTypeTeach SkillType = "TEACH"
	SkillTypeLearn SkillType = "LEARN"
)

// Skill categories and proficiency levels offered in the skill form.
// These mirror the options the backend accepts.
var (
	SkillCategories    = []string{"Technology", "Design", "Business", "Music", "Language", "Other"}
	SkillProficiencies = []string{"Beginner", "Intermediate", "Advanced", "Expert"}
)

// Skill is a postable unit representing either an offer to teach or a
// request to learn a topic. It is backend-owned; this struct is a transient
// mirror of a list response.
type Skill struct {
	ID          int64     `json:"id"`
	SkillID     int64     `json:"skillId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Proficiency string    `json:"proficiency,omitempty"`
	Type        SkillType `json:"type"`
	Tags        []string  `json:"tags,omitempty"`
	User        *User     `json:"user,omitempty"`
}

// Key returns the skill's identifier. Some backend list endpoints return the
// id under skillId instead of id, so both are checked.
func (s *Skill) Key() int64 {
	if s.SkillID != 0 {
		return s.SkillID
	}
	return s.ID
}

// SkillPayload is the body for skill create and update calls
type SkillPayload struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description" binding:"required,max=2000"`
	Category    string    `json:"category" binding:"required"`
	Proficiency string    `json:"proficiency,omitempty"`
	Type        SkillType `json:"type" binding:"required,oneof=TEACH LEARN"`
	UserID      int64     `json:"userId"`
	Tags        []string  `json:"tags"`
}
