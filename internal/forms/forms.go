package forms

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/educhain/educhain-web/internal/models"
)

// emailPattern mirrors the loose check the UI has always applied: anything
// non-blank around an @ and a dot.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

const minPasswordLength = 6

// Errors maps a field name to its validation message. Forms validate fully
// before any backend call happens; an invalid form never leaves the server.
type Errors map[string]string

// Valid reports whether the form passed validation
func (e Errors) Valid() bool { return len(e) == 0 }

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Login carries the sign-in form
type Login struct {
	Email    string
	Password string
}

func (f *Login) Validate() Errors {
	errs := Errors{}
	if !validEmail(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len(f.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

// Register carries the sign-up form
type Register struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

func (f *Register) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if !validEmail(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len(f.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.Role != string(models.RoleLearner) && f.Role != string(models.RoleMentor) {
		errs["role"] = "Please choose a role"
	}
	return errs
}

// Payload converts the form into the backend registration payload
func (f *Register) Payload() models.RegisterPayload {
	return models.RegisterPayload{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     f.Email,
		Password:  f.Password,
		Role:      models.UserRole(f.Role),
	}
}

// OTP carries the six-digit verification code, one cell per digit in the
// UI, joined back together here.
type OTP struct {
	Email string
	Code  string
}

var otpPattern = regexp.MustCompile(`^\d{6}$`)

func (f *OTP) Validate() Errors {
	errs := Errors{}
	if !otpPattern.MatchString(f.Code) {
		errs["otp"] = "Please enter the 6-digit code"
	}
	return errs
}

// ForgotPassword is step one of the reset flow
type ForgotPassword struct {
	Email string
}

func (f *ForgotPassword) Validate() Errors {
	errs := Errors{}
	if !validEmail(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	return errs
}

// ResetPassword is step two: the emailed code plus the new password
type ResetPassword struct {
	Email       string
	Code        string
	NewPassword string
}

func (f *ResetPassword) Validate() Errors {
	errs := Errors{}
	if !otpPattern.MatchString(f.Code) {
		errs["otp"] = "Please enter the 6-digit code"
	}
	if len(f.NewPassword) < minPasswordLength {
		errs["newPassword"] = "Password must be at least 6 characters"
	}
	return errs
}

// Skill carries the add/edit skill form. Category and proficiency fall back
// to the form's defaults when blank; proficiency only applies to skills
// being taught.
type Skill struct {
	Title       string
	Description string
	Category    string
	Proficiency string
	Type        string
	Tags        string
}

func (f *Skill) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if f.Type != string(models.SkillTypeTeach) && f.Type != string(models.SkillTypeLearn) {
		errs["type"] = "Please choose whether you want to teach or learn this skill"
	}
	return errs
}

// Payload converts the form into the backend skill payload for userID
func (f *Skill) Payload(userID int64) models.SkillPayload {
	category := f.Category
	if category == "" {
		category = "Technology"
	}

	payload := models.SkillPayload{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    category,
		Type:        models.SkillType(f.Type),
		UserID:      userID,
		Tags:        splitTags(f.Tags),
	}

	if payload.Type == models.SkillTypeTeach {
		payload.Proficiency = f.Proficiency
		if payload.Proficiency == "" {
			payload.Proficiency = "Beginner"
		}
	}

	return payload
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ScheduleMeeting carries the scheduling form shown when a request has
// been accepted. Date and time arrive as the browser's separate date and
// time inputs.
type ScheduleMeeting struct {
	RequestID   int64
	Title       string
	Description string
	Date        string
	Time        string
	Duration    string
	MeetingLink string
}

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func (f *ScheduleMeeting) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if !datePattern.MatchString(f.Date) {
		errs["date"] = "Please pick a date"
	}
	if !timePattern.MatchString(f.Time) {
		errs["time"] = "Please pick a time"
	}
	if d, err := strconv.Atoi(f.Duration); err != nil || d < 15 || d > 480 {
		errs["duration"] = "Duration must be between 15 and 480 minutes"
	}
	if strings.TrimSpace(f.MeetingLink) == "" {
		errs["meetingLink"] = "Meeting link is required"
	}
	return errs
}

// Payload combines date and time into the backend's timestamp format
func (f *ScheduleMeeting) Payload() models.ScheduleMeetingPayload {
	duration, _ := strconv.Atoi(f.Duration)
	return models.ScheduleMeetingPayload{
		RequestID:     f.RequestID,
		Title:         strings.TrimSpace(f.Title),
		Description:   strings.TrimSpace(f.Description),
		ScheduledDate: f.Date + "T" + f.Time + ":00",
		Duration:      duration,
		MeetingLink:   strings.TrimSpace(f.MeetingLink),
	}
}

// CompleteMeeting carries the rating form. A zero rating means the learner
// never picked a star and is rejected.
type CompleteMeeting struct {
	Rating   string
	Feedback string
}

func (f *CompleteMeeting) Validate() Errors {
	errs := Errors{}
	if r, err := strconv.Atoi(f.Rating); err != nil || r < 1 || r > 5 {
		errs["rating"] = "Please select a rating"
	}
	return errs
}

// Payload converts the form into the backend completion payload
func (f *CompleteMeeting) Payload() models.CompleteMeetingPayload {
	rating, _ := strconv.Atoi(f.Rating)
	return models.CompleteMeetingPayload{
		Rating:   rating,
		Feedback: strings.TrimSpace(f.Feedback),
	}
}

// Profile carries the profile edit form
type Profile struct {
	FirstName string
	LastName  string
	Bio       string
}

func (f *Profile) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	return errs
}

// Payload converts the form into the backend update payload
func (f *Profile) Payload() models.UpdateUserPayload {
	return models.UpdateUserPayload{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Bio:       strings.TrimSpace(f.Bio),
	}
}
