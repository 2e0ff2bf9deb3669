package models

// UserRole is the role selected at registration. It is only a UI default
// (e.g. which skill type a new posting pre-selects); the per-exchange
// mentor/learner roles are derived, not stored.
type UserRole string

const (
	RoleLearner UserRole = "LEARNER"
	RoleMentor  UserRole = "MENTOR"
)

// User is the client-visible profile of a platform user
type User struct {
	ID            int64    `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	ProfileImage  string   `json:"profileImage,omitempty"`
	Role          UserRole `json:"role,omitempty"`
	AverageRating float64  `json:"averageRating,omitempty"`
	TotalReviews  int      `json:"totalReviews,omitempty"`
}

// FullName joins first and last name for display
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// RegisterPayload is the body for the register call
type RegisterPayload struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	Email     string   `json:"email" binding:"required"`
	Password  string   `json:"password" binding:"required,min=6"`
	Role      UserRole `json:"role" binding:"required,oneof=LEARNER MENTOR"`
}

// LoginPayload is the body for the login call. Email shape is checked by
// the page forms; anything they let through goes to the backend as-is.
type LoginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse is the backend's answer to a successful login. ProfileImage
// is absent when the user has no photo set; the session must then drop any
// previously cached image.
type LoginResponse struct {
	Token        string   `json:"token"`
	UserID       int64    `json:"userId"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	Role         UserRole `json:"role"`
	ProfileImage string   `json:"profileImage,omitempty"`
}

// ResetPasswordPayload is the body for the password reset call
type ResetPasswordPayload struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateUserPayload is the full profile object submitted on edit. The
// backend replaces the profile wholesale, so the unchanged fields are sent
// back too.
type UpdateUserPayload struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Bio          string `json:"bio" binding:"max=2000"`
	ProfileImage string `json:"profileImage,omitempty"`
}
