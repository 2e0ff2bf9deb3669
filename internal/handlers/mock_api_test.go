package handlers

import (
	"context"
	"io"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/stretchr/testify/mock"
)

// mockAPI is a testify mock of the backend client
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Register(ctx context.Context, payload models.RegisterPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockAPI) Login(ctx context.Context, payload models.LoginPayload) (*models.LoginResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *mockAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	return m.Called(ctx, email, otp).Error(0)
}

func (m *mockAPI) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAPI) ResetPassword(ctx context.Context, payload models.ResetPasswordPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockAPI) UserSkills(ctx context.Context, token string, userID int64) ([]models.Skill, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockAPI) AddSkill(ctx context.Context, token string, payload models.SkillPayload) (*models.Skill, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *mockAPI) UpdateSkill(ctx context.Context, token string, skillID int64, payload models.SkillPayload) (*models.Skill, error) {
	args := m.Called(ctx, token, skillID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *mockAPI) DeleteSkill(ctx context.Context, token string, skillID int64) error {
	return m.Called(ctx, token, skillID).Error(0)
}

func (m *mockAPI) ExploreSkills(ctx context.Context, token, query string) ([]models.Skill, error) {
	args := m.Called(ctx, token, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockAPI) User(ctx context.Context, token string, userID int64) (*models.User, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAPI) UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) (*models.User, error) {
	args := m.Called(ctx, token, userID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAPI) UploadProfileImage(ctx context.Context, token string, userID int64, filename string, file io.Reader) (*models.User, error) {
	args := m.Called(ctx, token, userID, filename, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAPI) SendConnectionRequest(ctx context.Context, token string, skillID int64) error {
	return m.Called(ctx, token, skillID).Error(0)
}

func (m *mockAPI) ReceivedRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *mockAPI) SentRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *mockAPI) UpdateRequestStatus(ctx context.Context, token string, requestID int64, status models.RequestStatus) error {
	return m.Called(ctx, token, requestID, status).Error(0)
}

func (m *mockAPI) ScheduleMeeting(ctx context.Context, token string, payload models.ScheduleMeetingPayload) (*models.Meeting, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *mockAPI) UserMeetings(ctx context.Context, token string, userID int64) ([]models.Meeting, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (m *mockAPI) CompleteMeeting(ctx context.Context, token string, meetingID int64, payload models.CompleteMeetingPayload) error {
	return m.Called(ctx, token, meetingID, payload).Error(0)
}

func (m *mockAPI) DashboardStats(ctx context.Context, token string) (*models.DashboardStats, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *mockAPI) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockAPI) MarkNotificationRead(ctx context.Context, token string, notificationID int64) error {
	return m.Called(ctx, token, notificationID).Error(0)
}

func (m *mockAPI) UnreadCount(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}
