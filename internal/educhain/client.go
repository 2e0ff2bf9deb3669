package educhain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/pkg/httpclient"
	"github.com/educhain/educhain-web/pkg/logger"
	"github.com/educhain/educhain-web/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// validate checks outbound payloads against their binding tags before a
// request is sent, the same rules gin would apply on the receiving side.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// API is the full surface of the EduChain backend this app consumes. Each
// method is a thin pass-through: method, path, optional body or query,
// bearer token when the operation is authenticated. No retries, no caching.
type API interface {
	Register(ctx context.Context, payload models.RegisterPayload) error
	Login(ctx context.Context, payload models.LoginPayload) (*models.LoginResponse, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, payload models.ResetPasswordPayload) error

	UserSkills(ctx context.Context, token string, userID int64) ([]models.Skill, error)
	AddSkill(ctx context.Context, token string, payload models.SkillPayload) (*models.Skill, error)
	UpdateSkill(ctx context.Context, token string, skillID int64, payload models.SkillPayload) (*models.Skill, error)
	DeleteSkill(ctx context.Context, token string, skillID int64) error
	ExploreSkills(ctx context.Context, token, query string) ([]models.Skill, error)

	User(ctx context.Context, token string, userID int64) (*models.User, error)
	UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) (*models.User, error)
	UploadProfileImage(ctx context.Context, token string, userID int64, filename string, file io.Reader) (*models.User, error)

	SendConnectionRequest(ctx context.Context, token string, skillID int64) error
	ReceivedRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error)
	SentRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error)
	UpdateRequestStatus(ctx context.Context, token string, requestID int64, status models.RequestStatus) error

	ScheduleMeeting(ctx context.Context, token string, payload models.ScheduleMeetingPayload) (*models.Meeting, error)
	UserMeetings(ctx context.Context, token string, userID int64) ([]models.Meeting, error)
	CompleteMeeting(ctx context.Context, token string, meetingID int64, payload models.CompleteMeetingPayload) error

	DashboardStats(ctx context.Context, token string) (*models.DashboardStats, error)
	Notifications(ctx context.Context, token string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, token string, notificationID int64) error
	UnreadCount(ctx context.Context, token string) (int, error)
}

// Client talks to the EduChain REST backend at a fixed base URL
type Client struct {
	baseURL string
	http    httpclient.Client
}

var _ API = (*Client)(nil)

// NewClient creates a new backend client. baseURL includes the /api prefix.
func NewClient(baseURL string, hc httpclient.Client) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty base URL provided")
	}

	logger.Info("EduChain API client initialized", zap.String("base_url", baseURL))

	return &Client{
		baseURL: baseURL,
		http:    hc,
	}, nil
}

// do performs a single JSON round-trip against the backend. A non-2xx
// response becomes an *APIError whose body is passed through unchanged.
func (c *Client) do(ctx context.Context, operation, method, path, token string, query url.Values, body, out any) error {
	start := time.Now()

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		if err := validate.Struct(body); err != nil {
			return fmt.Errorf("invalid %s payload: %w", operation, err)
		}
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.roundTrip(req, operation, start, out)
}

func (c *Client) roundTrip(req *http.Request, operation string, start time.Time, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.record(operation, "error", start, zap.Error(err))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(operation, "error", start, zap.Error(err))
		return fmt.Errorf("%s: failed to read response: %w", operation, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		c.record(operation, "error", start, zap.Int("status_code", resp.StatusCode))
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.record(operation, "error", start, zap.Error(err))
			return fmt.Errorf("%s: failed to decode response: %w", operation, err)
		}
	}

	c.record(operation, "success", start)
	return nil
}

func (c *Client) record(operation, status string, start time.Time, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	metrics.APIClientRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.APIClientRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall(operation, status, duration, fields...)
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, payload models.RegisterPayload) error {
	return c.do(ctx, "register", http.MethodPost, "/auth/register", "", nil, payload, nil)
}

func (c *Client) Login(ctx context.Context, payload models.LoginPayload) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms a registration. Email and code travel as query
// parameters, matching the backend contract.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	q := url.Values{"email": {email}, "otp": {otp}}
	return c.do(ctx, "verify_otp", http.MethodPost, "/auth/verify-otp", "", q, nil, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	q := url.Values{"email": {email}}
	return c.do(ctx, "forgot_password", http.MethodPost, "/auth/forgot-password", "", q, nil, nil)
}

func (c *Client) ResetPassword(ctx context.Context, payload models.ResetPasswordPayload) error {
	return c.do(ctx, "reset_password", http.MethodPost, "/auth/reset-password", "", nil, payload, nil)
}

// --- Skills ---

func (c *Client) UserSkills(ctx context.Context, token string, userID int64) ([]models.Skill, error) {
	var out []models.Skill
	path := "/skills/user/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, "user_skills", http.MethodGet, path, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddSkill(ctx context.Context, token string, payload models.SkillPayload) (*models.Skill, error) {
	var out models.Skill
	if err := c.do(ctx, "add_skill", http.MethodPost, "/skills", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSkill(ctx context.Context, token string, skillID int64, payload models.SkillPayload) (*models.Skill, error) {
	var out models.Skill
	path := "/skills/" + strconv.FormatInt(skillID, 10)
	if err := c.do(ctx, "update_skill", http.MethodPut, path, token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSkill(ctx context.Context, token string, skillID int64) error {
	path := "/skills/" + strconv.FormatInt(skillID, 10)
	return c.do(ctx, "delete_skill", http.MethodDelete, path, token, nil, nil, nil)
}

// ExploreSkills searches the marketplace. An empty query browses the
// backend's default result set.
func (c *Client) ExploreSkills(ctx context.Context, token, query string) ([]models.Skill, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"query": {query}}
	}
	var out []models.Skill
	if err := c.do(ctx, "explore_skills", http.MethodGet, "/skills/explore", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Users ---

func (c *Client) User(ctx context.Context, token string, userID int64) (*models.User, error) {
	var out models.User
	path := "/users/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, "get_user", http.MethodGet, path, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, userID int64, payload models.UpdateUserPayload) (*models.User, error) {
	var out models.User
	path := "/users/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, "update_user", http.MethodPut, path, token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProfileImage replaces the user's photo via a multipart upload, the
// single non-JSON call in the API.
func (c *Client) UploadProfileImage(ctx context.Context, token string, userID int64, filename string, file io.Reader) (*models.User, error) {
	operation := "upload_profile_image"
	start := time.Now()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	reqURL := c.baseURL + "/users/" + strconv.FormatInt(userID, 10) + "/image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var out models.User
	if err := c.roundTrip(req, operation, start, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Connection requests ---

func (c *Client) SendConnectionRequest(ctx context.Context, token string, skillID int64) error {
	path := "/skill-requests/" + strconv.FormatInt(skillID, 10)
	return c.do(ctx, "send_request", http.MethodPost, path, token, nil, nil, nil)
}

func (c *Client) ReceivedRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error) {
	var out []models.ConnectionRequest
	if err := c.do(ctx, "received_requests", http.MethodGet, "/skill-requests/received", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SentRequests(ctx context.Context, token string) ([]models.ConnectionRequest, error) {
	var out []models.ConnectionRequest
	if err := c.do(ctx, "sent_requests", http.MethodGet, "/skill-requests/sent", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRequestStatus(ctx context.Context, token string, requestID int64, status models.RequestStatus) error {
	path := "/skill-requests/" + strconv.FormatInt(requestID, 10)
	payload := models.UpdateRequestStatusPayload{Status: status}
	return c.do(ctx, "update_request_status", http.MethodPut, path, token, nil, payload, nil)
}

// --- Meetings ---

func (c *Client) ScheduleMeeting(ctx context.Context, token string, payload models.ScheduleMeetingPayload) (*models.Meeting, error) {
	var out models.Meeting
	if err := c.do(ctx, "schedule_meeting", http.MethodPost, "/meetings", token, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserMeetings(ctx context.Context, token string, userID int64) ([]models.Meeting, error) {
	var out []models.Meeting
	path := "/meetings/user/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, "user_meetings", http.MethodGet, path, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CompleteMeeting(ctx context.Context, token string, meetingID int64, payload models.CompleteMeetingPayload) error {
	path := "/meetings/" + strconv.FormatInt(meetingID, 10) + "/complete"
	return c.do(ctx, "complete_meeting", http.MethodPut, path, token, nil, payload, nil)
}

// --- Dashboard & notifications ---

func (c *Client) DashboardStats(ctx context.Context, token string) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, "dashboard_stats", http.MethodGet, "/dashboard", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, "notifications", http.MethodGet, "/notifications", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, token string, notificationID int64) error {
	path := "/notifications/" + strconv.FormatInt(notificationID, 10) + "/read"
	return c.do(ctx, "mark_notification_read", http.MethodPut, path, token, nil, nil, nil)
}

func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var out int
	if err := c.do(ctx, "unread_count", http.MethodGet, "/notifications/unread-count", token, nil, nil, &out); err != nil {
		return 0, err
	}
	return out, nil
}
