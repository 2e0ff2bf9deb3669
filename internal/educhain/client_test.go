package educhain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/educhain/educhain-web/internal/models"
	"github.com/educhain/educhain-web/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/api", httpclient.NewStandardClient())
	require.NoError(t, err)
	return client
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("", httpclient.NewStandardClient())
	assert.Error(t, err)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload models.LoginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "jane@example.com", payload.Email)

		json.NewEncoder(w).Encode(models.LoginResponse{ //nolint:errcheck
			Token:     "backend-token",
			UserID:    42,
			Email:     "jane@example.com",
			FirstName: "Jane",
			Role:      models.RoleMentor,
		})
	})

	resp, err := client.Login(context.Background(), models.LoginPayload{
		Email:    "jane@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "backend-token", resp.Token)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, models.RoleMentor, resp.Role)
}

func TestClient_Login_OddEmailStillSent(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload models.LoginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		got = payload.Email
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`)) //nolint:errcheck
	})

	// the pages only demand a rough name@host shape; the backend decides
	// whether the address is real
	_, err := client.Login(context.Background(), models.LoginPayload{
		Email:    "a@@b.com",
		Password: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, "a@@b.com", got)
}

func TestClient_Login_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`)) //nolint:errcheck
	})

	_, err := client.Login(context.Background(), models.LoginPayload{
		Email:    "jane@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message())
}

func TestClient_VerifyOTP_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/verify-otp", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "123456", r.URL.Query().Get("otp"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.VerifyOTP(context.Background(), "jane@example.com", "123456")
	assert.NoError(t, err)
}

func TestClient_ForgotPassword_QueryParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/forgot-password", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.ForgotPassword(context.Background(), "jane@example.com")
	assert.NoError(t, err)
}

func TestClient_UserSkills_BearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/skills/user/42", r.URL.Path)
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":1,"title":"Go","type":"TEACH"}]`)) //nolint:errcheck
	})

	skills, err := client.UserSkills(context.Background(), "backend-token", 42)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Title)
	assert.Equal(t, models.SkillTypeTeach, skills[0].Type)
}

func TestClient_ExploreSkills(t *testing.T) {
	t.Run("with query", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/skills/explore", r.URL.Path)
			assert.Equal(t, "guitar", r.URL.Query().Get("query"))
			w.Write([]byte(`[]`)) //nolint:errcheck
		})

		_, err := client.ExploreSkills(context.Background(), "tok", "guitar")
		assert.NoError(t, err)
	})

	t.Run("empty query omits parameter", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			w.Write([]byte(`[]`)) //nolint:errcheck
		})

		_, err := client.ExploreSkills(context.Background(), "tok", "")
		assert.NoError(t, err)
	})
}

func TestClient_UpdateRequestStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/skill-requests/7", r.URL.Path)

		var payload models.UpdateRequestStatusPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, models.RequestAccepted, payload.Status)
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateRequestStatus(context.Background(), "tok", 7, models.RequestAccepted)
	assert.NoError(t, err)
}

func TestClient_CompleteMeeting(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/meetings/9/complete", r.URL.Path)

		var payload models.CompleteMeetingPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 5, payload.Rating)
		assert.Equal(t, "Great session", payload.Feedback)
		w.WriteHeader(http.StatusOK)
	})

	err := client.CompleteMeeting(context.Background(), "tok", 9, models.CompleteMeetingPayload{
		Rating:   5,
		Feedback: "Great session",
	})
	assert.NoError(t, err)
}

func TestClient_UploadProfileImage_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/42/image", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close() //nolint:errcheck
		assert.Equal(t, "avatar.png", header.Filename)

		json.NewEncoder(w).Encode(models.User{ID: 42, ProfileImage: "https://cdn.example.com/avatar.png"}) //nolint:errcheck
	})

	user, err := client.UploadProfileImage(context.Background(), "tok", 42, "avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", user.ProfileImage)
}

func TestClient_UnreadCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/unread-count", r.URL.Path)
		w.Write([]byte(`3`)) //nolint:errcheck
	})

	count, err := client.UnreadCount(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestClient_DashboardStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		w.Write([]byte(`{"averageRating":4.5,"totalSessions":12,"totalSkills":3,"pendingRequests":2,"nextMeeting":{"title":"Go basics","duration":60}}`)) //nolint:errcheck
	})

	stats, err := client.DashboardStats(context.Background(), "tok")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
	assert.Equal(t, 12, stats.TotalSessions)
	require.NotNil(t, stats.NextMeeting)
	assert.Equal(t, "Go basics", stats.NextMeeting.Title)
}
