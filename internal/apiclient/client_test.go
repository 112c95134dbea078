package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	apperrors "github.com/target/carematch-ui/internal/errors"
	mockauth "github.com/target/carematch-ui/internal/mocks/auth"
	"github.com/target/carematch-ui/internal/observability/metrics"
)

func newFactory(t *testing.T, baseURL string) *Factory {
	t.Helper()
	f, err := NewFactory(Config{BaseURL: baseURL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return f
}

func TestClient_SendsBearerTokenAndJSON(t *testing.T) {
	var gotAuth, gotType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reviews", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"rev-1"}`)
	}))
	defer srv.Close()

	sessions := mockauth.NewMemorySessionStore(domainauth.Session{Token: "tok-9", Role: domainauth.RoleEmployer})
	client := newFactory(t, srv.URL).Client(sessions)

	var out struct {
		ID string `json:"id"`
	}
	err := client.Do(context.Background(), http.MethodPost, "/reviews", map[string]any{"rating": 5}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-9", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, float64(5), gotBody["rating"])
	assert.Equal(t, "rev-1", out.ID)
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newFactory(t, srv.URL).Client(mockauth.NewMemorySessionStore(domainauth.Session{}))
	var out map[string]any
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/auth/status", nil, &out))
	assert.Nil(t, out)

	nilSessions := newFactory(t, srv.URL).Client(nil)
	require.NoError(t, nilSessions.Do(context.Background(), http.MethodGet, "/x", nil, nil))
}

func TestClient_UnauthorizedIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"token expired"}`)
	}))
	defer srv.Close()

	client := newFactory(t, srv.URL).Client(mockauth.NewMemorySessionStore(domainauth.Session{Token: "old", Role: domainauth.RoleJobseeker}))
	err := client.Do(context.Background(), http.MethodGet, "/reviews/employer", nil, nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "token expired", se.Message)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestClient_StatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		code   apperrors.ErrorCode
	}{
		{http.StatusBadRequest, apperrors.ErrCodeValidation},
		{http.StatusForbidden, apperrors.ErrCodeUnauthorized},
		{http.StatusNotFound, apperrors.ErrCodeNotFound},
		{http.StatusConflict, apperrors.ErrCodeConflict},
		{http.StatusServiceUnavailable, apperrors.ErrCodeUnavailable},
		{http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newFactory(t, srv.URL).Client(nil).Do(context.Background(), http.MethodGet, "/x", nil, nil)
			assert.Equal(t, tt.code, apperrors.GetCode(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newFactory(t, url).Client(nil).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "/x", ne.Path)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.Zero(t, StatusCode(err))
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newFactory(t, srv.URL).Client(nil).Do(ctx, http.MethodGet, "/x", nil, nil)
	assert.True(t, apperrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BasePathAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reviews/check/js-1", r.URL.Path)
		assert.Equal(t, "job=9", r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"reviewed":true}`)
	}))
	defer srv.Close()

	var out struct {
		Reviewed bool `json:"reviewed"`
	}
	err := newFactory(t, srv.URL+"/api/v1/").Client(nil).Do(context.Background(), http.MethodGet, "/reviews/check/js-1?job=9", nil, &out)
	require.NoError(t, err)
	assert.True(t, out.Reviewed)
}

func TestClient_KeepsCookiesPerSession(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "backend_sid", Value: "abc", Path: "/"})
			return
		}
		c, err := r.Cookie("backend_sid")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc", c.Value)
		}
	}))
	defer srv.Close()

	client := newFactory(t, srv.URL).Client(nil)
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/a", nil, nil))
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/b", nil, nil))
	assert.Equal(t, 2, calls)
}

func TestNewFactory_Validation(t *testing.T) {
	_, err := NewFactory(Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	f, err := NewFactory(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, f.base.String())
	assert.Equal(t, 10*time.Second, f.timeout)
}

func TestClient_EmitsRequestMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/applications/app-1/status" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec := &metrics.Recorder{}
	f, err := NewFactory(Config{BaseURL: srv.URL, Metrics: rec})
	require.NoError(t, err)
	client := f.Client(nil)

	require.NoError(t, client.Do(context.Background(), http.MethodPut, "/applications/app-1/status", nil, nil))
	require.Error(t, client.Do(context.Background(), http.MethodGet, "/reviews/check/js-9", nil, nil))

	assert.Equal(t, int64(1), rec.Total(metrics.APIRequest, map[string]string{
		"method": "PUT", "resource": "applications", "result": "success", "status_class": "2xx",
	}))
	assert.Equal(t, int64(1), rec.Total(metrics.APIRequest, map[string]string{
		"resource": "reviews", "result": "error", "error_class": "not_found", "status_class": "4xx",
	}))
}
