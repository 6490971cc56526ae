package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gayish/internal/service"
)

func newTestMiddleware(t *testing.T) (*AuthMiddleware, string, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	authSvc := service.NewAuthService()
	resp, err := authSvc.RegisterDevice()
	require.NoError(t, err)
	return NewAuthMiddleware(authSvc), resp.Token, resp.DeviceID
}

func echoDeviceID() (http.Handler, *string) {
	var got string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetDeviceID(r.Context())
	}), &got
}

func TestRequireDevice_BearerHeader(t *testing.T) {
	mw, token, deviceID := newTestMiddleware(t)
	next, got := echoDeviceID()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.RequireDevice(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, deviceID, *got)
}

func TestRequireDevice_TokenQueryParam(t *testing.T) {
	// WebSocket clients cannot set headers; the token rides the query
	// string instead.
	mw, token, deviceID := newTestMiddleware(t)
	next, got := echoDeviceID()

	req := httptest.NewRequest(http.MethodGet, "/v1/ws/feed?token="+token, nil)
	rec := httptest.NewRecorder()

	mw.RequireDevice(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, deviceID, *got)
}

func TestRequireDevice_MissingToken(t *testing.T) {
	mw, _, _ := newTestMiddleware(t)
	next, got := echoDeviceID()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	rec := httptest.NewRecorder()

	mw.RequireDevice(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, *got)
}

func TestRequireDevice_InvalidToken(t *testing.T) {
	mw, _, _ := newTestMiddleware(t)
	next, _ := echoDeviceID()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	mw.RequireDevice(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireDevice_MalformedAuthHeader(t *testing.T) {
	mw, token, _ := newTestMiddleware(t)
	next, _ := echoDeviceID()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set("Authorization", token) // no Bearer prefix
	rec := httptest.NewRecorder()

	mw.RequireDevice(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
