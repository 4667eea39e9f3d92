package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hrishi1717/shrimp/internal/auth"
	"github.com/Hrishi1717/shrimp/pkg/db/models"
	"github.com/Hrishi1717/shrimp/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	users map[string]*models.User
	seen  []string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	s.seen = append(s.seen, token)
	if token == "" {
		return nil, auth.ErrNotAuthenticated
	}
	user, ok := s.users[token]
	if !ok {
		return nil, auth.ErrInvalidSession
	}
	return user, nil
}

func newStubAuthenticator() *stubAuthenticator {
	return &stubAuthenticator{users: map[string]*models.User{
		"cookie-token": {ID: "user_cookie", Role: enums.RoleOwner},
		"bearer-token": {ID: "user_bearer", Role: enums.RoleStaff},
	}}
}

func TestAuthRejectsMissingCredential(t *testing.T) {
	handler := Auth(newStubAuthenticator(), "session_token", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Not authenticated")
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	handler := Auth(newStubAuthenticator(), "session_token", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid session")
}

func TestAuthPrefersCookieOverBearer(t *testing.T) {
	stub := newStubAuthenticator()
	var captured *models.User
	handler := Auth(stub, "session_token", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserFromContext(r.Context())
		assert.Equal(t, "user_cookie", UserIDFromContext(r.Context()))
		assert.Equal(t, "owner", RoleFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer bearer-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user_cookie", captured.ID)
	assert.Equal(t, []string{"cookie-token"}, stub.seen)
}

func TestSessionTokenFallsBackToBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer  bearer-token ")
	assert.Equal(t, "bearer-token", SessionToken(req, "session_token"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, SessionToken(req, "session_token"))
}

func TestSessionTokenBearerPrefixIsCaseSensitive(t *testing.T) {
	for _, header := range []string{"bearer tok", "BEARER tok", "Bearertok", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		assert.Empty(t, SessionToken(req, "session_token"), header)
	}
}

func TestRequireRole(t *testing.T) {
	gate := RequireRole(MessageOwnerOrAdmin, nil, enums.RoleOwner, enums.RoleAdmin)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		role enums.Role
		want int
	}{
		{enums.RoleOwner, http.StatusOK},
		{enums.RoleAdmin, http.StatusOK},
		{enums.RoleStaff, http.StatusForbidden},
		{enums.RoleFarmer, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: "u", Role: tc.role}))
		resp := httptest.NewRecorder()
		gate(ok).ServeHTTP(resp, req)
		assert.Equal(t, tc.want, resp.Code, "role %s", tc.role)
		if tc.want == http.StatusForbidden {
			assert.Contains(t, resp.Body.String(), MessageOwnerOrAdmin)
		}
	}
}
