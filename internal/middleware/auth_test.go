package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCookies struct{ value string }

func (f fakeCookies) Read(*http.Request) string { return f.value }

type fakeTokens struct {
	subject string
	err     error
}

func (f fakeTokens) Verify(string) (string, error) { return f.subject, f.err }

func runRequireAdmin(t *testing.T, cookies CredentialReader, tokens TokenVerifier) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := AdminUserFromContext(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, user)
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	NewAuthMiddleware(cookies, tokens).RequireAdmin(next).ServeHTTP(rec, req)
	return rec, reached
}

func TestRequireAdminPassesValidSession(t *testing.T) {
	rec, reached := runRequireAdmin(t, fakeCookies{"token"}, fakeTokens{subject: "copperkoi"})
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsMissingCookie(t *testing.T) {
	rec, reached := runRequireAdmin(t, fakeCookies{""}, fakeTokens{subject: "copperkoi"})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsInvalidToken(t *testing.T) {
	rec, reached := runRequireAdmin(t, fakeCookies{"token"}, fakeTokens{})
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminSurfacesGateFailure(t *testing.T) {
	rec, reached := runRequireAdmin(t, fakeCookies{"token"}, fakeTokens{err: errors.New("misconfigured")})
	assert.False(t, reached)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
