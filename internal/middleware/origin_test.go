package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/CopperKoi/Koi-Blog/internal/security"
)

func originRouter(guard *security.OriginGuard) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)

	authRan := false
	auth := NewAuthMiddleware(fakeCookies{""}, fakeTokens{})

	r := gin.New()
	r.Use(GinSameOriginWrite(guard))
	r.PATCH("/api/friends",
		func(c *gin.Context) { authRan = true; c.Next() },
		GinRequireAdmin(auth),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	r.GET("/api/friends", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r, &authRan
}

func TestSameOriginGuardRejectsBeforeAuth(t *testing.T) {
	r, authRan := originRouter(security.NewOriginGuard(true, "https://blog.example.com"))

	req := httptest.NewRequest(http.MethodPatch, "https://blog.example.com/api/friends", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *authRan, "origin guard must run before authentication")
}

func TestSameOriginGuardRejectsMissingHeaders(t *testing.T) {
	r, _ := originRouter(security.NewOriginGuard(true, "https://blog.example.com"))

	req := httptest.NewRequest(http.MethodPatch, "https://blog.example.com/api/friends", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSameOriginGuardIgnoresReads(t *testing.T) {
	r, _ := originRouter(security.NewOriginGuard(true, "https://blog.example.com"))

	req := httptest.NewRequest(http.MethodGet, "https://blog.example.com/api/friends", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSameOriginGuardPassesMatchingOrigin(t *testing.T) {
	r, _ := originRouter(security.NewOriginGuard(true, "https://blog.example.com"))

	req := httptest.NewRequest(http.MethodPatch, "https://blog.example.com/api/friends", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Same origin passes the guard; the request then fails auth, not 403.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
