package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestWriteSetsLockedDownCookie(t *testing.T) {
	codec := NewCodec("__Host-blog_session", true)

	rec := httptest.NewRecorder()
	codec.Write(rec, "the-token")

	c := issuedCookie(t, rec, "__Host-blog_session")
	assert.Equal(t, "the-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(MaxAge.Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestClearExpiresCookieWithSameFlags(t *testing.T) {
	codec := NewCodec("blog_session", false)

	rec := httptest.NewRecorder()
	codec.Clear(rec)

	c := issuedCookie(t, rec, "blog_session")
	assert.Empty(t, c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Less(t, c.MaxAge, 0)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestReadRoundTrip(t *testing.T) {
	codec := NewCodec("blog_session", false)

	rec := httptest.NewRecorder()
	codec.Write(rec, "session-value")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	require.Equal(t, "session-value", codec.Read(req))
}

func TestReadMissingCookie(t *testing.T) {
	codec := NewCodec("blog_session", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, codec.Read(req))
}
