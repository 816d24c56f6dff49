package session

import (
	"net/http"
	"time"
)

// MaxAge matches the token TTL so browsers drop the cookie together with
// the credential it carries.
const MaxAge = 12 * time.Hour

// Codec moves the session token in and out of the HTTP layer. The cookie
// contract is fixed: HttpOnly, SameSite=Strict, Path=/ (required for the
// production __Host- name), and Secure whenever the deployment says so.
type Codec struct {
	Name   string
	Secure bool
}

func NewCodec(name string, secure bool) *Codec {
	return &Codec{Name: name, Secure: secure}
}

// Read returns the raw session token from the request, or "" if absent.
func (c *Codec) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Write issues the session cookie to the client.
func (c *Codec) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear overwrites the cookie with an immediately expired empty value using
// identical flags, so browsers and proxies discard it.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
