package middleware

import (
	"context"
	"net/http"
)

// unexported, collision-proof context key
type adminUserContextKeyType struct{}

var adminUserKey = adminUserContextKeyType{}

// AdminUserFromContext extracts the authenticated admin username from context.
func AdminUserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(adminUserKey).(string)
	return user, ok
}

// TokenVerifier reports the admin subject for a valid session token, "" for
// an invalid one, error only when the security gate refuses to operate.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// CredentialReader pulls the raw session token off a request.
type CredentialReader interface {
	Read(r *http.Request) string
}

type AuthMiddleware struct {
	Cookies CredentialReader
	Tokens  TokenVerifier
}

func NewAuthMiddleware(cookies CredentialReader, tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{Cookies: cookies, Tokens: tokens}
}

func (a *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		raw := a.Cookies.Read(r)
		if raw == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify token; a gate failure aborts, it never downgrades
		user, err := a.Tokens.Verify(raw)
		if err != nil {
			http.Error(w, "server misconfigured", http.StatusInternalServerError)
			return
		}
		if user == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach admin user to context
		ctx := context.WithValue(r.Context(), adminUserKey, user)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
