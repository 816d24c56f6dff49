package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAdmin adapts the net/http AuthMiddleware to Gin. Authorization
// decisions stay in the transport-agnostic middleware; this only bridges.
func GinRequireAdmin(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			if user, ok := AdminUserFromContext(r.Context()); ok {
				c.Set("adminUser", user)
			}
			c.Next()
		})

		// Wrap Gin request with net/http auth middleware
		handler := auth.RequireAdmin(next)

		// Execute middleware chain
		handler.ServeHTTP(c.Writer, c.Request)

		// If auth middleware already handled the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
