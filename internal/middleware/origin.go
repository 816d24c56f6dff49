package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/security"
)

// GinSameOriginWrite enforces the same-origin guard on every mutating method,
// before auth or any handler logic runs.
func GinSameOriginWrite(guard *security.OriginGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		if err := guard.VerifyWrite(c.Request); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}
