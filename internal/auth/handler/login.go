package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/logger"
	"github.com/CopperKoi/Koi-Blog/internal/ratelimit"
	"github.com/CopperKoi/Koi-Blog/internal/security"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	ip := security.ClientIP(c.Request)
	key := ratelimit.Key(ip, req.Username)

	// Lockout check runs before the bcrypt comparison so a brute-forcer
	// cannot amplify cost on locked keys.
	if blocked, retryAfter := h.limiter.Blocked(c.Request.Context(), key); blocked {
		c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts"})
		return
	}

	if !h.verifier.VerifyPassword(req.Password) || !h.verifier.VerifyUsername(req.Username) {
		h.limiter.Fail(c.Request.Context(), key)
		logger.Warn("login failed", map[string]any{"ip": ip})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.limiter.Reset(c.Request.Context(), key)

	signed, err := h.tokens.Issue()
	if err != nil {
		logger.Error("token issue refused", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured"})
		return
	}

	h.cookies.Write(c.Writer, signed)
	logger.Info("admin login", map[string]any{"ip": ip})
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": req.Username})
}
