package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/auth/credentials"
	"github.com/CopperKoi/Koi-Blog/internal/ratelimit"
)

// TokenIssuer mints the signed session credential for the admin.
type TokenIssuer interface {
	Issue() (string, error)
}

// SessionWriter manages the session cookie on the response.
type SessionWriter interface {
	Write(w http.ResponseWriter, token string)
	Clear(w http.ResponseWriter)
}

type Handler struct {
	verifier *credentials.Verifier
	tokens   TokenIssuer
	cookies  SessionWriter
	limiter  *ratelimit.Limiter
}

func NewHandler(
	verifier *credentials.Verifier,
	tokens TokenIssuer,
	cookies SessionWriter,
	limiter *ratelimit.Limiter,
) *Handler {
	return &Handler{
		verifier: verifier,
		tokens:   tokens,
		cookies:  cookies,
		limiter:  limiter,
	}
}

// RegisterRoutes mounts the auth endpoints. requireAdmin guards /me so the
// identity check shares the exact session semantics of every admin route.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", requireAdmin, h.Me)
}

func (h *Handler) Logout(c *gin.Context) {
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": c.GetString("adminUser")})
}
