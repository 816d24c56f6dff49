package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/admin"
	"github.com/CopperKoi/Koi-Blog/internal/auth/credentials"
	authhandler "github.com/CopperKoi/Koi-Blog/internal/auth/handler"
	"github.com/CopperKoi/Koi-Blog/internal/auth/token"
	"github.com/CopperKoi/Koi-Blog/internal/config"
	"github.com/CopperKoi/Koi-Blog/internal/content"
	"github.com/CopperKoi/Koi-Blog/internal/middleware"
	"github.com/CopperKoi/Koi-Blog/internal/ratelimit"
	"github.com/CopperKoi/Koi-Blog/internal/security"
	"github.com/CopperKoi/Koi-Blog/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	verifier := credentials.NewVerifier(cfg.AdminUser, cfg.AdminPasswordHash)
	tokens := token.NewService(cfg)
	cookies := session.NewCodec(cfg.CookieName, cfg.CookieSecure)

	var attemptStore ratelimit.Store = ratelimit.NewMemoryStore()
	if infra.Redis != nil {
		attemptStore = ratelimit.NewRedisStore(infra.Redis.Client)
	}
	limiter := ratelimit.NewLimiter(attemptStore)

	originGuard := security.NewOriginGuard(cfg.IsProduction(), cfg.AppOrigin)

	authMiddleware := middleware.NewAuthMiddleware(cookies, tokens)
	requireAdmin := middleware.GinRequireAdmin(authMiddleware)

	// isAdmin widens read views without gating them; a failing security
	// gate would already have stopped startup.
	isAdmin := func(r *http.Request) bool {
		user, err := tokens.Verify(cookies.Read(r))
		return err == nil && user != ""
	}

	authHandler := authhandler.NewHandler(verifier, tokens, cookies, limiter)
	contentHandler := content.NewHandler(
		content.NewPostService(infra.DB),
		content.NewAboutService(infra.DB),
		content.NewFriendService(infra.DB),
		content.NewTravelService(infra.DB),
		isAdmin,
	)
	sslHandler := admin.NewSSLHandler(cfg.SSLCertPath, cfg.SSLKeyPath)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinRequestID())
	// The same-origin write guard runs before auth and handler logic.
	router.Use(middleware.GinSameOriginWrite(originGuard))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authHandler.RegisterRoutes(api, requireAdmin)
	contentHandler.RegisterRoutes(api, requireAdmin)
	api.PUT("/admin/ssl", requireAdmin, sslHandler.Update)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			_ = infra.Redis.Close()
		}
		return infra.DB.Close()
	}, nil
}
