package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/CopperKoi/Koi-Blog/internal/config"
)

// App owns the HTTP server and the infrastructure handles it was built on.
type App struct {
	httpServer *http.Server
	certPath   string
	keyPath    string
	cleanup    func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		httpServer: server,
		certPath:   cfg.SSLCertPath,
		keyPath:    cfg.SSLKeyPath,
		cleanup:    cleanup,
	}, nil
}

// Run serves plain HTTP unless a certificate and key are configured and
// present on disk, in which case it serves TLS. Certificates uploaded
// through the admin endpoint take effect on the next restart.
func (a *App) Run() error {
	if a.tlsReady() {
		return a.httpServer.ListenAndServeTLS(a.certPath, a.keyPath)
	}
	return a.httpServer.ListenAndServe()
}

func (a *App) tlsReady() bool {
	if a.certPath == "" || a.keyPath == "" {
		return false
	}
	if _, err := os.Stat(a.certPath); err != nil {
		return false
	}
	if _, err := os.Stat(a.keyPath); err != nil {
		return false
	}
	return true
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
