package admin

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/CopperKoi/Koi-Blog/internal/logger"
)

// SSLHandler lets the admin rotate the TLS certificate served by the fronting
// proxy by overwriting the configured cert/key files.
type SSLHandler struct {
	CertPath string
	KeyPath  string
}

func NewSSLHandler(certPath, keyPath string) *SSLHandler {
	return &SSLHandler{CertPath: certPath, KeyPath: keyPath}
}

func (h *SSLHandler) Update(c *gin.Context) {
	var body struct {
		Cert string `json:"cert"`
		Key  string `json:"key"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Cert == "" || body.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cert or key"})
		return
	}

	if h.CertPath == "" || h.KeyPath == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SSL paths not configured"})
		return
	}

	if err := os.WriteFile(h.CertPath, []byte(body.Cert), 0o600); err != nil {
		logger.Error("failed to write certificate", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update certificate"})
		return
	}
	if err := os.WriteFile(h.KeyPath, []byte(body.Key), 0o600); err != nil {
		logger.Error("failed to write key", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update certificate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
