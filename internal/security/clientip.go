package security

import (
	"net/http"
	"strings"
)

// ClientIP derives the caller's address from proxy headers, first match wins.
// Behind the expected reverse-proxy chain X-Forwarded-For carries the real
// client first; the CDN header is a last resort before giving up.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("CF-Connecting-Ip"); ip != "" {
		return ip
	}
	return "unknown"
}
