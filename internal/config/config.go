package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

const (
	// DefaultJWTSecret is the development fallback. The production gate
	// refuses to operate with it.
	DefaultJWTSecret = "unsafe-secret"

	devCookieName  = "blog_session"
	prodCookieName = "__Host-blog_session"

	defaultAdminUser = "copperkoi"
)

type Config struct {
	AppPort       string
	DeploymentEnv string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	// Session / auth
	CookieName   string
	CookieSecure bool
	// CookieSecureRaw keeps the literal COOKIE_SECURE value so the
	// production gate can require it to be explicitly "true".
	CookieSecureRaw string

	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string

	// Expected public origin for the same-origin write guard,
	// e.g. "https://blog.example.com". Empty means derive from the request.
	AppOrigin string

	// SSL certificate upload targets
	SSLCertPath string
	SSLKeyPath  string
}

func (c Config) IsProduction() bool {
	return c.DeploymentEnv == "production"
}

func Load() Config {

	env := getenv("DEPLOYMENT_ENV", "development")
	isProd := env == "production"
	cookieSecure := os.Getenv("COOKIE_SECURE")

	defaultCookie := devCookieName
	if isProd {
		defaultCookie = prodCookieName
	}

	cfg := Config{
		AppPort:       getenv("APP_PORT", "8080"),
		DeploymentEnv: env,

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CookieName:        getenv("COOKIE_NAME", defaultCookie),
		CookieSecure:      isProd || cookieSecure != "false",
		CookieSecureRaw:   cookieSecure,
		JWTSecret:         getenv("JWT_SECRET", DefaultJWTSecret),
		AdminUser:         normalizeAdminUser(getenv("ADMIN_USER", defaultAdminUser)),
		AdminPasswordHash: normalizeAdminPasswordHash(os.Getenv("ADMIN_PASSWORD_HASH")),

		AppOrigin: strings.TrimSpace(os.Getenv("APP_ORIGIN")),

		SSLCertPath: os.Getenv("SSL_CERT_PATH"),
		SSLKeyPath:  os.Getenv("SSL_KEY_PATH"),
	}

	if cfg.AdminUser == "" {
		cfg.AdminUser = defaultAdminUser
	}

	return cfg

}

// ValidateProduction is the fail-closed security gate. Outside production it
// is a no-op; in production a misconfigured deployment must refuse to serve
// authenticated traffic instead of silently degrading.
func (c Config) ValidateProduction() error {
	if !c.IsProduction() {
		return nil
	}
	if c.CookieSecureRaw != "true" {
		return errors.New("config: COOKIE_SECURE must be explicitly true in production")
	}
	if c.JWTSecret == DefaultJWTSecret || c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	if c.AdminPasswordHash == "" {
		return errors.New("config: ADMIN_PASSWORD_HASH must be set in production")
	}
	if !strings.HasPrefix(c.AdminPasswordHash, "$2") {
		return errors.New("config: ADMIN_PASSWORD_HASH must be a bcrypt hash in production")
	}
	if !strings.HasPrefix(c.CookieName, "__Host-") {
		return errors.New("config: production session cookie must use the __Host- prefix")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// bcryptBody matches the 53-character salt+checksum body of a modular-crypt
// bcrypt string, i.e. what is left after an env interpolation layer swallowed
// the "$2b$12$" prefix.
var bcryptBody = regexp.MustCompile(`^[./A-Za-z0-9]{53}$`)

// normalizeAdminPasswordHash undoes the damage env tooling does to bcrypt
// hashes: surrounding quotes, escaped dollar signs, stray control characters,
// and interpolation that ate the hash prefix entirely.
func normalizeAdminPasswordHash(raw string) string {
	v := stripControlChars(unwrapQuotes(raw))
	if v == "" {
		return ""
	}

	v = strings.ReplaceAll(v, `\$`, "$")
	if strings.HasPrefix(v, "$2") {
		return v
	}

	if bcryptBody.MatchString(v) {
		return "$2b$12$" + v
	}

	return v
}

func normalizeAdminUser(raw string) string {
	return strings.ToLower(strings.TrimSpace(stripControlChars(unwrapQuotes(raw))))
}

func unwrapQuotes(value string) string {
	v := strings.TrimSpace(value)
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func stripControlChars(value string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
}
