package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBcryptHash = "$2b$12$C6UzMDM.H6dfI/f/IKcEeO7ZBpyvQIRYrV7d0bS5mO0nqFBdTZ5aG"

func prodConfig() Config {
	return Config{
		DeploymentEnv:     "production",
		CookieName:        "__Host-blog_session",
		CookieSecure:      true,
		CookieSecureRaw:   "true",
		JWTSecret:         "a-real-secret",
		AdminUser:         "copperkoi",
		AdminPasswordHash: testBcryptHash,
	}
}

func TestValidateProductionPasses(t *testing.T) {
	require.NoError(t, prodConfig().ValidateProduction())
}

func TestValidateProductionNoopOutsideProduction(t *testing.T) {
	cfg := prodConfig()
	cfg.DeploymentEnv = "development"
	cfg.JWTSecret = DefaultJWTSecret
	cfg.AdminPasswordHash = ""
	assert.NoError(t, cfg.ValidateProduction())
}

func TestValidateProductionFailsClosed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"default jwt secret", func(c *Config) { c.JWTSecret = DefaultJWTSecret }},
		{"empty jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"empty password hash", func(c *Config) { c.AdminPasswordHash = "" }},
		{"non-bcrypt password hash", func(c *Config) { c.AdminPasswordHash = "plaintext-oops" }},
		{"cookie without host prefix", func(c *Config) { c.CookieName = "blog_session" }},
		{"cookie secure not explicit", func(c *Config) { c.CookieSecureRaw = "" }},
		{"cookie secure false", func(c *Config) { c.CookieSecureRaw = "false" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := prodConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.ValidateProduction())
		})
	}
}

// The gate asserts against the config snapshot taken at startup, never the
// live environment.
func TestValidateProductionIgnoresLiveEnvironment(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "false")
	assert.NoError(t, prodConfig().ValidateProduction())
}

func TestLoadCapturesCookieSecure(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "true")
	cfg := Load()
	assert.Equal(t, "true", cfg.CookieSecureRaw)
	assert.True(t, cfg.CookieSecure)

	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("DEPLOYMENT_ENV", "development")
	cfg = Load()
	assert.Equal(t, "false", cfg.CookieSecureRaw)
	assert.False(t, cfg.CookieSecure)
}

func TestNormalizeAdminPasswordHash(t *testing.T) {
	body := "C6UzMDM.H6dfI/f/IKcEeO7ZBpyvQIRYrV7d0bS5mO0nqFBdTZ5aG"

	assert.Equal(t, testBcryptHash, normalizeAdminPasswordHash(testBcryptHash))
	assert.Equal(t, testBcryptHash, normalizeAdminPasswordHash("'"+testBcryptHash+"'"))
	assert.Equal(t, testBcryptHash, normalizeAdminPasswordHash(`\$2b\$12\$`+body))
	// Prefix swallowed by interpolation: rebuilt from the 53-char body.
	assert.Equal(t, "$2b$12$"+body, normalizeAdminPasswordHash(body))
	assert.Equal(t, "", normalizeAdminPasswordHash("   "))
}

func TestNormalizeAdminUser(t *testing.T) {
	assert.Equal(t, "copperkoi", normalizeAdminUser("  CopperKoi\t"))
	assert.Equal(t, "copperkoi", normalizeAdminUser(`"CopperKoi"`))
}
