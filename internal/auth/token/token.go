package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CopperKoi/Koi-Blog/internal/config"
)

const (
	Issuer   = "copperkoi-blog"
	Audience = "copperkoi-admin"

	// SessionTTL bounds how long an admin session cookie stays valid.
	SessionTTL = 12 * time.Hour
)

// Service issues and verifies the signed session credential for the single
// admin principal. Tokens are HS256 JWTs bound to a fixed issuer/audience pair
// so a shared secret cannot be replayed across unrelated deployments.
type Service struct {
	cfg config.Config
	now func() time.Time
}

func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Issue signs a 12-hour token for the configured admin. The production
// security gate runs first: a misconfigured deployment gets an error, never
// an insecurely signed token.
func (s *Service) Issue() (string, error) {
	if err := s.cfg.ValidateProduction(); err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.AdminUser,
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("token: failed to sign: %w", err)
	}
	return signed, nil
}

// Verify returns the admin subject for a valid token and "" for anything
// else. Token defects (bad signature, wrong issuer/audience, expiry, foreign
// subject) are swallowed into the anonymous result; only a failing security
// gate is surfaced as an error, since that must abort the request instead of
// downgrading to anonymous-allowed reads.
func (s *Service) Verify(raw string) (string, error) {
	if err := s.cfg.ValidateProduction(); err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("token: unexpected signing method %v", t.Header["alg"])
			}
			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", nil
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", nil
	}
	if claims.Subject != s.cfg.AdminUser {
		return "", nil
	}
	return claims.Subject, nil
}
