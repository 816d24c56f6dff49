package credentials

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks submitted credentials against the single configured admin
// identity. It is a pure check: no storage, no side effects.
type Verifier struct {
	adminUser    string // already normalized lowercase
	passwordHash string // bcrypt modular-crypt string, may be empty
}

func NewVerifier(adminUser, passwordHash string) *Verifier {
	return &Verifier{
		adminUser:    adminUser,
		passwordHash: passwordHash,
	}
}

// VerifyPassword fails closed: no configured hash, or a hash that is not
// bcrypt-shaped, means no password can ever match. Comparison errors are
// treated as a mismatch, never surfaced.
func (v *Verifier) VerifyPassword(password string) bool {
	if v.passwordHash == "" {
		return false
	}
	if !strings.HasPrefix(v.passwordHash, "$2") {
		return false
	}
	return bcrypt.CompareHashAndPassword(
		[]byte(v.passwordHash),
		[]byte(password),
	) == nil
}

// VerifyUsername compares case-insensitively, ignoring surrounding whitespace.
func (v *Verifier) VerifyUsername(username string) bool {
	return strings.ToLower(strings.TrimSpace(username)) == v.adminUser
}

func (v *Verifier) AdminUser() string {
	return v.adminUser
}
