package auth

import (
	"context"
	"errors"

	"github.com/dgrijalva/jwt-go"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
)

var (
	// ErrInvalidPasscode is returned when the passcode does not match the
	// configured manager password.
	ErrInvalidPasscode = errors.New("invalid passcode")
	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid session token")
)

// ConfigSource provides the live configuration.
type ConfigSource interface {
	Snapshot() *config.Config
}

// Claims is the payload of a manager session token.
type Claims struct {
	Role permission.Role `json:"role"`
	jwt.StandardClaims
}

// Session is returned by a successful login.
type Session struct {
	Token     string          `json:"token"`
	Role      permission.Role `json:"role"`
	ExpiresAt int64           `json:"expires_at"`
}

// Service defines manager authentication.
type Service interface {
	// Login compares the passcode verbatim with business.managerPassword and
	// issues a manager session token on success.
	Login(ctx context.Context, passcode string) (*Session, error)

	// Verify parses and validates a session token.
	Verify(token string) (*Claims, error)
}
