package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
)

// SessionTTL is how long a manager session token stays valid.
const SessionTTL = 12 * time.Hour

type service struct {
	configs ConfigSource
	key     []byte
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new auth service signing tokens with key.
func NewService(configs ConfigSource, key []byte, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{configs: configs, key: key, logger: logger, now: time.Now}
}

func (s *service) Login(ctx context.Context, passcode string) (*Session, error) {
	want := s.configs.Snapshot().Business.ManagerPassword
	if passcode == "" || subtle.ConstantTimeCompare([]byte(passcode), []byte(want)) != 1 {
		s.logger.Warn("manager login rejected")
		return nil, ErrInvalidPasscode
	}

	issued := s.now()
	expires := issued.Add(SessionTTL)
	claims := &Claims{
		Role: permission.RoleManager,
		StandardClaims: jwt.StandardClaims{
			Subject:   string(permission.RoleManager),
			IssuedAt:  issued.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	s.logger.Info("manager session issued", zap.Time("expires_at", expires))
	return &Session{Token: token, Role: permission.RoleManager, ExpiresAt: expires.Unix()}, nil
}

func (s *service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
