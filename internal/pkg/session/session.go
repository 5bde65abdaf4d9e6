package session

import (
	"time"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "limitless_session"

type Claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg *config.AdminConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an HS256 token for username valid for the configured TTL.
func (m *Manager) Issue(username string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.InternalServerError("session secret is not configured")
	}

	now := m.now()
	expires := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(errors.KindServerError, err, "error sign session token")
	}
	return signed, expires, nil
}

func (m *Manager) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.UnauthorizedError("missing session")
	}
	if len(m.secret) == 0 {
		return nil, errors.InternalServerError("session secret is not configured")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Wrap(errors.KindAuth, err, "invalid session")
	}
	return claims, nil
}
