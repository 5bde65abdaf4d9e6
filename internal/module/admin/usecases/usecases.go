package usecases

import (
	"context"
	"crypto/subtle"
	"fmt"

	"booking-portal/config"
	"booking-portal/internal/module/admin/models/request"
	"booking-portal/internal/module/admin/models/response"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/session"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"golang.org/x/crypto/bcrypt"
)

type usecase struct {
	cfg      *config.AdminConfig
	sessions *session.Manager
	log      *otelzap.Logger
}

type Usecase interface {
	Login(ctx context.Context, payload *request.Login) (response.Session, error)
}

func New(cfg *config.AdminConfig, sessions *session.Manager, log *otelzap.Logger) Usecase {
	return &usecase{cfg: cfg, sessions: sessions, log: log}
}

// Login checks the single admin account. Username and password failures
// give the same error.
func (u *usecase) Login(ctx context.Context, payload *request.Login) (response.Session, error) {
	if u.cfg.Username == "" || u.cfg.PasswordHash == "" {
		return response.Session{}, errors.InternalServerError("admin account is not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(u.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(u.cfg.PasswordHash), []byte(payload.Password))
	if !userOK || passErr != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("failed admin login for %q", payload.Username))
		return response.Session{}, errors.UnauthorizedError("invalid username or password")
	}

	token, expires, err := u.sessions.Issue(u.cfg.Username)
	if err != nil {
		return response.Session{}, err
	}

	return response.Session{
		Success:   true,
		Username:  u.cfg.Username,
		ExpiresAt: expires,
		Token:     token,
	}, nil
}
