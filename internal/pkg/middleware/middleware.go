package middleware

import (
	"fmt"
	"strings"

	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/helpers"
	"booking-portal/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const LocalAdmin = "admin_user"

type Middleware struct {
	Log     *otelzap.Logger
	Session *session.Manager
}

// RequireAdmin accepts the session cookie set by login, or the same token
// as a Bearer header for scripted calls.
func (m *Middleware) RequireAdmin(ctx *fiber.Ctx) error {
	token := ctx.Cookies(session.CookieName)
	if token == "" {
		if auth := ctx.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("login required"))
	}

	claims, err := m.Session.Verify(token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("error validate session: %v", err))
		if errors.KindOf(err) == errors.KindAuth {
			return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("login required"))
		}
		return helpers.RespError(ctx, m.Log, err)
	}

	ctx.Locals(LocalAdmin, claims.Subject)

	return ctx.Next()
}
