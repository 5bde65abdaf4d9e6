package handler

import (
	"fmt"
	"time"

	"booking-portal/internal/module/admin/models/request"
	"booking-portal/internal/module/admin/usecases"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/helpers"
	"booking-portal/internal/pkg/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type AdminHandler struct {
	Log          *otelzap.Logger
	Validator    *validator.Validate
	Usecase      usecases.Usecase
	SecureCookie bool
}

func (h *AdminHandler) Login(ctx *fiber.Ctx) error {
	var req request.Login
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("username and password are required").
			WithDetails(helpers.ValidationDetails(err)))
	}

	resp, err := h.Usecase.Login(ctx.UserContext(), &req)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	ctx.Cookie(h.cookie(resp.Token, resp.ExpiresAt))

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

func (h *AdminHandler) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(h.cookie("", time.Unix(0, 0)))

	return helpers.RespSuccess(ctx, h.Log, nil, "logged out")
}

func (h *AdminHandler) cookie(value string, expires time.Time) *fiber.Cookie {
	c := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}
