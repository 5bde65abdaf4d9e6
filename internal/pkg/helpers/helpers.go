package helpers

import (
	"fmt"

	"booking-portal/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespSuccess writes data as the 200 body. A nil data writes the
// {success, message} envelope instead.
func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return RespWithStatus(ctx, log, fiber.StatusOK, data, message)
}

func RespWithStatus(ctx *fiber.Ctx, log *otelzap.Logger, status int, data interface{}, message string) error {
	if data == nil {
		return ctx.Status(status).JSON(Response{Success: true, Message: message})
	}
	return ctx.Status(status).JSON(data)
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	eg, ok := errors.As(err)
	if !ok {
		log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("unclassified error: %v", err))
		eg = errors.InternalServerError("internal server error")
	}

	code := eg.Code
	if code == 0 {
		code = eg.Kind.HTTPStatus()
	}
	if code >= fiber.StatusInternalServerError {
		log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("request failed with %d: %v", code, err))
	}

	return ctx.Status(code).JSON(ErrorResponse{
		Error:   eg.Message,
		Details: eg.Details,
	})
}
