package handler

import (
	"context"
	"fmt"
	"io"

	"booking-portal/internal/module/student/models/request"
	"booking-portal/internal/module/student/usecases"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/helpers"
	"booking-portal/internal/pkg/mailer"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type StudentHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *StudentHandler) ListStudents(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.ListStudents(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list students: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

func (h *StudentHandler) StudentsByRef(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.StudentsByRef(ctx.UserContext(), ctx.Params("refid"))
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list students by ref: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

func (h *StudentHandler) GetStudent(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.GetStudent(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

func (h *StudentHandler) UpdateStudent(ctx *fiber.Ctx) error {
	var req request.UpdateStudent
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("invalid student fields").
			WithDetails(helpers.ValidationDetails(err)))
	}

	resp, err := h.Usecase.UpdateStudent(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

// SendEmail accepts the multipart form and answers 202 once the email task
// is queued.
func (h *StudentHandler) SendEmail(ctx *fiber.Ctx) error {
	var req request.SendEmail
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("bill_email is required").
			WithDetails(helpers.ValidationDetails(err)))
	}

	var attachment *mailer.Attachment
	if fh, err := ctx.FormFile("attachment"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			return helpers.RespError(ctx, h.Log, errors.BadRequest("error read attachment"))
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return helpers.RespError(ctx, h.Log, errors.BadRequest("error read attachment"))
		}
		attachment = &mailer.Attachment{Filename: fh.Filename, Content: content}
	}

	resp, err := h.Usecase.QueueReceiptEmail(ctx.UserContext(), ctx.Params("id"), &req, attachment)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespWithStatus(ctx, h.Log, fiber.StatusAccepted, resp, "")
}

func (h *StudentHandler) ProcessReceiptEmail(ctx context.Context, t *asynq.Task) error {
	var req request.ReceiptEmailTask
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Usecase.SendReceiptEmail(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error send receipt email: %v", err))
		return err
	}

	return nil
}
