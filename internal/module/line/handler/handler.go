package handler

import (
	"fmt"
	"time"

	"booking-portal/config"
	bookingrequest "booking-portal/internal/module/booking/models/request"
	"booking-portal/internal/module/line/models/request"
	"booking-portal/internal/module/line/usecases"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/helpers"
	"booking-portal/internal/pkg/line"
	"booking-portal/internal/pkg/messagestream"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type LineHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
	Cfg       *config.LineConfig
}

// Webhook verifies the channel signature before touching the body. Event
// failures are logged and still answered with 200 so LINE does not redeliver.
func (h *LineHandler) Webhook(ctx *fiber.Ctx) error {
	if h.Cfg.ChannelSecret == "" {
		h.Log.Ctx(ctx.UserContext()).Error("line channel secret is not configured")
		return helpers.RespError(ctx, h.Log, errors.InternalServerError("line channel secret is not configured"))
	}

	body := ctx.Body()
	signature := ctx.Get(line.SignatureHeader)
	switch {
	case signature == "" && h.Cfg.RequireSignature:
		return helpers.RespError(ctx, h.Log, errors.UnauthorizedError("missing signature"))
	case signature == "":
		h.Log.Ctx(ctx.UserContext()).Warn("line webhook without signature accepted, LINE_REQUIRE_SIGNATURE is off")
	case !line.VerifySignature(h.Cfg.ChannelSecret, body, signature):
		h.Log.Ctx(ctx.UserContext()).Warn("line webhook signature mismatch")
		return helpers.RespError(ctx, h.Log, errors.UnauthorizedError("invalid signature"))
	}

	var req webhook.CallbackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse webhook body: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse webhook body"))
	}

	if err := h.Usecase.HandleEvents(ctx.UserContext(), req.Events); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle webhook events: %v", err))
	}

	return helpers.RespSuccess(ctx, h.Log, nil, "")
}

func (h *LineHandler) WebhookLiveness(ctx *fiber.Ctx) error {
	return helpers.RespSuccess(ctx, h.Log, fiber.Map{
		"success":   true,
		"message":   "line webhook is up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "")
}

// ConsumeBookingCreated pushes the admin notification for a new booking.
// A payload that cannot be decoded is parked on the poison queue and acked.
func (h *LineHandler) ConsumeBookingCreated(msg *message.Message) error {
	var req bookingrequest.BookingCreated
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))

		reqPoisoned := bookingrequest.PoisonedQueue{
			TopicTarget: messagestream.TopicBookingCreated,
			ErrorMsg:    err.Error(),
			Payload:     msg.Payload,
		}

		jsonPayload, _ := json.Marshal(reqPoisoned)
		if err := h.Publish.Publish(messagestream.TopicPoisoned, message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
			h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
			return err
		}
		return nil
	}

	if err := h.Usecase.NotifyBookingCreated(msg.Context(), &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error notify booking %s: %v", req.Booking.ID, err))
		return err
	}

	return nil
}

func (h *LineHandler) ListUsers(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.ListUsers(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list line users: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}

func (h *LineHandler) AddUser(ctx *fiber.Ctx) error {
	var req request.AddUser
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("userId is required").
			WithDetails(helpers.ValidationDetails(err)))
	}

	resp, err := h.Usecase.AddUser(ctx.UserContext(), req.UserID)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "")
}
