package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"time"

	"booking-portal/config"
	bookingentity "booking-portal/internal/module/booking/models/entity"
	bookingrequest "booking-portal/internal/module/booking/models/request"
	bookingusecases "booking-portal/internal/module/booking/usecases"
	"booking-portal/internal/module/line/models/response"
	"booking-portal/internal/module/line/repositories"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/line"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	replyUnknownAction = "❓ ไม่รู้จักคำสั่งนี้ กรุณากดปุ่มจากข้อความแจ้งเตือนการจอง"
	replyUpdateFailed  = "❌ เกิดข้อผิดพลาดในการอัพเดทสถานะ กรุณาลองอีกครั้ง"
)

type usecase struct {
	repo    repositories.Repositories
	booking bookingusecases.Usecase
	client  line.Client
	log     *otelzap.Logger
	cfg     *config.LineConfig
	now     func() time.Time
}

type Usecase interface {
	// webhook
	HandleEvents(ctx context.Context, events []webhook.EventInterface) error
	// message stream
	NotifyBookingCreated(ctx context.Context, payload *bookingrequest.BookingCreated) error
	// http
	ListUsers(ctx context.Context) (response.LineUsers, error)
	AddUser(ctx context.Context, userID string) (response.LineUsers, error)
}

func New(repo repositories.Repositories, booking bookingusecases.Usecase, client line.Client, log *otelzap.Logger, cfg *config.LineConfig) Usecase {
	return &usecase{
		repo:    repo,
		booking: booking,
		client:  client,
		log:     log,
		cfg:     cfg,
		now:     time.Now,
	}
}

// HandleEvents processes every event even when some fail; the joined
// failures are returned for logging only.
func (u *usecase) HandleEvents(ctx context.Context, events []webhook.EventInterface) error {
	var errs []error
	for _, event := range events {
		if err := u.handleEvent(ctx, event); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error handle line event %T: %v", event, err))
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (u *usecase) handleEvent(ctx context.Context, event webhook.EventInterface) error {
	switch e := event.(type) {
	case webhook.MessageEvent:
		userID := sourceUserID(e.Source)
		if userID == "" {
			return nil
		}
		if err := u.repo.AddUserID(ctx, userID); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error remember line user %s: %v", userID, err))
		}
		if _, ok := e.Message.(webhook.TextMessageContent); !ok {
			return nil
		}
		return u.reply(ctx, e.ReplyToken, fmt.Sprintf(
			"✅ ระบบได้รับ User ID ของคุณแล้ว!\n\nUser ID: %s\n\nหากต้องการรับแจ้งเตือนทุกการจอง ให้เพิ่ม User ID นี้ใน LINE_USER_ID", userID))

	case webhook.FollowEvent:
		userID := sourceUserID(e.Source)
		if userID == "" {
			return nil
		}
		if err := u.repo.AddUserID(ctx, userID); err != nil {
			u.log.Ctx(ctx).Warn(fmt.Sprintf("error remember line user %s: %v", userID, err))
		}
		return u.reply(ctx, e.ReplyToken, fmt.Sprintf(
			"สวัสดีครับ! ขอบคุณที่เพิ่ม LINE OA นี้เป็นเพื่อน\n\nระบบจะส่งการแจ้งเตือนการจองห้องซ้อมดนตรีมาที่นี่\n\nUser ID: %s", userID))

	case webhook.PostbackEvent:
		if e.Postback == nil {
			return u.reply(ctx, e.ReplyToken, replyUnknownAction)
		}
		return u.handlePostback(ctx, e.ReplyToken, e.Postback.Data)

	default:
		u.log.Ctx(ctx).Debug(fmt.Sprintf("ignore line event %T", event))
		return nil
	}
}

func (u *usecase) handlePostback(ctx context.Context, replyToken, data string) error {
	values, err := url.ParseQuery(data)
	action := bookingentity.Action(values.Get("action"))
	recordID := values.Get("recordId")
	if _, ok := action.Target(); err != nil || !ok || recordID == "" {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("unknown postback data %q", data))
		return u.reply(ctx, replyToken, replyUnknownAction)
	}

	result, err := u.booking.TransitionStatus(ctx, &bookingrequest.UpdateStatus{RecordID: recordID, Action: action})
	switch {
	case err == nil && result.Changed:
		return u.reply(ctx, replyToken, transitionReply(result.Booking, result.Current))
	case err == nil:
		return u.reply(ctx, replyToken, fmt.Sprintf("ℹ️ การจองนี้มีสถานะ%sอยู่แล้ว", statusLabel(result.Current)))
	case errors.KindOf(err) == errors.KindConflict && result.Current != "":
		u.log.Ctx(ctx).Warn(fmt.Sprintf("refused %s on booking %s: %v", action, recordID, err))
		return u.reply(ctx, replyToken, fmt.Sprintf("⚠️ การจองนี้%s ไม่สามารถเปลี่ยนสถานะได้", statusLabel(result.Current)))
	default:
		replyErr := u.reply(ctx, replyToken, replyUpdateFailed)
		return stderrors.Join(err, replyErr)
	}
}

func (u *usecase) reply(ctx context.Context, replyToken, text string) error {
	if replyToken == "" {
		return nil
	}
	return u.client.Reply(ctx, replyToken, line.Text(text))
}

// NotifyBookingCreated pushes the booking summary with approve and cancel
// buttons. It fails only when no target received the message.
func (u *usecase) NotifyBookingCreated(ctx context.Context, payload *bookingrequest.BookingCreated) error {
	b := payload.Booking
	if b.ID == "" {
		return errors.BadRequest("booking_created event without booking id")
	}

	targets, err := u.targets(ctx, payload.LineUserID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("no line target for booking %s, skip notification", b.ID))
		return nil
	}

	messages := u.notificationMessages(payload)
	ctx = line.WithRetryKey(ctx, "booking_created:"+b.ID)

	var errs []error
	for _, to := range targets {
		if err := u.client.Push(ctx, to, messages...); err != nil {
			u.log.Ctx(ctx).Error(fmt.Sprintf("error push booking %s to %s: %v", b.ID, to, err))
			errs = append(errs, err)
		}
	}
	if len(errs) == len(targets) {
		return stderrors.Join(errs...)
	}
	return nil
}

func (u *usecase) notificationMessages(payload *bookingrequest.BookingCreated) []messaging_api.MessageInterface {
	b := payload.Booking
	prices := hourlyPrices{room: payload.RoomPricePerHour, additional: payload.AdditionalPricePerHour}
	messages := []messaging_api.MessageInterface{
		line.Text(bookingSummary(b, prices, u.now())),
		line.Buttons(
			"มีการจองใหม่: "+b.FullName(),
			truncate(b.RoomName+" "+b.TimeSlot(), 40),
			truncate(fmt.Sprintf("%s %s", b.FullName(), b.Date), 60),
			line.PostbackButton{Label: "✅ อนุมัติ", Data: postbackData(bookingentity.ActionApprove, b.ID)},
			line.PostbackButton{Label: "❌ ยกเลิก", Data: postbackData(bookingentity.ActionCancel, b.ID)},
		),
	}
	if b.HasReceipt() {
		messages = append(messages, line.Image(b.ReceiptURL))
	}
	return messages
}

// targets is the configured ids plus the booker's id. When both are empty
// it falls back to every id seen by the webhook.
func (u *usecase) targets(ctx context.Context, bookerID string) ([]string, error) {
	seen := map[string]bool{}
	var targets []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			targets = append(targets, id)
		}
	}

	for _, id := range u.cfg.NotifyTargets {
		add(id)
	}
	add(bookerID)
	if len(targets) > 0 {
		return targets, nil
	}

	stored, err := u.repo.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range stored {
		add(id)
	}
	return targets, nil
}

func (u *usecase) ListUsers(ctx context.Context) (response.LineUsers, error) {
	stored, err := u.repo.ListUserIDs(ctx)
	if err != nil {
		return response.LineUsers{}, err
	}

	resp := response.LineUsers{
		Success: true,
		UserIDs: response.UserIDs{
			FromEnv:     append([]string{}, u.cfg.NotifyTargets...),
			FromWebhook: append([]string{}, stored...),
		},
	}
	if len(stored) == 0 {
		resp.Message = "no user id received from the webhook yet"
	}
	return resp, nil
}

func (u *usecase) AddUser(ctx context.Context, userID string) (response.LineUsers, error) {
	if userID == "" {
		return response.LineUsers{}, errors.BadRequest("userId is required")
	}
	if err := u.repo.AddUserID(ctx, userID); err != nil {
		return response.LineUsers{}, err
	}

	resp, err := u.ListUsers(ctx)
	if err != nil {
		return response.LineUsers{}, err
	}
	resp.Message = "added user id " + userID
	return resp, nil
}

func sourceUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}
