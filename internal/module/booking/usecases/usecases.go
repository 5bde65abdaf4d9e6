package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booking-portal/config"
	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/module/booking/models/request"
	"booking-portal/internal/module/booking/models/response"
	"booking-portal/internal/module/booking/repositories"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/messagestream"
	"booking-portal/internal/pkg/retry"
	"booking-portal/internal/pkg/timerange"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const degradedWarning = "could not read existing bookings, no room is reported available"

type usecase struct {
	repo    repositories.Repositories
	log     *otelzap.Logger
	publish message.Publisher
	rooms   config.RoomSet
	policy  retry.Policy
	now     func() time.Time
}

type Usecase interface {
	// http
	CheckAvailability(ctx context.Context, payload *request.Availability) (response.Availability, error)
	AvailableRooms(ctx context.Context, payload *request.Availability) (response.RoomsAvailable, error)
	CreateBooking(ctx context.Context, payload *request.CreateBooking) (response.BookingCreated, error)
	// webhook and cli
	TransitionStatus(ctx context.Context, payload *request.UpdateStatus) (response.StatusTransition, error)
}

func New(repo repositories.Repositories, log *otelzap.Logger, publish message.Publisher, rooms config.RoomSet, policy retry.Policy) Usecase {
	return &usecase{
		repo:    repo,
		log:     log,
		publish: publish,
		rooms:   rooms,
		policy:  policy,
		now:     time.Now,
	}
}

func (u *usecase) CheckAvailability(ctx context.Context, payload *request.Availability) (response.Availability, error) {
	date, slot, err := parseQuery(payload.Date, payload.TimeSlot, payload.StartTime, payload.EndTime)
	if err != nil {
		return response.Availability{}, err
	}

	resp := response.Availability{
		Date:           date,
		StartTime:      slot.StartClock(),
		EndTime:        slot.EndClock(),
		AllRooms:       u.rooms,
		AvailableRooms: []string{},
		BookedRooms:    []string{},
	}

	booked, err := u.bookedRooms(ctx, date, slot)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error resolve availability, failing closed: %v", err))
		resp.Degraded = true
		resp.Warning = degradedWarning
		return resp, nil
	}

	for _, room := range u.rooms {
		if booked[room.ID] {
			resp.BookedRooms = append(resp.BookedRooms, room.ID)
			continue
		}
		resp.AvailableRooms = append(resp.AvailableRooms, room.ID)
	}
	return resp, nil
}

func (u *usecase) AvailableRooms(ctx context.Context, payload *request.Availability) (response.RoomsAvailable, error) {
	availability, err := u.CheckAvailability(ctx, payload)
	if err != nil {
		return response.RoomsAvailable{}, err
	}

	resp := response.RoomsAvailable{
		Success:        true,
		AvailableRooms: availability.AvailableRooms,
		Rooms:          []config.Room{},
		Warning:        availability.Warning,
	}
	for _, id := range availability.AvailableRooms {
		if room, ok := u.rooms.Find(id); ok {
			resp.Rooms = append(resp.Rooms, room)
		}
	}
	return resp, nil
}

// bookedRooms returns the ids of rooms holding an active booking on date
// that overlaps slot. Dates on both sides are normalized before comparing.
func (u *usecase) bookedRooms(ctx context.Context, date string, slot timerange.Range) (map[string]bool, error) {
	bookings, err := retry.Do(ctx, u.policy, u.log, "list active bookings", func(ctx context.Context) ([]entity.Booking, error) {
		return u.repo.ListActiveBookings(ctx, date)
	})
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool)
	for _, b := range bookings {
		if !b.Status.IsActive() || timerange.NormalizeDate(b.Date) != date {
			continue
		}
		r, err := b.TimeRange()
		if err != nil {
			// An unreadable stored slot blocks the room.
			u.log.Ctx(ctx).Warn(fmt.Sprintf("booking %s has unreadable time range %q - %q", b.ID, b.StartTime, b.EndTime))
			booked[b.RoomID] = true
			continue
		}
		if timerange.Overlaps(slot, r) {
			booked[b.RoomID] = true
		}
	}
	return booked, nil
}

func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking) (response.BookingCreated, error) {
	date, slot, err := parseQuery(payload.Date, payload.TimeSlot, payload.StartTime, payload.EndTime)
	if err != nil {
		return response.BookingCreated{}, err
	}

	room, ok := u.rooms.Find(payload.RoomID)
	if !ok {
		return response.BookingCreated{}, errors.UnprocessableEntity("unknown room").
			WithDetails("room %q is not one of the configured rooms", payload.RoomID)
	}
	roomName := payload.RoomName
	if roomName == "" {
		roomName = room.Name
	}

	bookingType := payload.BookingTypeName
	if bookingType == "" {
		bookingType = payload.BookingType
	}

	booking := entity.Booking{
		FirstName:   strings.TrimSpace(payload.FirstName),
		LastName:    strings.TrimSpace(payload.LastName),
		Date:        date,
		StartTime:   slot.StartClock(),
		EndTime:     slot.EndClock(),
		RoomID:      room.ID,
		RoomName:    roomName,
		Status:      entity.StatusPending,
		BookingType: bookingType,
		CreatedAt:   u.now().UTC(),
		RequestKey:  uuid.NewString(),
	}
	if payload.TotalPrice != nil {
		booking.TotalPrice = *payload.TotalPrice
	}
	if payload.ReceiptURL != "" && payload.ReceiptFileName != "" {
		booking.ReceiptURL = absoluteURL(payload.ReceiptURL)
		booking.ReceiptFilename = payload.ReceiptFileName
	}

	// Every attempt carries the same RequestKey, so an attempt that stored
	// the record but lost the response is answered with that record's id.
	id, err := retry.Do(ctx, u.policy, u.log, "create booking", func(ctx context.Context) (string, error) {
		return u.repo.CreateBookingIfAvailable(ctx, booking)
	})
	if err != nil {
		return response.BookingCreated{}, err
	}
	booking.ID = id

	event := request.BookingCreated{
		Booking:          booking,
		LineUserID:       payload.LineUserID,
		RoomPricePerHour: room.PricePerHour,
	}
	if payload.BookingTypeAdditionalPrice != nil {
		event.AdditionalPricePerHour = *payload.BookingTypeAdditionalPrice
	}
	u.publishBookingCreated(ctx, event)

	return response.BookingCreated{Success: true, RecordID: id}, nil
}

// publishBookingCreated never fails the booking; errors are only logged.
func (u *usecase) publishBookingCreated(ctx context.Context, event request.BookingCreated) {
	if u.publish == nil {
		return
	}
	booking := event.Booking

	payload, err := json.Marshal(event)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal booking_created event: %v", err))
		return
	}

	if err := u.publish.Publish(messagestream.TopicBookingCreated, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish booking_created event for %s: %v", booking.ID, err))
	}
}

// TransitionStatus applies Pending -> Confirmed|Cancelled. Asking for the
// current status is a no-op success. Leaving a terminal status is refused.
func (u *usecase) TransitionStatus(ctx context.Context, payload *request.UpdateStatus) (response.StatusTransition, error) {
	target, ok := payload.Action.Target()
	if !ok {
		return response.StatusTransition{}, errors.BadRequest("unknown action").
			WithDetails("action must be %q or %q", entity.ActionApprove, entity.ActionCancel)
	}
	if payload.RecordID == "" {
		return response.StatusTransition{}, errors.BadRequest("record id is required")
	}

	current, err := retry.Do(ctx, u.policy, u.log, "find booking", func(ctx context.Context) (entity.Booking, error) {
		return u.repo.FindBookingByID(ctx, payload.RecordID)
	})
	if err != nil {
		return response.StatusTransition{}, err
	}

	result, err := u.transition(ctx, current, target)
	if errors.KindOf(err) != errors.KindConflict || current.Status != entity.StatusPending {
		return result, err
	}

	// Lost a race with another status change; judge again against the
	// status that won.
	latest, findErr := u.repo.FindBookingByID(ctx, payload.RecordID)
	if findErr != nil {
		return response.StatusTransition{}, findErr
	}
	if latest.Status == entity.StatusPending {
		return result, err
	}
	return u.transition(ctx, latest, target)
}

func (u *usecase) transition(ctx context.Context, current entity.Booking, target entity.Status) (response.StatusTransition, error) {
	result := response.StatusTransition{
		Booking:  current,
		Previous: current.Status,
		Current:  current.Status,
	}

	if current.Status == target {
		return result, nil
	}
	if current.Status.IsTerminal() {
		return result, errors.Conflict("booking is already final").
			WithDetails("booking %s is %s and cannot become %s", current.ID, current.Status, target)
	}

	updated, err := retry.Do(ctx, u.policy, u.log, "update booking status", func(ctx context.Context) (entity.Booking, error) {
		return u.repo.UpdateBookingStatus(ctx, current.ID, current.Status, target)
	})
	if err != nil {
		return result, err
	}

	result.Booking = updated
	result.Current = target
	result.Changed = true
	return result, nil
}

// parseQuery validates the date and time range of an availability query
// or booking. Unparseable values are a 400, an empty or inverted range 422.
func parseQuery(date, timeSlot, startTime, endTime string) (string, timerange.Range, error) {
	date = timerange.NormalizeDate(strings.TrimSpace(date))
	if date == "" {
		return "", timerange.Range{}, errors.BadRequest("date is required")
	}
	if _, err := timerange.ParseDate(date); err != nil {
		return "", timerange.Range{}, errors.BadRequest("invalid date").WithDetails("date must be YYYY-MM-DD")
	}

	var (
		slot timerange.Range
		err  error
	)
	switch {
	case startTime != "" && endTime != "":
		var start, end int
		if start, err = timerange.ParseClock(startTime); err != nil {
			return "", timerange.Range{}, errors.BadRequest("invalid start time").WithDetails("time must be HH:MM")
		}
		if end, err = timerange.ParseClock(endTime); err != nil {
			return "", timerange.Range{}, errors.BadRequest("invalid end time").WithDetails("time must be HH:MM")
		}
		slot = timerange.Range{Start: start, End: end}
	case timeSlot != "":
		if slot, err = timerange.ParseSlot(timeSlot); err != nil {
			if errors.Is(err, timerange.ErrEmptyRange) {
				return "", timerange.Range{}, errors.UnprocessableEntity("invalid time range").WithDetails("end time must be after start time")
			}
			return "", timerange.Range{}, errors.BadRequest("invalid time slot").WithDetails(`time slot must look like "HH:MM - HH:MM"`)
		}
	default:
		return "", timerange.Range{}, errors.BadRequest("time range is required").WithDetails("send timeSlot or startTime and endTime")
	}

	if err := slot.Validate(); err != nil {
		return "", timerange.Range{}, errors.UnprocessableEntity("invalid time range").WithDetails("end time must be after start time")
	}
	return date, slot, nil
}

func absoluteURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
