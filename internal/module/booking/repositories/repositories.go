package repositories

import (
	"context"
	"fmt"

	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/timerange"
)

const (
	DriverAirtable = "airtable"
	DriverPostgres = "postgres"
)

type Repositories interface {
	// ListActiveBookings returns Pending and Confirmed bookings. A non-empty
	// date narrows the result where the store can filter on it.
	ListActiveBookings(ctx context.Context, date string) ([]entity.Booking, error)
	FindBookingByID(ctx context.Context, id string) (entity.Booking, error)
	// CreateBookingIfAvailable inserts booking only when no active booking
	// for the same room and date overlaps it, and returns the new id. A
	// booking already stored under the same RequestKey is returned as is.
	CreateBookingIfAvailable(ctx context.Context, booking entity.Booking) (string, error)
	// UpdateBookingStatus moves a booking from one status to another and
	// fails with a conflict when the stored status is no longer from.
	UpdateBookingStatus(ctx context.Context, id string, from, to entity.Status) (entity.Booking, error)
}

func SlotLockKey(roomID, date string) string {
	return fmt.Sprintf("booking:lock:%s:%s", roomID, timerange.NormalizeDate(date))
}

func StatusLockKey(id string) string {
	return fmt.Sprintf("booking:status:%s", id)
}

// findConflict returns the first active booking of existing that shares
// the room and date of candidate and overlaps its time range. A stored
// booking whose range cannot be parsed is treated as conflicting.
func findConflict(candidate entity.Booking, existing []entity.Booking) (entity.Booking, bool) {
	want, err := candidate.TimeRange()
	if err != nil {
		return entity.Booking{}, false
	}
	date := timerange.NormalizeDate(candidate.Date)

	for _, b := range existing {
		if !b.Status.IsActive() || b.RoomID != candidate.RoomID || timerange.NormalizeDate(b.Date) != date {
			continue
		}
		got, err := b.TimeRange()
		if err != nil || timerange.Overlaps(want, got) {
			return b, true
		}
	}
	return entity.Booking{}, false
}

// findByRequestKey returns the booking an earlier attempt of the same
// create request already stored.
func findByRequestKey(key string, existing []entity.Booking) (entity.Booking, bool) {
	if key == "" {
		return entity.Booking{}, false
	}
	for _, b := range existing {
		if b.RequestKey == key {
			return b, true
		}
	}
	return entity.Booking{}, false
}

func conflictError(candidate, existing entity.Booking) error {
	return errors.Conflict("room is already booked for this time").
		WithDetails("%s is booked on %s from %s (booking %s)",
			candidate.RoomID, timerange.NormalizeDate(candidate.Date), existing.TimeSlot(), existing.ID)
}
