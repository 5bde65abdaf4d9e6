package entity

import (
	"time"

	"booking-portal/internal/pkg/timerange"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// IsActive reports whether a booking holds its room.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionCancel  Action = "cancel"
)

// Target returns the status an action drives a booking to.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusConfirmed, true
	case ActionCancel:
		return StatusCancelled, true
	}
	return "", false
}

type Booking struct {
	ID              string    `db:"id" json:"id"`
	FirstName       string    `db:"first_name" json:"firstName"`
	LastName        string    `db:"last_name" json:"lastName"`
	Date            string    `db:"booking_date" json:"date"`
	StartTime       string    `db:"start_time" json:"startTime"`
	EndTime         string    `db:"end_time" json:"endTime"`
	RoomID          string    `db:"room_id" json:"roomId"`
	RoomName        string    `db:"room_name" json:"roomName"`
	Status          Status    `db:"status" json:"status"`
	BookingType     string    `db:"booking_type" json:"bookingType,omitempty"`
	TotalPrice      float64   `db:"total_price" json:"totalPrice"`
	ReceiptURL      string    `db:"receipt_url" json:"receiptUrl,omitempty"`
	ReceiptFilename string    `db:"receipt_filename" json:"receiptFileName,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	// RequestKey is fixed once per create request and shared by its retries.
	RequestKey string `db:"-" json:"-"`
}

func (b Booking) TimeRange() (timerange.Range, error) {
	return timerange.New(b.StartTime, b.EndTime)
}

func (b Booking) TimeSlot() string {
	return b.StartTime + " - " + b.EndTime
}

func (b Booking) FullName() string {
	return b.FirstName + " " + b.LastName
}

func (b Booking) HasReceipt() bool {
	return b.ReceiptURL != ""
}
