package request

import (
	"booking-portal/internal/module/booking/models/entity"
)

type Availability struct {
	Date      string `query:"date" json:"date" validate:"required"`
	TimeSlot  string `query:"timeSlot" json:"timeSlot"`
	StartTime string `query:"startTime" json:"startTime" validate:"required_without=TimeSlot"`
	EndTime   string `query:"endTime" json:"endTime" validate:"required_without=TimeSlot"`
}

type CreateBooking struct {
	FirstName       string   `json:"firstName" validate:"required"`
	LastName        string   `json:"lastName" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	TimeSlot        string   `json:"timeSlot"`
	StartTime       string   `json:"startTime" validate:"required_without=TimeSlot"`
	EndTime         string   `json:"endTime" validate:"required_without=TimeSlot"`
	RoomID          string   `json:"roomId" validate:"required"`
	RoomName        string   `json:"roomName"`
	BookingType     string   `json:"bookingType"`
	BookingTypeName string   `json:"bookingTypeName"`
	TotalPrice      *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
	// BookingTypeAdditionalPrice is per hour, on top of the room price.
	BookingTypeAdditionalPrice *float64 `json:"bookingTypeAdditionalPrice" validate:"omitempty,gte=0"`
	ReceiptURL      string   `json:"receiptUrl"`
	ReceiptFileName string   `json:"receiptFileName"`
	LineUserID      string   `json:"lineUserId"`
	// Status is accepted for compatibility and ignored.
	Status string `json:"status"`
}

type UpdateStatus struct {
	RecordID string        `json:"recordId" validate:"required"`
	Action   entity.Action `json:"action" validate:"required,oneof=approve cancel"`
}

// BookingCreated is the booking_created event payload.
type BookingCreated struct {
	Booking    entity.Booking `json:"booking" validate:"required"`
	LineUserID string         `json:"lineUserId,omitempty"`
	// Per hour prices that make up the total, when known.
	RoomPricePerHour       float64 `json:"roomPricePerHour,omitempty"`
	AdditionalPricePerHour float64 `json:"additionalPricePerHour,omitempty"`
}

type PoisonedQueue struct {
	TopicTarget string `json:"topic_target"`
	ErrorMsg    string `json:"error_msg"`
	Payload     []byte `json:"payload"`
}
