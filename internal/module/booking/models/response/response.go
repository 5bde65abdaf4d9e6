package response

import (
	"booking-portal/config"
	"booking-portal/internal/module/booking/models/entity"
)

type Availability struct {
	Date           string        `json:"date"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	AvailableRooms []string      `json:"availableRooms"`
	AllRooms       []config.Room `json:"allRooms"`
	BookedRooms    []string      `json:"bookedRooms"`
	// Degraded is set when the store could not be read and nothing is
	// reported available.
	Degraded bool   `json:"degraded,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type RoomsAvailable struct {
	Success        bool          `json:"success"`
	AvailableRooms []string      `json:"availableRooms"`
	Rooms          []config.Room `json:"rooms"`
	Warning        string        `json:"warning,omitempty"`
}

type BookingCreated struct {
	Success  bool   `json:"success"`
	RecordID string `json:"recordId"`
}

type StatusTransition struct {
	Booking  entity.Booking `json:"booking"`
	Previous entity.Status  `json:"previous"`
	Current  entity.Status  `json:"current"`
	// Changed is false when the booking already had the target status.
	Changed bool `json:"changed"`
}
