package usecases_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"booking-portal/config"
	"booking-portal/internal/module/booking/mocks"
	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/module/booking/models/request"
	"booking-portal/internal/module/booking/usecases"
	"booking-portal/internal/pkg/errors"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/retry"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
	p        *mockPublisher
	rooms    = config.RoomSet{{ID: "room1", Name: "ห้องที่ 1", PricePerHour: 500}, {ID: "room2", Name: "ห้องที่ 2"}}
)

type mockPublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
	err       error
}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published[topic] = append(m.published[topic], messages...)
	return nil
}

func setup(t *testing.T) {
	repoMock = mocks.NewRepositories(t)
	p = &mockPublisher{published: map[string][]*message.Message{}}
	policy := retry.Policy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
	uc = usecases.New(repoMock, log_internal.Setup(), p, rooms, policy)
}

func booking(id, room, date, start, end string, status entity.Status) entity.Booking {
	return entity.Booking{ID: id, RoomID: room, Date: date, StartTime: start, EndTime: end, Status: status}
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	existing := []entity.Booking{booking("rec1", "room1", "2024/06/01", "09:00", "10:00", entity.StatusConfirmed)}

	testCases := []struct {
		name          string
		payload       request.Availability
		wantAvailable []string
		wantBooked    []string
	}{
		{
			name:          "overlapping request excludes the room",
			payload:       request.Availability{Date: "2024-06-01", StartTime: "09:30", EndTime: "10:30"},
			wantAvailable: []string{"room2"},
			wantBooked:    []string{"room1"},
		},
		{
			name:          "touching request keeps the room",
			payload:       request.Availability{Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"},
			wantAvailable: []string{"room1", "room2"},
			wantBooked:    []string{},
		},
		{
			name:          "time slot form",
			payload:       request.Availability{Date: "2024-06-01T00:00:00.000Z", TimeSlot: "08:00 - 09:15"},
			wantAvailable: []string{"room2"},
			wantBooked:    []string{"room1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setup(t)
			repoMock.On("ListActiveBookings", mock.Anything, "2024-06-01").Return(existing, nil).Once()

			resp, err := uc.CheckAvailability(ctx, &tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, resp.AvailableRooms)
			assert.Equal(t, tc.wantBooked, resp.BookedRooms)
			assert.Equal(t, []config.Room(rooms), resp.AllRooms)
			assert.False(t, resp.Degraded)
		})
	}
}

func TestCheckAvailabilityIgnoresOtherDatesAndCancelled(t *testing.T) {
	setup(t)
	repoMock.On("ListActiveBookings", mock.Anything, "2024-06-01").Return([]entity.Booking{
		booking("rec1", "room1", "2024-06-02", "09:00", "10:00", entity.StatusConfirmed),
		booking("rec2", "room2", "2024-06-01", "09:00", "10:00", entity.StatusCancelled),
	}, nil).Once()

	resp, err := uc.CheckAvailability(context.Background(), &request.Availability{Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"room1", "room2"}, resp.AvailableRooms)
}

func TestCheckAvailabilityFailsClosed(t *testing.T) {
	setup(t)
	storeErr := errors.GatewayTimeout("airtable request timed out")
	repoMock.On("ListActiveBookings", mock.Anything, "2024-06-01").Return(nil, storeErr).Times(4)

	resp, err := uc.CheckAvailability(context.Background(), &request.Availability{Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableRooms)
	assert.Empty(t, resp.BookedRooms)
	assert.True(t, resp.Degraded)
	assert.NotEmpty(t, resp.Warning)

	repoMock.AssertNumberOfCalls(t, "ListActiveBookings", 4)
}

func TestCheckAvailabilityValidation(t *testing.T) {
	testCases := []struct {
		name     string
		payload  request.Availability
		wantKind errors.Kind
	}{
		{name: "missing date", payload: request.Availability{StartTime: "09:00", EndTime: "10:00"}, wantKind: errors.KindValidation},
		{name: "missing range", payload: request.Availability{Date: "2024-06-01"}, wantKind: errors.KindValidation},
		{name: "bad slot", payload: request.Availability{Date: "2024-06-01", TimeSlot: "morning"}, wantKind: errors.KindValidation},
		{name: "bad clock", payload: request.Availability{Date: "2024-06-01", StartTime: "25:00", EndTime: "26:00"}, wantKind: errors.KindValidation},
		{name: "inverted range", payload: request.Availability{Date: "2024-06-01", StartTime: "11:00", EndTime: "10:00"}, wantKind: errors.KindUnprocessable},
		{name: "inverted slot", payload: request.Availability{Date: "2024-06-01", TimeSlot: "11:00 - 11:00"}, wantKind: errors.KindUnprocessable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setup(t)
			_, err := uc.CheckAvailability(context.Background(), &tc.payload)
			assert.Equal(t, tc.wantKind, errors.KindOf(err))
			repoMock.AssertNotCalled(t, "ListActiveBookings", mock.Anything, mock.Anything)
		})
	}
}

func TestAvailableRooms(t *testing.T) {
	setup(t)
	repoMock.On("ListActiveBookings", mock.Anything, "2024-06-01").Return([]entity.Booking{
		booking("rec1", "room2", "2024-06-01", "09:00", "12:00", entity.StatusPending),
	}, nil).Once()

	resp, err := uc.AvailableRooms(context.Background(), &request.Availability{Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"room1"}, resp.AvailableRooms)
	assert.Equal(t, []config.Room{{ID: "room1", Name: "ห้องที่ 1", PricePerHour: 500}}, resp.Rooms)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	price := 1500.0
	extra := 250.0

	t.Run("success forces pending and publishes", func(t *testing.T) {
		setup(t)
		payload := &request.CreateBooking{
			FirstName: " Somchai ", LastName: "Jaidee", Date: "2025/03/01", TimeSlot: "10:00 - 12:00",
			RoomID: "room1", BookingTypeName: "Workshop", TotalPrice: &price, BookingTypeAdditionalPrice: &extra,
			ReceiptURL: "i.imgur.com/abc.png", ReceiptFileName: "abc.png", LineUserID: "U1", Status: "Confirmed",
		}

		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.MatchedBy(func(b entity.Booking) bool {
			return b.Status == entity.StatusPending &&
				b.FirstName == "Somchai" &&
				b.Date == "2025-03-01" &&
				b.StartTime == "10:00" && b.EndTime == "12:00" &&
				b.RoomName == "ห้องที่ 1" &&
				b.BookingType == "Workshop" &&
				b.TotalPrice == 1500 &&
				b.ReceiptURL == "https://i.imgur.com/abc.png"
		})).Return("recNew", nil).Once()

		resp, err := uc.CreateBooking(ctx, payload)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "recNew", resp.RecordID)

		require.Len(t, p.published["booking_created"], 1)
		var event request.BookingCreated
		require.NoError(t, json.Unmarshal(p.published["booking_created"][0].Payload, &event))
		assert.Equal(t, "recNew", event.Booking.ID)
		assert.Equal(t, "U1", event.LineUserID)
		assert.Equal(t, 500.0, event.RoomPricePerHour)
		assert.Equal(t, 250.0, event.AdditionalPricePerHour)
	})

	t.Run("publish failure does not fail the booking", func(t *testing.T) {
		setup(t)
		p.err = stderrors.New("amqp closed")
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).Return("recNew", nil).Once()

		resp, err := uc.CreateBooking(ctx, &request.CreateBooking{
			FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "10:00", EndTime: "11:00", RoomID: "room2",
		})
		require.NoError(t, err)
		assert.Equal(t, "recNew", resp.RecordID)
	})

	t.Run("conflict is returned without retry", func(t *testing.T) {
		setup(t)
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).
			Return("", errors.Conflict("room is already booked for this time")).Once()

		_, err := uc.CreateBooking(ctx, &request.CreateBooking{
			FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "10:00", EndTime: "11:00", RoomID: "room1",
		})
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
		repoMock.AssertNumberOfCalls(t, "CreateBookingIfAvailable", 1)
		assert.Empty(t, p.published)
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		setup(t)
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).
			Return("", errors.TooManyRequests("rate limited")).Twice()
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).Return("recNew", nil).Once()

		resp, err := uc.CreateBooking(ctx, &request.CreateBooking{
			FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "10:00", EndTime: "11:00", RoomID: "room1",
		})
		require.NoError(t, err)
		assert.Equal(t, "recNew", resp.RecordID)
		repoMock.AssertNumberOfCalls(t, "CreateBookingIfAvailable", 3)
	})

	t.Run("retries share one request key", func(t *testing.T) {
		setup(t)
		var keys []string
		record := func(args mock.Arguments) {
			keys = append(keys, args.Get(1).(entity.Booking).RequestKey)
		}
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).
			Run(record).Return("", errors.InternalServerError("airtable 503")).Once()
		repoMock.On("CreateBookingIfAvailable", mock.Anything, mock.Anything).
			Run(record).Return("recNew", nil).Once()

		resp, err := uc.CreateBooking(ctx, &request.CreateBooking{
			FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "10:00", EndTime: "11:00", RoomID: "room1",
		})
		require.NoError(t, err)
		assert.Equal(t, "recNew", resp.RecordID)
		require.Len(t, keys, 2)
		assert.NotEmpty(t, keys[0])
		assert.Equal(t, keys[0], keys[1])
		assert.Len(t, p.published["booking_created"], 1)
	})

	t.Run("rejects before writing", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  request.CreateBooking
			wantKind errors.Kind
		}{
			{name: "missing date", payload: request.CreateBooking{FirstName: "A", LastName: "B", StartTime: "10:00", EndTime: "11:00", RoomID: "room1"}, wantKind: errors.KindValidation},
			{name: "missing start", payload: request.CreateBooking{FirstName: "A", LastName: "B", Date: "2025-03-01", EndTime: "11:00", RoomID: "room1"}, wantKind: errors.KindValidation},
			{name: "end before start", payload: request.CreateBooking{FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "12:00", EndTime: "11:00", RoomID: "room1"}, wantKind: errors.KindUnprocessable},
			{name: "unknown room", payload: request.CreateBooking{FirstName: "A", LastName: "B", Date: "2025-03-01", StartTime: "10:00", EndTime: "11:00", RoomID: "room9"}, wantKind: errors.KindUnprocessable},
			{name: "bad date", payload: request.CreateBooking{FirstName: "A", LastName: "B", Date: "01-03-2025", StartTime: "10:00", EndTime: "11:00", RoomID: "room1"}, wantKind: errors.KindValidation},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				setup(t)
				_, err := uc.CreateBooking(ctx, &tc.payload)
				assert.Equal(t, tc.wantKind, errors.KindOf(err))
				repoMock.AssertNotCalled(t, "CreateBookingIfAvailable", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending", func(t *testing.T) {
		setup(t)
		pending := booking("rec1", "room1", "2025-03-01", "10:00", "11:00", entity.StatusPending)
		confirmed := pending
		confirmed.Status = entity.StatusConfirmed

		repoMock.On("FindBookingByID", mock.Anything, "rec1").Return(pending, nil).Once()
		repoMock.On("UpdateBookingStatus", mock.Anything, "rec1", entity.StatusPending, entity.StatusConfirmed).Return(confirmed, nil).Once()

		resp, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: entity.ActionApprove})
		require.NoError(t, err)
		assert.True(t, resp.Changed)
		assert.Equal(t, entity.StatusPending, resp.Previous)
		assert.Equal(t, entity.StatusConfirmed, resp.Current)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		setup(t)
		repoMock.On("FindBookingByID", mock.Anything, "rec1").
			Return(booking("rec1", "room1", "2025-03-01", "10:00", "11:00", entity.StatusConfirmed), nil).Once()

		resp, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: entity.ActionApprove})
		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Equal(t, entity.StatusConfirmed, resp.Current)
		repoMock.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terminal status is refused", func(t *testing.T) {
		setup(t)
		repoMock.On("FindBookingByID", mock.Anything, "rec1").
			Return(booking("rec1", "room1", "2025-03-01", "10:00", "11:00", entity.StatusCancelled), nil).Once()

		resp, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: entity.ActionApprove})
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
		assert.Equal(t, entity.StatusCancelled, resp.Current)
		repoMock.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race re-judged against winner", func(t *testing.T) {
		setup(t)
		pending := booking("rec1", "room1", "2025-03-01", "10:00", "11:00", entity.StatusPending)
		confirmed := pending
		confirmed.Status = entity.StatusConfirmed

		repoMock.On("FindBookingByID", mock.Anything, "rec1").Return(pending, nil).Once()
		repoMock.On("UpdateBookingStatus", mock.Anything, "rec1", entity.StatusPending, entity.StatusConfirmed).
			Return(confirmed, errors.Conflict("booking status changed")).Once()
		repoMock.On("FindBookingByID", mock.Anything, "rec1").Return(confirmed, nil).Once()

		resp, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: entity.ActionApprove})
		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Equal(t, entity.StatusConfirmed, resp.Current)
	})

	t.Run("unknown action", func(t *testing.T) {
		setup(t)
		_, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: "delete"})
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		setup(t)
		repoMock.On("FindBookingByID", mock.Anything, "rec1").Return(entity.Booking{}, errors.NotFound("booking not found")).Once()

		_, err := uc.TransitionStatus(ctx, &request.UpdateStatus{RecordID: "rec1", Action: entity.ActionCancel})
		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}
