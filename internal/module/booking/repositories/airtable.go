package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booking-portal/config"
	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/pkg/airtable"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/lock"
	"booking-portal/internal/pkg/timerange"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Column names of the Bookings table.
const (
	fieldFirstName   = "First Name"
	fieldLastName    = "Last Name"
	fieldDate        = "Date"
	fieldTimeSlot    = "Time Slot"
	fieldStartTime   = "Start Time"
	fieldEndTime     = "End Time"
	fieldRoomID      = "Room ID"
	fieldRoomName    = "Room Name"
	fieldStatus      = "Status"
	fieldBookingType = "Booking Type"
	fieldTotalPrice  = "Total Price"
	fieldReceipt     = "Receipt"
	fieldCreatedAt   = "Created At"
)

const activeFormula = `OR({Status} = "Pending", {Status} = "Confirmed")`

type airtableRepository struct {
	table           *airtable.Table
	locker          lock.Locker
	log             *otelzap.Logger
	writeTimeFields bool
	requestKeyField string
	now             func() time.Time
}

// NewAirtable keeps bookings in an Airtable table. Writes for one room and
// date are serialized through locker.
func NewAirtable(client *airtable.Client, cfg *config.AirtableConfig, locker lock.Locker, log *otelzap.Logger) Repositories {
	return &airtableRepository{
		table:           client.Table(cfg.BookingTable),
		locker:          locker,
		log:             log,
		writeTimeFields: cfg.WriteTimeFields,
		requestKeyField: cfg.RequestKeyField,
		now:             time.Now,
	}
}

func (r *airtableRepository) ListActiveBookings(ctx context.Context, date string) ([]entity.Booking, error) {
	records, err := r.table.List(ctx, airtable.ListOptions{FilterByFormula: activeFormula})
	if err != nil {
		return nil, mapAirtableError(err)
	}

	// Date columns come back in mixed formats, so the date filter runs here.
	want := timerange.NormalizeDate(date)
	bookings := make([]entity.Booking, 0, len(records))
	for _, rec := range records {
		b := r.recordToBooking(rec)
		if want != "" && timerange.NormalizeDate(b.Date) != want {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *airtableRepository) FindBookingByID(ctx context.Context, id string) (entity.Booking, error) {
	rec, err := r.table.Find(ctx, id)
	if err != nil {
		return entity.Booking{}, mapAirtableError(err)
	}
	return r.recordToBooking(rec), nil
}

func (r *airtableRepository) CreateBookingIfAvailable(ctx context.Context, booking entity.Booking) (string, error) {
	unlock, err := r.locker.Lock(ctx, SlotLockKey(booking.RoomID, booking.Date))
	if err != nil {
		return "", err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			r.log.Ctx(ctx).Warn(fmt.Sprintf("error release booking lock: %v", err))
		}
	}()

	existing, err := r.ListActiveBookings(ctx, booking.Date)
	if err != nil {
		return "", err
	}
	if stored, found := findByRequestKey(booking.RequestKey, existing); found {
		r.log.Ctx(ctx).Info(fmt.Sprintf("booking %s already stored by an earlier attempt", stored.ID))
		return stored.ID, nil
	}
	if other, found := findConflict(booking, existing); found {
		return "", conflictError(booking, other)
	}

	rec, err := r.table.Create(ctx, r.bookingToFields(booking))
	if err != nil {
		return "", mapAirtableError(err)
	}
	return rec.ID, nil
}

func (r *airtableRepository) UpdateBookingStatus(ctx context.Context, id string, from, to entity.Status) (entity.Booking, error) {
	unlock, err := r.locker.Lock(ctx, StatusLockKey(id))
	if err != nil {
		return entity.Booking{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			r.log.Ctx(ctx).Warn(fmt.Sprintf("error release status lock: %v", err))
		}
	}()

	current, err := r.FindBookingByID(ctx, id)
	if err != nil {
		return entity.Booking{}, err
	}
	if current.Status != from {
		return current, errors.Conflict("booking status changed").
			WithDetails("booking %s is %s, expected %s", id, current.Status, from)
	}

	rec, err := r.table.Update(ctx, id, map[string]interface{}{fieldStatus: string(to)})
	if err != nil {
		return entity.Booking{}, mapAirtableError(err)
	}
	return r.recordToBooking(rec), nil
}

func (r *airtableRepository) bookingToFields(b entity.Booking) map[string]interface{} {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	fields := map[string]interface{}{
		fieldFirstName: b.FirstName,
		fieldLastName:  b.LastName,
		fieldDate:      timerange.NormalizeDate(b.Date),
		fieldTimeSlot:  b.TimeSlot(),
		fieldRoomID:    b.RoomID,
		fieldRoomName:  b.RoomName,
		fieldStatus:    string(b.Status),
		fieldCreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
	if r.requestKeyField != "" && b.RequestKey != "" {
		fields[r.requestKeyField] = b.RequestKey
	}
	if r.writeTimeFields {
		fields[fieldStartTime] = b.StartTime
		fields[fieldEndTime] = b.EndTime
	}
	if b.BookingType != "" {
		fields[fieldBookingType] = b.BookingType
	}
	if b.TotalPrice > 0 {
		fields[fieldTotalPrice] = b.TotalPrice
	}
	if b.ReceiptURL != "" && b.ReceiptFilename != "" {
		fields[fieldReceipt] = []map[string]string{{
			"url":      b.ReceiptURL,
			"filename": b.ReceiptFilename,
		}}
	}
	return fields
}

func (r *airtableRepository) recordToBooking(rec airtable.Record) entity.Booking {
	b := entity.Booking{
		ID:          rec.ID,
		FirstName:   stringField(rec.Fields, fieldFirstName),
		LastName:    stringField(rec.Fields, fieldLastName),
		Date:        timerange.NormalizeDate(stringField(rec.Fields, fieldDate)),
		StartTime:   stringField(rec.Fields, fieldStartTime),
		EndTime:     stringField(rec.Fields, fieldEndTime),
		RoomID:      stringField(rec.Fields, fieldRoomID),
		RoomName:    stringField(rec.Fields, fieldRoomName),
		Status:      entity.Status(stringField(rec.Fields, fieldStatus)),
		BookingType: stringField(rec.Fields, fieldBookingType),
	}
	if r.requestKeyField != "" {
		b.RequestKey = stringField(rec.Fields, r.requestKeyField)
	}

	if b.StartTime == "" || b.EndTime == "" {
		if slot, err := timerange.ParseSlot(stringField(rec.Fields, fieldTimeSlot)); err == nil {
			b.StartTime, b.EndTime = slot.StartClock(), slot.EndClock()
		}
	}

	if price, ok := rec.Fields[fieldTotalPrice].(float64); ok {
		b.TotalPrice = price
	}

	if attachments, ok := rec.Fields[fieldReceipt].([]interface{}); ok && len(attachments) > 0 {
		if att, ok := attachments[0].(map[string]interface{}); ok {
			b.ReceiptURL, _ = att["url"].(string)
			b.ReceiptFilename, _ = att["filename"].(string)
		}
	}

	created := stringField(rec.Fields, fieldCreatedAt)
	if created == "" {
		created = rec.CreatedTime
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		b.CreatedAt = t
	}
	return b
}

func stringField(fields map[string]interface{}, name string) string {
	switch v := fields[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// mapAirtableError keeps the error kind and adds the remediation text
// shown to the caller for the Airtable error types seen on this table.
func mapAirtableError(err error) error {
	eg, ok := errors.As(err)
	if !ok {
		return err
	}
	apiErr, ok := airtable.AsAPIError(err)
	if !ok {
		if eg.Kind == errors.KindTimeout {
			return eg.WithDetails("could not reach Airtable in time, check the network and try again")
		}
		return err
	}

	msg := strings.ToLower(apiErr.Message)
	switch {
	case apiErr.Status == 401:
		return eg.WithDetails("Airtable rejected the access token, check AIRTABLE_API_KEY")
	case apiErr.Type == airtable.TypeNotAuthorized || apiErr.Status == 403:
		return eg.WithDetails("check that the access token can reach this base and has the data.records:read and data.records:write scopes")
	case apiErr.Type == airtable.TypeInvalidAttachment:
		return eg.WithDetails("Airtable does not accept data URLs for attachments, upload the receipt to a file host first")
	case apiErr.Type == airtable.TypeInvalidChoice || strings.Contains(msg, "select option"):
		return eg.WithDetails("the %q field is missing the %q option", fieldStatus, entity.StatusPending)
	case apiErr.Type == airtable.TypeInvalidValue && (strings.Contains(msg, "receipt") || strings.Contains(msg, "attachment")):
		return eg.WithDetails("the %q field must be an attachment field and the URL must be reachable", fieldReceipt)
	case apiErr.Type == airtable.TypeInvalidValue && strings.Contains(msg, "date"):
		return eg.WithDetails("the %q field must be a date or single line text in YYYY-MM-DD format", fieldDate)
	case apiErr.Type == airtable.TypeUnknownField:
		return eg.WithDetails("%s, add the field to the table or turn off AIRTABLE_WRITE_TIME_FIELDS / clear AIRTABLE_REQUEST_KEY_FIELD", apiErr.Message)
	case apiErr.Status == 404:
		return errors.NotFound("booking not found")
	}
	return err
}
