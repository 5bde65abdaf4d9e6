package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	"booking-portal/internal/module/booking/models/entity"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/timerange"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

//go:embed schema.sql
var Schema string

const bookingColumns = `id, first_name, last_name, booking_date, start_time, end_time, room_id, room_name, status, booking_type, total_price, receipt_url, receipt_filename, created_at`

const (
	queryListActive = `SELECT ` + bookingColumns + ` FROM bookings WHERE status IN ('Pending', 'Confirmed') AND ($1 = '' OR booking_date = $1) ORDER BY booking_date, start_time`

	queryFindByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	querySlotLock = `SELECT pg_advisory_xact_lock(hashtext($1))`

	queryFindOverlap = `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = $1 AND booking_date = $2 AND status IN ('Pending', 'Confirmed') AND start_time < $4 AND $3 < end_time LIMIT 1`

	queryInsert = `INSERT INTO bookings (` + bookingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	queryUpdateStatus = `UPDATE bookings SET status = $3, updated_at = now() WHERE id = $1 AND status = $2 RETURNING ` + bookingColumns
)

type postgresRepository struct {
	db  *sqlx.DB
	log *otelzap.Logger
	now func() time.Time
}

// NewPostgres keeps bookings in the bookings table of schema.sql.
func NewPostgres(db *sqlx.DB, log *otelzap.Logger) Repositories {
	return &postgresRepository{db: db, log: log, now: time.Now}
}

func (r *postgresRepository) ListActiveBookings(ctx context.Context, date string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := r.db.SelectContext(ctx, &bookings, queryListActive, timerange.NormalizeDate(date)); err != nil {
		return nil, classifyPgError(err, "error list active bookings")
	}
	return bookings, nil
}

func (r *postgresRepository) FindBookingByID(ctx context.Context, id string) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryFindByID, id)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		return entity.Booking{}, classifyPgError(err, "error find booking by id")
	}
	return booking, nil
}

// CreateBookingIfAvailable holds a transaction-scoped advisory lock on the
// room and date, so the overlap check and the insert see the same rows.
// The request key doubles as the row id, so a retry of a committed insert
// finds its own row.
func (r *postgresRepository) CreateBookingIfAvailable(ctx context.Context, booking entity.Booking) (string, error) {
	booking.Date = timerange.NormalizeDate(booking.Date)
	if booking.ID == "" {
		booking.ID = booking.RequestKey
	}
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", classifyPgError(err, "error starting transaction")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			r.log.Ctx(ctx).Warn(fmt.Sprintf("error rollback booking transaction: %v", err))
		}
	}()

	if _, err := tx.ExecContext(ctx, querySlotLock, booking.RoomID+"|"+booking.Date); err != nil {
		return "", classifyPgError(err, "error lock booking slot")
	}

	var existing entity.Booking
	err = tx.GetContext(ctx, &existing, queryFindOverlap, booking.RoomID, booking.Date, booking.StartTime, booking.EndTime)
	if err == nil {
		if existing.ID == booking.ID {
			return existing.ID, nil
		}
		return "", conflictError(booking, existing)
	}
	if err != sql.ErrNoRows {
		return "", classifyPgError(err, "error check booking overlap")
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = r.now().UTC()
	}

	_, err = tx.ExecContext(ctx, queryInsert,
		booking.ID, booking.FirstName, booking.LastName, booking.Date, booking.StartTime, booking.EndTime,
		booking.RoomID, booking.RoomName, booking.Status, booking.BookingType, booking.TotalPrice,
		booking.ReceiptURL, booking.ReceiptFilename, booking.CreatedAt,
	)
	if isPrimaryKeyViolation(err) {
		// The row is no longer active, but this request stored it.
		return booking.ID, nil
	}
	if err != nil {
		return "", classifyPgError(err, "error insert booking")
	}

	if err := tx.Commit(); err != nil {
		return "", classifyPgError(err, "error committing transaction")
	}
	return booking.ID, nil
}

func (r *postgresRepository) UpdateBookingStatus(ctx context.Context, id string, from, to entity.Status) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, queryUpdateStatus, id, from, to)
	if err == nil {
		return booking, nil
	}
	if err != sql.ErrNoRows {
		return entity.Booking{}, classifyPgError(err, "error update booking status")
	}

	// Nothing matched: either the id is unknown or the status moved on.
	current, err := r.FindBookingByID(ctx, id)
	if err != nil {
		return entity.Booking{}, err
	}
	return current, errors.Conflict("booking status changed").
		WithDetails("booking %s is %s, expected %s", id, current.Status, from)
}

func isPrimaryKeyViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "bookings_pkey"
}

// classifyPgError maps driver failures onto error kinds so the retry
// wrapper only repeats transient ones.
func classifyPgError(err error, msg string) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "40001", pqErr.Code == "40P01", pqErr.Code == "55P03", pqErr.Code == "57014":
			return errors.Wrap(errors.KindTimeout, err, msg)
		case pqErr.Code == "23505":
			return errors.Wrap(errors.KindConflict, err, msg)
		case pqErr.Code.Class() == "23", pqErr.Code.Class() == "22":
			return errors.Wrap(errors.KindValidation, err, msg)
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "53", pqErr.Code.Class() == "57":
			return errors.Wrap(errors.KindServerError, err, msg)
		}
		return errors.Wrap(errors.KindUnknown, err, msg)
	}

	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Wrap(errors.KindTimeout, err, msg)
	case stderrors.Is(err, driver.ErrBadConn), stderrors.As(err, &netErr):
		return errors.Wrap(errors.KindServerError, err, msg)
	}
	return errors.Wrap(errors.KindUnknown, err, msg)
}
