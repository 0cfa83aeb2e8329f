package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/booking"
)

const uniqueViolation = "23505"

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `booking_id, user_id, resource, starts_at, price_cents, status, created_at, cancelled_at`

func scanBooking(row interface{ Scan(...any) error }) (booking.Booking, error) {
	var (
		b           booking.Booking
		status      string
		createdAt   sql.NullTime
		cancelledAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Resource, &b.StartsAt, &b.PriceCents, &status, &createdAt, &cancelledAt); err != nil {
		return booking.Booking{}, err
	}
	b.Status = booking.Status(status)
	b.StartsAt = b.StartsAt.UTC()
	b.CreatedAt = timePtr(createdAt)
	b.CancelledAt = timePtr(cancelledAt)
	return b, nil
}

func bookingNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "booking not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	created, err := scanBooking(queryRow(ctx, r.db,
		`INSERT INTO bookings (booking_id, user_id, resource, starts_at, price_cents, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+bookingColumns,
		b.ID, b.UserID, b.Resource, b.StartsAt, b.PriceCents, string(b.Status),
	))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return booking.Booking{}, &domain.DomainError{
			Code:       domain.ErrorCodeSlotTaken,
			Message:    "resource is already booked for this time",
			HTTPStatus: http.StatusConflict,
		}
	}
	return created, err
}

func (r *BookingRepository) LockByID(ctx context.Context, id string) (booking.Booking, error) {
	b, err := scanBooking(queryRow(ctx, r.db,
		`SELECT `+bookingColumns+`
		   FROM bookings
		  WHERE booking_id = $1
		    FOR UPDATE`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Booking{}, bookingNotFound()
	}
	return b, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	b, err := scanBooking(queryRow(ctx, r.db,
		`SELECT `+bookingColumns+`
		   FROM bookings
		  WHERE booking_id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Booking{}, bookingNotFound()
	}
	return b, err
}

func (r *BookingRepository) SlotTaken(ctx context.Context, resource string, startsAt time.Time) (bool, error) {
	var taken bool
	err := queryRow(ctx, r.db,
		`SELECT EXISTS(
		   SELECT 1 FROM bookings
		    WHERE resource = $1 AND starts_at = $2 AND status <> $3)`,
		resource, startsAt, string(booking.StatusCancelled),
	).Scan(&taken)
	return taken, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status booking.Status) (booking.Booking, error) {
	b, err := scanBooking(queryRow(ctx, r.db,
		`UPDATE bookings
		    SET status = $2,
		        cancelled_at = CASE WHEN $2 = 'CANCELLED' THEN now() ELSE cancelled_at END
		  WHERE booking_id = $1
		  RETURNING `+bookingColumns,
		id, string(status),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return booking.Booking{}, bookingNotFound()
	}
	return b, err
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+bookingColumns+`
		   FROM bookings
		  WHERE user_id = $1
		  ORDER BY starts_at, booking_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
