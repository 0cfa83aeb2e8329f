package pg

import (
	"context"
	"database/sql"

	"bookingsvc/internal/domain/payment"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `payment_id, booking_id, amount_cents, status, reason, created_at`

func scanPayment(row interface{ Scan(...any) error }) (payment.Payment, error) {
	var (
		p         payment.Payment
		status    string
		createdAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.BookingID, &p.AmountCents, &status, &p.Reason, &createdAt); err != nil {
		return payment.Payment{}, err
	}
	p.Status = payment.Status(status)
	p.CreatedAt = timePtr(createdAt)
	return p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	return scanPayment(queryRow(ctx, r.db,
		`INSERT INTO payments (payment_id, booking_id, amount_cents, status, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+paymentColumns,
		p.ID, p.BookingID, p.AmountCents, string(p.Status), p.Reason,
	))
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID string) ([]payment.Payment, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+paymentColumns+`
		   FROM payments
		  WHERE booking_id = $1
		  ORDER BY created_at, payment_id`,
		bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
