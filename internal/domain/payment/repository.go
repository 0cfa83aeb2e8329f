package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	ListByBooking(ctx context.Context, bookingID string) ([]Payment, error)
}
