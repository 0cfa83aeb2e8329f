package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b Booking) (Booking, error)
	LockByID(ctx context.Context, id string) (Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	SlotTaken(ctx context.Context, resource string, startsAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
}
