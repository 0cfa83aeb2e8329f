package booking

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

type Booking struct {
	ID          string
	UserID      string
	Resource    string
	StartsAt    time.Time
	PriceCents  int64
	Status      Status
	CreatedAt   *time.Time
	CancelledAt *time.Time
}
