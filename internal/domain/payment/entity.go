package payment

import "time"

type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

type Payment struct {
	ID          string
	BookingID   string
	AmountCents int64
	Status      Status
	Reason      string
	CreatedAt   *time.Time
}
