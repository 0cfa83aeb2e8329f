package dto

import "time"

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type User struct {
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type Booking struct {
	BookingID   string     `json:"booking_id"`
	UserID      string     `json:"user_id"`
	Resource    string     `json:"resource"`
	StartsAt    time.Time  `json:"starts_at"`
	PriceCents  int64      `json:"price_cents"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

type Payment struct {
	PaymentID   string     `json:"payment_id"`
	BookingID   string     `json:"booking_id"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
