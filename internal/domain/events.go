package domain

import (
	"time"

	"bookingsvc/internal/eventbus"
)

const (
	EventUserRegistered    = "auth:user:registered"
	EventUserLoggedIn      = "auth:user:logged-in"
	EventUserStatusChanged = "auth:user:status-changed"

	EventBookingCreated   = "booking:created"
	EventBookingConfirmed = "booking:confirmed"
	EventBookingCancelled = "booking:cancelled"

	EventPaymentSucceeded = "payment:succeeded"
	EventPaymentFailed    = "payment:failed"

	EventAppError = "app:error"
)

type UserRegistered struct {
	UserID   string
	Username string
	Email    string
}

type UserLoggedIn struct {
	UserID string
	At     time.Time
}

type UserStatusChanged struct {
	UserID   string
	IsActive bool
}

type BookingEvent struct {
	BookingID  string
	UserID     string
	Resource   string
	StartsAt   time.Time
	PriceCents int64
}

type PaymentEvent struct {
	PaymentID   string
	BookingID   string
	UserID      string
	AmountCents int64
	Reason      string
}

// AppError is reported by the transport layer when a request fails for a
// reason that is not a domain error.
type AppError struct {
	Method string
	Path   string
	Err    string
	Panic  bool
}

var (
	UserRegisteredTopic    = eventbus.NewTopic[UserRegistered](EventUserRegistered)
	UserLoggedInTopic      = eventbus.NewTopic[UserLoggedIn](EventUserLoggedIn)
	UserStatusChangedTopic = eventbus.NewTopic[UserStatusChanged](EventUserStatusChanged)

	BookingCreatedTopic   = eventbus.NewTopic[BookingEvent](EventBookingCreated)
	BookingConfirmedTopic = eventbus.NewTopic[BookingEvent](EventBookingConfirmed)
	BookingCancelledTopic = eventbus.NewTopic[BookingEvent](EventBookingCancelled)

	PaymentSucceededTopic = eventbus.NewTopic[PaymentEvent](EventPaymentSucceeded)
	PaymentFailedTopic    = eventbus.NewTopic[PaymentEvent](EventPaymentFailed)

	AppErrorTopic = eventbus.NewTopic[AppError](EventAppError)
)

// DomainEvents lists every event produced by the domain services.
var DomainEvents = []string{
	EventUserRegistered,
	EventUserLoggedIn,
	EventUserStatusChanged,
	EventBookingCreated,
	EventBookingConfirmed,
	EventBookingCancelled,
	EventPaymentSucceeded,
	EventPaymentFailed,
}
