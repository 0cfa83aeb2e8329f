package handler

import (
	"go.uber.org/zap"

	"bookingsvc/internal/domain/booking"
	"bookingsvc/internal/domain/payment"
	"bookingsvc/internal/domain/stats"
	"bookingsvc/internal/domain/user"
	"bookingsvc/internal/eventbus"
	"bookingsvc/internal/subscribers"
)

// BusInspector is the read-only view of the event bus served by /stats/bus.
type BusInspector interface {
	EventNames() []string
	ListenerCount(name string) int
	MaxListeners() int
}

type Monitor interface {
	Snapshot() []subscribers.EventGauge
}

type Handler struct {
	UserSvc    user.Service
	BookingSvc booking.Service
	PaymentSvc payment.Service
	StatsSvc   stats.Service
	Bus        BusInspector
	Monitor    Monitor
	Events     eventbus.Emitter
	Log        *zap.Logger
}

func New(
	userSvc user.Service,
	bookingSvc booking.Service,
	paymentSvc payment.Service,
	statsSvc stats.Service,
	bus BusInspector,
	monitor Monitor,
	events eventbus.Emitter,
	log *zap.Logger,
) *Handler {
	return &Handler{
		UserSvc:    userSvc,
		BookingSvc: bookingSvc,
		PaymentSvc: paymentSvc,
		StatsSvc:   statsSvc,
		Bus:        bus,
		Monitor:    monitor,
		Events:     events,
		Log:        log,
	}
}
