package subscribers

import (
	"context"

	"go.uber.org/zap"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
)

type ErrorReporter struct {
	log *zap.Logger
}

func NewErrorReporter(log *zap.Logger) *ErrorReporter {
	return &ErrorReporter{log: log.Named("errors")}
}

func (r *ErrorReporter) Register(bus *eventbus.Bus) eventbus.Unsubscribe {
	return group(
		eventbus.Subscribe(bus, domain.AppErrorTopic, r.onAppError),
		eventbus.Subscribe(bus, domain.PaymentFailedTopic, r.onPaymentFailed),
	)
}

func (r *ErrorReporter) onAppError(ctx context.Context, ev domain.AppError) error {
	r.log.Error("request failed",
		zap.String("method", ev.Method),
		zap.String("path", ev.Path),
		zap.Bool("panic", ev.Panic),
		zap.String("error", ev.Err),
	)
	return nil
}

func (r *ErrorReporter) onPaymentFailed(ctx context.Context, ev domain.PaymentEvent) error {
	r.log.Warn("payment declined",
		zap.String("payment_id", ev.PaymentID),
		zap.String("booking_id", ev.BookingID),
		zap.Int64("amount_cents", ev.AmountCents),
		zap.String("reason", ev.Reason),
	)
	return nil
}
