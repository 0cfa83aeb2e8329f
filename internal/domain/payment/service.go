package payment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/booking"
	"bookingsvc/internal/eventbus"
)

type Service interface {
	Pay(ctx context.Context, bookingID string, amountCents int64) (Payment, booking.Booking, error)
	ListByBooking(ctx context.Context, bookingID string) ([]Payment, error)
}

type service struct {
	uow      domain.UnitOfWork
	payments Repository
	bookings booking.Repository
	events   eventbus.Emitter
	newID    func() string
}

func NewService(
	uow domain.UnitOfWork,
	payments Repository,
	bookings booking.Repository,
	events eventbus.Emitter,
) Service {
	return &service{
		uow:      uow,
		payments: payments,
		bookings: bookings,
		events:   events,
		newID:    uuid.NewString,
	}
}

// Pay charges a pending booking. An amount that does not match the booking
// price is recorded as a failed payment before PAYMENT_DECLINED is returned.
func (s *service) Pay(ctx context.Context, bookingID string, amountCents int64) (Payment, booking.Booking, error) {
	var (
		res     Payment
		current booking.Booking
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.LockByID(ctx, bookingID)
		if err != nil {
			return err
		}
		switch b.Status {
		case booking.StatusCancelled:
			return &domain.DomainError{
				Code:       domain.ErrorCodeBookingClosed,
				Message:    "booking is cancelled",
				HTTPStatus: http.StatusConflict,
			}
		case booking.StatusConfirmed:
			return &domain.DomainError{
				Code:       domain.ErrorCodeAlreadyPaid,
				Message:    "booking is already paid",
				HTTPStatus: http.StatusConflict,
			}
		}

		p := Payment{
			ID:          s.newID(),
			BookingID:   b.ID,
			AmountCents: amountCents,
			Status:      StatusSucceeded,
		}
		if amountCents != b.PriceCents {
			p.Status = StatusFailed
			p.Reason = fmt.Sprintf("amount %d does not match price %d", amountCents, b.PriceCents)
		}

		created, err := s.payments.Create(ctx, p)
		if err != nil {
			return err
		}
		res = created

		if created.Status == StatusSucceeded {
			b, err = s.bookings.UpdateStatus(ctx, b.ID, booking.StatusConfirmed)
			if err != nil {
				return err
			}
		}
		current = b
		return nil
	})
	if err != nil {
		return Payment{}, booking.Booking{}, err
	}

	ev := domain.PaymentEvent{
		PaymentID:   res.ID,
		BookingID:   current.ID,
		UserID:      current.UserID,
		AmountCents: res.AmountCents,
		Reason:      res.Reason,
	}

	if res.Status == StatusFailed {
		if s.events != nil {
			eventbus.Publish(ctx, s.events, domain.PaymentFailedTopic, ev)
		}
		return res, current, &domain.DomainError{
			Code:       domain.ErrorCodePaymentDeclined,
			Message:    res.Reason,
			HTTPStatus: http.StatusPaymentRequired,
		}
	}

	if s.events != nil {
		eventbus.Publish(ctx, s.events, domain.PaymentSucceededTopic, ev)
		eventbus.Publish(ctx, s.events, domain.BookingConfirmedTopic, booking.ToEvent(current))
	}

	return res, current, nil
}

func (s *service) ListByBooking(ctx context.Context, bookingID string) ([]Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}
